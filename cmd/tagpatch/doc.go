// Command tagpatch batch-edits the tags of audio files.
//
// Every patch command first prints a dry-run table of what it would do,
// then asks for confirmation before writing anything:
//
//	tagpatch artist-name -s ~/Music -n
//	tagpatch embed-lrc -s ~/Music -d ~/Patched -n
//	tagpatch download-lrc -s ~/Music -n -y
//
// Sources and destinations are both files or both directories. When the
// destination differs from the source, tracks are copied there first and
// the originals are left untouched.
package main

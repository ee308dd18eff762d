// Package ioutils provides the filesystem primitives patches build on.
//
// This package contains functions for:
//   - Creating (touching) destination files
//   - Copying a track to its destination, keeping mode and modification time
//   - Comparing two paths by file identity
//   - Reading and writing lyric sidecar files
//   - Deriving sidecar paths from track paths
//
// # File Operations
//
//	// Copy a track next to its destination
//	err := ioutils.CopyFile(ctx, "/src/song.mp3", "/dst/song.mp3")
//
//	// Write a sidecar
//	err := ioutils.WriteFile(ctx, ioutils.SidecarPath("/music/song.mp3", ioutils.SyncedExt), []byte(lrc))
//
// # Local
//
// Local bundles the functions behind a value so callers can swap in a
// double in tests:
//
//	var files ioutils.Local
//	same, err := files.SameFile(a, b)
package ioutils

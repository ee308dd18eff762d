// Package model defines the track pairs every patch operates on and the
// resolver that discovers them.
//
// # Track
//
// Track pairs a source audio file with the destination the patched result is
// written to. Both paths are absolute and canonical (symlinks and ".."
// resolved):
//
//	tracks, err := model.Resolve("/music/in", "/music/out", true)
//	for _, t := range tracks {
//	    fmt.Println(t.Source, "->", t.Destination)
//	}
//
// # Destination Mapping
//
// Source and destination must both be files or both be directories.
//
//   - Two files: the single pair (src, dst), whatever the extension.
//   - Same directory: every track maps onto itself (patched in place).
//   - Different directories: every track maps to dst/<base name>. The source
//     hierarchy is flattened, so with nested=true two files sharing a base
//     name in different subdirectories land on the same destination and the
//     last one written wins.
//
// Only files whose extension is in KnownExtensions are picked up when
// walking a directory.
package model

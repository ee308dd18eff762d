package model

import (
	"path/filepath"
	"strings"
)

// KnownExtensions lists the audio file extensions picked up when walking a
// directory. Matching is case-insensitive.
var KnownExtensions = map[string]struct{}{
	".ogg":  {},
	".mp3":  {},
	".m4a":  {},
	".flac": {},
	".opus": {},
	".wav":  {},
}

// Track represents a single audio file subject to a patch.
//
// Source is the file that is inspected during the dry run. Destination is
// where the patched file ends up; it equals Source when patching in place.
type Track struct {
	// Source is the canonical absolute path of the discovered file.
	Source string

	// Destination is the canonical absolute path the patch writes to.
	Destination string
}

// InPlace reports whether the track is patched where it lies.
func (t Track) InPlace() bool {
	return t.Source == t.Destination
}

// IsTrackFile reports whether name carries one of the KnownExtensions.
func IsTrackFile(name string) bool {
	_, ok := KnownExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

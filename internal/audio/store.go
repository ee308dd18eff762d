package audio

import (
	"errors"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrUnsupportedFormat is returned for containers a probe cannot handle.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// Field names a tag understood by every backend.
type Field string

const (
	FieldArtist Field = "artist"
	FieldTitle  Field = "title"
	FieldAlbum  Field = "album"
	FieldLyrics Field = "lyrics"
)

// File is an open handle on one audio file's tags.
//
// Get returns the empty string for absent tags. Set only changes the
// in-memory view; nothing reaches the disk until Save.
type File interface {
	Get(field Field) string
	Set(field Field, value string)
	Save() error
	Close() error
}

// Store opens audio files for tag access.
type Store interface {
	Open(path string) (File, error)
	Duration(path string) (time.Duration, error)
}

// LocalStore is the Store backed by the files on disk.
type LocalStore struct{}

// NewLocalStore creates a LocalStore.
func NewLocalStore() *LocalStore {
	return &LocalStore{}
}

// Open opens path with the backend matching its extension.
func (s *LocalStore) Open(path string) (File, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return openID3(path)
	case ".flac":
		return openFLAC(path)
	default:
		return openTaglib(path)
	}
}

// Duration probes the playing time of path.
func (s *LocalStore) Duration(path string) (time.Duration, error) {
	return probeDuration(path)
}

package audio

import (
	"fmt"
	"os"

	"go.senan.xyz/taglib"
)

const taglibLyrics = "LYRICS"

var taglibFields = map[Field]string{
	FieldArtist: taglib.Artist,
	FieldTitle:  taglib.Title,
	FieldAlbum:  taglib.Album,
	FieldLyrics: taglibLyrics,
}

// taglibFile serves containers without a native Go writer (Ogg Vorbis,
// Opus, MP4/M4A, WAV) through TagLib's property map. Only the keys
// changed by Set are written back.
type taglibFile struct {
	path    string
	tags    map[string][]string
	changed map[string]struct{}
}

func openTaglib(path string) (*taglibFile, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	tags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, fmt.Errorf("read tags: %w", err)
	}
	if tags == nil {
		tags = map[string][]string{}
	}

	return &taglibFile{
		path:    path,
		tags:    tags,
		changed: map[string]struct{}{},
	}, nil
}

func (f *taglibFile) Get(field Field) string {
	key, ok := taglibFields[field]
	if !ok {
		return ""
	}
	if values := f.tags[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// Set replaces every value of field. An empty value removes the key.
func (f *taglibFile) Set(field Field, value string) {
	key, ok := taglibFields[field]
	if !ok {
		return
	}
	if f.Get(field) == value && len(f.tags[key]) <= 1 {
		return
	}
	if value == "" {
		f.tags[key] = []string{}
	} else {
		f.tags[key] = []string{value}
	}
	f.changed[key] = struct{}{}
}

func (f *taglibFile) Save() error {
	if len(f.changed) == 0 {
		return nil
	}

	update := make(map[string][]string, len(f.changed))
	for key := range f.changed {
		update[key] = f.tags[key]
	}
	if err := taglib.WriteTags(f.path, update, 0); err != nil {
		return fmt.Errorf("write tags: %w", err)
	}
	clear(f.changed)
	return nil
}

func (f *taglibFile) Close() error {
	return nil
}

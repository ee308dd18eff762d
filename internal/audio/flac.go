package audio

import (
	"fmt"
	"strings"

	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

var vorbisFields = map[Field]string{
	FieldArtist: flacvorbis.FIELD_ARTIST,
	FieldTitle:  flacvorbis.FIELD_TITLE,
	FieldAlbum:  flacvorbis.FIELD_ALBUM,
	FieldLyrics: "LYRICS",
}

// flacFile edits the Vorbis comment block of a FLAC stream.
type flacFile struct {
	path    string
	file    *flac.File
	comment *flacvorbis.MetaDataBlockVorbisComment
	index   int // position of the comment block in file.Meta, -1 if absent
}

// openFLAC parses path. go-flac panics on some truncated streams (for
// example metadata blocks with no frames); that is reported as an error.
func openFLAC(path string) (ff *flacFile, err error) {
	defer func() {
		if r := recover(); r != nil {
			ff, err = nil, fmt.Errorf("parse flac file: %v", r)
		}
	}()

	f, err := flac.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse flac file: %w", err)
	}

	ff = &flacFile{path: path, file: f, index: -1}
	for i, block := range f.Meta {
		if block.Type != flac.VorbisComment {
			continue
		}
		comment, err := flacvorbis.ParseFromMetaDataBlock(*block)
		if err != nil {
			return nil, fmt.Errorf("parse vorbis comment: %w", err)
		}
		ff.comment = comment
		ff.index = i
		break
	}
	if ff.comment == nil {
		ff.comment = flacvorbis.New()
	}

	return ff, nil
}

// Get returns the first value stored for field.
func (f *flacFile) Get(field Field) string {
	key, ok := vorbisFields[field]
	if !ok {
		return ""
	}
	values, err := f.comment.Get(key)
	if err != nil || len(values) == 0 {
		return ""
	}
	return values[0]
}

// Set replaces every value stored for field with value. An empty value
// removes the field.
func (f *flacFile) Set(field Field, value string) {
	key, ok := vorbisFields[field]
	if !ok {
		return
	}

	prefix := strings.ToUpper(key) + "="
	kept := f.comment.Comments[:0]
	for _, c := range f.comment.Comments {
		if len(c) >= len(prefix) && strings.ToUpper(c[:len(prefix)]) == prefix {
			continue
		}
		kept = append(kept, c)
	}
	f.comment.Comments = kept

	if value != "" {
		f.comment.Add(key, value)
	}
}

func (f *flacFile) Save() error {
	block := f.comment.Marshal()
	if f.index >= 0 {
		f.file.Meta[f.index] = &block
	} else {
		f.file.Meta = append(f.file.Meta, &block)
		f.index = len(f.file.Meta) - 1
	}
	if err := f.file.Save(f.path); err != nil {
		return fmt.Errorf("save flac file: %w", err)
	}
	return nil
}

func (f *flacFile) Close() error {
	return nil
}

package audio

import (
	"fmt"

	"github.com/bogem/id3v2"
)

const lyricsFrameDescription = "Unsynchronised lyrics/text transcription"

// id3File maps fields onto ID3v2 frames.
//
//   - artist: TPE1 (Lead artist)
//   - title: TIT2
//   - album: TALB
//   - lyrics: USLT (Unsynchronised lyrics)
type id3File struct {
	tag *id3v2.Tag
}

func openID3(path string) (*id3File, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("open id3 tag: %w", err)
	}
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	return &id3File{tag: tag}, nil
}

func (f *id3File) Get(field Field) string {
	switch field {
	case FieldArtist:
		return f.tag.Artist()
	case FieldTitle:
		return f.tag.Title()
	case FieldAlbum:
		return f.tag.Album()
	case FieldLyrics:
		for _, frame := range f.tag.GetFrames(f.tag.CommonID(lyricsFrameDescription)) {
			if uslf, ok := frame.(id3v2.UnsynchronisedLyricsFrame); ok {
				return uslf.Lyrics
			}
		}
	}
	return ""
}

func (f *id3File) Set(field Field, value string) {
	switch field {
	case FieldArtist:
		f.tag.SetArtist(value)
	case FieldTitle:
		f.tag.SetTitle(value)
	case FieldAlbum:
		f.tag.SetAlbum(value)
	case FieldLyrics:
		f.tag.DeleteFrames(f.tag.CommonID(lyricsFrameDescription))
		if value != "" {
			f.tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
				Encoding:          id3v2.EncodingUTF8,
				Language:          "eng",
				ContentDescriptor: "",
				Lyrics:            value,
			})
		}
	}
}

func (f *id3File) Save() error {
	if err := f.tag.Save(); err != nil {
		return fmt.Errorf("save id3 tag: %w", err)
	}
	return nil
}

func (f *id3File) Close() error {
	return f.tag.Close()
}

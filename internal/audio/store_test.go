package audio

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_MP3RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	store := NewLocalStore()

	f, err := store.Open(path)
	require.NoError(t, err)
	assert.Empty(t, f.Get(FieldArtist))
	assert.Empty(t, f.Get(FieldLyrics))

	f.Set(FieldArtist, "Sigrid/Bring Me The Horizon")
	f.Set(FieldTitle, "Bad Life")
	f.Set(FieldAlbum, "How To Let Go")
	f.Set(FieldLyrics, "[00:01.00] line")
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	f, err = store.Open(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "Sigrid/Bring Me The Horizon", f.Get(FieldArtist))
	assert.Equal(t, "Bad Life", f.Get(FieldTitle))
	assert.Equal(t, "How To Let Go", f.Get(FieldAlbum))
	assert.Equal(t, "[00:01.00] line", f.Get(FieldLyrics))
}

func TestLocalStore_MP3ClearLyrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	require.NoError(t, os.WriteFile(path, nil, 0644))
	store := NewLocalStore()

	f, err := store.Open(path)
	require.NoError(t, err)
	f.Set(FieldLyrics, "first")
	f.Set(FieldLyrics, "second")
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	f, err = store.Open(path)
	require.NoError(t, err)
	assert.Equal(t, "second", f.Get(FieldLyrics), "setting lyrics replaces the previous frame")
	f.Set(FieldLyrics, "")
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	f, err = store.Open(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Empty(t, f.Get(FieldLyrics))
}

// flacMetadata returns a FLAC signature followed by a lone STREAMINFO block.
func flacMetadata() []byte {
	data := []byte("fLaC")
	header := make([]byte, 4)
	binary.BigEndian.PutUint32(header, 34)
	header[0] = 0x80 // last metadata block, type STREAMINFO
	data = append(data, header...)
	return append(data, make([]byte, 34)...)
}

// minimalFLAC returns a FLAC stream with one STREAMINFO block and the start
// of an audio frame.
func minimalFLAC() []byte {
	return append(flacMetadata(), 0xFF, 0xF8, 0x69, 0x08, 0x00, 0x00, 0x00, 0x00)
}

// minimalWAV returns one second of 8 kHz mono 8-bit silence.
func minimalWAV() []byte {
	const rate, samples = 8000, 8000
	le := binary.LittleEndian

	data := []byte("RIFF")
	data = le.AppendUint32(data, 36+samples)
	data = append(data, "WAVEfmt "...)
	data = le.AppendUint32(data, 16)
	data = le.AppendUint16(data, 1) // PCM
	data = le.AppendUint16(data, 1) // mono
	data = le.AppendUint32(data, rate)
	data = le.AppendUint32(data, rate) // byte rate
	data = le.AppendUint16(data, 1)    // block align
	data = le.AppendUint16(data, 8)    // bits per sample
	data = append(data, "data"...)
	data = le.AppendUint32(data, samples)
	for range samples {
		data = append(data, 0x80)
	}
	return data
}

func TestLocalStore_FLACRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.flac")
	require.NoError(t, os.WriteFile(path, minimalFLAC(), 0644))
	store := NewLocalStore()

	f, err := store.Open(path)
	require.NoError(t, err)
	assert.Empty(t, f.Get(FieldArtist))

	f.Set(FieldArtist, "Foo, bar")
	f.Set(FieldLyrics, "plain words")
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	f, err = store.Open(path)
	require.NoError(t, err)
	assert.Equal(t, "Foo, bar", f.Get(FieldArtist))
	assert.Equal(t, "plain words", f.Get(FieldLyrics))

	f.Set(FieldArtist, "Foo/bar")
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	f, err = store.Open(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "Foo/bar", f.Get(FieldArtist), "set replaces existing values")
	assert.Equal(t, "plain words", f.Get(FieldLyrics))
}

func TestLocalStore_CorruptFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore()

	files := map[string][]byte{
		"broken.flac":   []byte("not audio at all"),
		"noframes.flac": flacMetadata(),
		"broken.ogg":    []byte("not audio at all"),
		"broken.m4a":    []byte("not audio at all"),
	}
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, content, 0644))

			var err error
			require.NotPanics(t, func() { _, err = store.Open(path) })
			assert.Error(t, err)
		})
	}
}

func TestLocalStore_MissingFile(t *testing.T) {
	_, err := NewLocalStore().Open(filepath.Join(t.TempDir(), "missing.ogg"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalStore_WAVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.wav")
	require.NoError(t, os.WriteFile(path, minimalWAV(), 0644))
	store := NewLocalStore()

	f, err := store.Open(path)
	require.NoError(t, err)
	assert.Empty(t, f.Get(FieldArtist))
	require.NoError(t, f.Save(), "saving without changes is a no-op")

	f.Set(FieldArtist, "Foo; bar")
	f.Set(FieldTitle, "Song")
	f.Set(FieldLyrics, "[00:01.00]hi")
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	f, err = store.Open(path)
	require.NoError(t, err)
	assert.Equal(t, "Foo; bar", f.Get(FieldArtist))
	assert.Equal(t, "Song", f.Get(FieldTitle))
	assert.Equal(t, "[00:01.00]hi", f.Get(FieldLyrics))

	f.Set(FieldArtist, "Foo/bar")
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	f, err = store.Open(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "Foo/bar", f.Get(FieldArtist))
	assert.Equal(t, "Song", f.Get(FieldTitle), "untouched keys survive")

	d, err := store.Duration(path)
	require.NoError(t, err)
	assert.InDelta(t, time.Second, d, float64(50*time.Millisecond))
}

func TestLocalStore_DurationUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.aiff")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := NewLocalStore().Duration(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

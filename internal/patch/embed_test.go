package patch

import (
	"context"
	"errors"
	"testing"

	"github.com/handiism/tagpatch/internal/audio"
	"github.com/handiism/tagpatch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedLyricsPatch(t *testing.T) {
	ctx := context.Background()
	const lrc = "[00:01.00]hello\n[00:02.00]world\n"

	t.Run("embeds sidecar and clears tracks without one", func(t *testing.T) {
		store := newMemStore()
		store.put("/m/a.flac", map[audio.Field]string{})
		store.put("/m/b.mp3", map[audio.Field]string{audio.FieldLyrics: "stale"})
		files := newMemFiles(store)
		files.texts["/m/a.lrc"] = lrc

		p := NewEmbedLyricsPatch(inPlace("/m/a.flac", "/m/b.mp3"), Deps{Tags: store, Files: files})
		table, err := p.Prepare(ctx)
		require.NoError(t, err)
		require.Len(t, table, 2)
		assert.Equal(t, Cell{Text: "/m/a.lrc", Flag: true}, table[0][0])
		assert.Equal(t, Cell{}, table[1][0])

		log := p.Apply(ctx)
		assert.Equal(t, "Patched - /m/a.flac\nPatched - /m/b.mp3\n", log.String())
		assert.Equal(t, lrc, store.get("/m/a.flac", audio.FieldLyrics))
		assert.Equal(t, "", store.get("/m/b.mp3", audio.FieldLyrics))
	})

	t.Run("identical lyrics are not rewritten", func(t *testing.T) {
		store := newMemStore()
		store.put("/m/a.mp3", map[audio.Field]string{audio.FieldLyrics: lrc})
		store.put("/m/b.mp3", map[audio.Field]string{})
		files := newMemFiles(store)
		files.texts["/m/a.lrc"] = lrc

		p := NewEmbedLyricsPatch(inPlace("/m/a.mp3", "/m/b.mp3"), Deps{Tags: store, Files: files})
		_, err := p.Prepare(ctx)
		require.NoError(t, err)

		log := p.Apply(ctx)
		assert.Equal(t, "Unchanged - /m/a.mp3\nUnchanged - /m/b.mp3\n", log.String())
		assert.Equal(t, 2, log.Count(LevelInfo))
		assert.Zero(t, store.saveCount())
	})

	t.Run("apply follows the prepared sidecar decision", func(t *testing.T) {
		store := newMemStore()
		store.put("/m/a.mp3", map[audio.Field]string{audio.FieldLyrics: "old"})
		files := newMemFiles(store)

		p := NewEmbedLyricsPatch(inPlace("/m/a.mp3"), Deps{Tags: store, Files: files})
		table, err := p.Prepare(ctx)
		require.NoError(t, err)
		assert.Empty(t, table[0][0].Text)

		files.texts["/m/a.lrc"] = lrc

		log := p.Apply(ctx)
		assert.Equal(t, "Patched - /m/a.mp3\n", log.String())
		assert.Empty(t, store.get("/m/a.mp3", audio.FieldLyrics))
	})

	t.Run("copies before patching a distinct destination", func(t *testing.T) {
		store := newMemStore()
		store.put("/src/a.mp3", map[audio.Field]string{audio.FieldArtist: "A"})
		files := newMemFiles(store)
		files.texts["/src/a.lrc"] = lrc

		p := NewEmbedLyricsPatch([]model.Track{{Source: "/src/a.mp3", Destination: "/dst/a.mp3"}}, Deps{Tags: store, Files: files})
		_, err := p.Prepare(ctx)
		require.NoError(t, err)

		log := p.Apply(ctx)
		assert.Equal(t, "Copied - /dst/a.mp3\nPatched - /dst/a.mp3\n", log.String())
		assert.Equal(t, lrc, store.get("/dst/a.mp3", audio.FieldLyrics))
		assert.Equal(t, "A", store.get("/dst/a.mp3", audio.FieldArtist))
		assert.Equal(t, "", store.get("/src/a.mp3", audio.FieldLyrics))
	})

	t.Run("failed save is reported", func(t *testing.T) {
		store := newMemStore()
		store.put("/m/a.m4a", map[audio.Field]string{})
		store.put("/m/b.mp3", map[audio.Field]string{})
		store.saveErr["/m/a.m4a"] = errors.New("write tags: invalid file")
		files := newMemFiles(store)
		files.texts["/m/a.lrc"] = lrc
		files.texts["/m/b.lrc"] = lrc

		p := NewEmbedLyricsPatch(inPlace("/m/a.m4a", "/m/b.mp3"), Deps{Tags: store, Files: files})
		_, err := p.Prepare(ctx)
		require.NoError(t, err)

		log := p.Apply(ctx)
		entries := log.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, LevelError, entries[0].Level)
		assert.Contains(t, entries[0].Message, "Error - failed to patch /m/a.m4a: ")
		assert.Equal(t, Entry{Message: "Patched - /m/b.mp3", Level: LevelSuccess}, entries[1])
	})

	t.Run("prepare runs once", func(t *testing.T) {
		p := NewEmbedLyricsPatch(nil, Deps{})
		_, err := p.Prepare(ctx)
		require.NoError(t, err)
		_, err = p.Prepare(ctx)
		assert.ErrorIs(t, err, ErrAlreadyPrepared)
	})

	t.Run("cancelled apply stops early", func(t *testing.T) {
		store := newMemStore()
		store.put("/m/a.mp3", map[audio.Field]string{})
		files := newMemFiles(store)
		files.texts["/m/a.lrc"] = lrc

		p := NewEmbedLyricsPatch(inPlace("/m/a.mp3"), Deps{Tags: store, Files: files})
		_, err := p.Prepare(ctx)
		require.NoError(t, err)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		log := p.Apply(cancelled)
		assert.Equal(t, 1, log.Count(LevelWarning))
		assert.Zero(t, store.saveCount())
	})
}

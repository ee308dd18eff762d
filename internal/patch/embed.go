package patch

import (
	"context"

	"github.com/handiism/tagpatch/internal/audio"
	ioutils "github.com/handiism/tagpatch/internal/io"
	"github.com/handiism/tagpatch/internal/model"
)

const embedHelp = "Embed the synced lyrics of a sibling .lrc file into the lyrics tag."

// EmbedChange is the planned change for one track. Sidecar is empty when
// the track has no .lrc file next to it.
type EmbedChange struct {
	Track   model.Track
	Sidecar string
}

// EmbedLyricsPatch copies .lrc sidecar contents into the lyrics tag.
// Tracks without a sidecar get their lyrics tag cleared.
type EmbedLyricsPatch struct {
	base
	changes []EmbedChange
}

var _ Patch = (*EmbedLyricsPatch)(nil)

// NewEmbedLyricsPatch creates the patch over tracks.
func NewEmbedLyricsPatch(tracks []model.Track, deps Deps) *EmbedLyricsPatch {
	return &EmbedLyricsPatch{base: newBase(tracks, deps)}
}

func (p *EmbedLyricsPatch) Help() string { return embedHelp }

func (p *EmbedLyricsPatch) TableHeaders() []string {
	return []string{"Lyric File", "Source", "Destination"}
}

// Changes returns the planned changes in track order.
func (p *EmbedLyricsPatch) Changes() []EmbedChange { return p.changes }

func (p *EmbedLyricsPatch) Prepare(ctx context.Context) (Table, error) {
	if err := p.begin(); err != nil {
		return nil, err
	}

	table := make(Table, 0, len(p.tracks))
	for _, track := range p.tracks {
		if err := ctx.Err(); err != nil {
			return table, err
		}

		change := EmbedChange{Track: track}
		if sidecar := ioutils.SidecarPath(track.Source, ioutils.SyncedExt); p.files.Exists(sidecar) {
			change.Sidecar = sidecar
		}
		p.changes = append(p.changes, change)
		table = append(table, Row{
			{Text: change.Sidecar, Flag: change.Sidecar != ""},
			{Text: track.Source},
			{Text: track.Destination},
		})
	}
	return table, nil
}

func (p *EmbedLyricsPatch) Apply(ctx context.Context) *ChangeLog {
	changes := NewChangeLog()
	for i, change := range p.changes {
		if err := ctx.Err(); err != nil {
			changes.Aborted(len(p.changes)-i, err)
			break
		}

		err := attempt(func() error { return p.apply(ctx, change, changes) })
		if err != nil {
			p.logger.Error("patch failed", "path", change.Track.Destination, "err", err)
			changes.Failed(change.Track.Destination, err)
		}
	}
	return changes
}

func (p *EmbedLyricsPatch) apply(ctx context.Context, change EmbedChange, changes *ChangeLog) error {
	if err := p.materialize(ctx, change.Track, changes); err != nil {
		return err
	}

	var text string
	if change.Sidecar != "" {
		var err error
		if text, err = p.files.ReadText(change.Sidecar); err != nil {
			return err
		}
	}

	f, err := p.tags.Open(change.Track.Destination)
	if err != nil {
		return err
	}
	defer f.Close()

	if f.Get(audio.FieldLyrics) == text {
		changes.Unchanged(change.Track.Destination)
		return nil
	}
	f.Set(audio.FieldLyrics, text)
	if err := f.Save(); err != nil {
		return err
	}
	changes.Patched(change.Track.Destination)
	return nil
}

package patch

import (
	"context"
	"strings"

	"github.com/handiism/tagpatch/internal/audio"
	"github.com/handiism/tagpatch/internal/model"
)

// ArtistSeparator is the canonical delimiter between artist names.
const ArtistSeparator = "/"

// legacyDelimiters are rewritten to ArtistSeparator, in this order.
var legacyDelimiters = []string{",", "//", ";"}

const artistHelp = "Replace legacy artist delimiters (',', '//', ';') with '/' in the artist tag."

// ReplaceDelimiters rewrites every legacy delimiter in s to "/", trimming
// whitespace around each name. Passes repeat until the value is stable,
// so the result never contains a legacy delimiter and
// ReplaceDelimiters(ReplaceDelimiters(s)) == ReplaceDelimiters(s).
func ReplaceDelimiters(s string) string {
	for {
		next := replacePass(s)
		if next == s {
			return next
		}
		s = next
	}
}

func replacePass(s string) string {
	for _, delim := range legacyDelimiters {
		parts := strings.Split(s, delim)
		for i, part := range parts {
			parts[i] = strings.TrimSpace(part)
		}
		s = strings.Join(parts, ArtistSeparator)
	}
	return s
}

// ArtistChange is the planned change for one track.
type ArtistChange struct {
	Track    model.Track
	Original string
	Modified string
	Err      error
}

// Changed reports whether applying c writes anything.
func (c ArtistChange) Changed() bool {
	return c.Err == nil && c.Original != c.Modified
}

// ArtistNamePatch normalizes the artist tag of every track.
type ArtistNamePatch struct {
	base
	changes []ArtistChange
}

var _ Patch = (*ArtistNamePatch)(nil)

// NewArtistNamePatch creates the patch over tracks.
func NewArtistNamePatch(tracks []model.Track, deps Deps) *ArtistNamePatch {
	return &ArtistNamePatch{base: newBase(tracks, deps)}
}

func (p *ArtistNamePatch) Help() string { return artistHelp }

func (p *ArtistNamePatch) TableHeaders() []string {
	return []string{"Original Tag", "Modified Tag", "Source", "Destination"}
}

// Changes returns the planned changes in track order.
func (p *ArtistNamePatch) Changes() []ArtistChange { return p.changes }

func (p *ArtistNamePatch) Prepare(ctx context.Context) (Table, error) {
	if err := p.begin(); err != nil {
		return nil, err
	}

	table := make(Table, 0, len(p.tracks))
	for _, track := range p.tracks {
		if err := ctx.Err(); err != nil {
			return table, err
		}

		change := ArtistChange{Track: track}
		original, err := p.readTag(track.Source, audio.FieldArtist)
		if err != nil {
			p.logger.Warn("cannot read tags", "path", track.Source, "err", err)
			change.Err = err
			p.changes = append(p.changes, change)
			table = append(table, Row{
				{Text: "error: " + err.Error(), Flag: true},
				{},
				{Text: track.Source},
				{Text: track.Destination},
			})
			continue
		}

		change.Original = original
		change.Modified = ReplaceDelimiters(original)
		p.changes = append(p.changes, change)
		table = append(table, Row{
			{Text: change.Original},
			{Text: change.Modified, Flag: change.Changed()},
			{Text: track.Source},
			{Text: track.Destination},
		})
	}
	return table, nil
}

func (p *ArtistNamePatch) Apply(ctx context.Context) *ChangeLog {
	changes := NewChangeLog()
	for i, change := range p.changes {
		if err := ctx.Err(); err != nil {
			changes.Aborted(len(p.changes)-i, err)
			break
		}
		if !change.Changed() {
			continue
		}

		err := attempt(func() error { return p.apply(ctx, change, changes) })
		if err != nil {
			p.logger.Error("patch failed", "path", change.Track.Destination, "err", err)
			changes.Failed(change.Track.Destination, err)
		}
	}
	return changes
}

func (p *ArtistNamePatch) apply(ctx context.Context, change ArtistChange, changes *ChangeLog) error {
	if err := p.materialize(ctx, change.Track, changes); err != nil {
		return err
	}

	f, err := p.tags.Open(change.Track.Destination)
	if err != nil {
		return err
	}
	defer f.Close()

	f.Set(audio.FieldArtist, change.Modified)
	if err := f.Save(); err != nil {
		return err
	}
	changes.Patched(change.Track.Destination)
	return nil
}

package patch

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/handiism/tagpatch/internal/audio"
	ioutils "github.com/handiism/tagpatch/internal/io"
	"github.com/handiism/tagpatch/internal/lyrics"
	"github.com/handiism/tagpatch/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultLookupTimeout bounds a single lyrics lookup.
const DefaultLookupTimeout = 10 * time.Second

// Reasons a track is skipped by DownloadLyricsPatch.
const (
	SkipMissingMetadata = "Missing metadata"
	SkipSyncedSidecar   = "sidecar exists (synced)"
	SkipPlainSidecar    = "sidecar exists (plain)"
	SkipEmbedded        = "Embedded lyrics"
	SkipNotFound        = "No lyrics found"
)

const (
	actionDownload = "Download"
	typeSynced     = "synced (.lrc)"
	typePlain      = "plain (.txt)"
)

const downloadHelp = "Download missing lyrics and save them as .lrc (synced) or .txt (plain) files next to each track."

// Finder looks up lyrics for a track.
type Finder interface {
	Lookup(ctx context.Context, q lyrics.Query) (lyrics.Result, error)
}

// LyricChange is the planned outcome for one track. A non-empty
// SkipReason means nothing is written.
type LyricChange struct {
	Track      model.Track
	SkipReason string
	Synced     bool
	Lyrics     string
}

// Skipped reports whether c writes nothing.
func (c LyricChange) Skipped() bool { return c.SkipReason != "" }

// SidecarPath returns the file c writes, or "" when skipped.
func (c LyricChange) SidecarPath() string {
	if c.Skipped() {
		return ""
	}
	ext := ioutils.PlainExt
	if c.Synced {
		ext = ioutils.SyncedExt
	}
	return ioutils.SidecarPath(c.Track.Source, ext)
}

// DownloadOption configures a DownloadLyricsPatch.
type DownloadOption func(*DownloadLyricsPatch)

// WithLookupTimeout overrides DefaultLookupTimeout.
func WithLookupTimeout(d time.Duration) DownloadOption {
	return func(p *DownloadLyricsPatch) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithProgress registers fn to be called after each lookup finishes with
// the number of finished lookups and the total. fn is called from
// multiple goroutines.
func WithProgress(fn func(done, total int)) DownloadOption {
	return func(p *DownloadLyricsPatch) {
		p.onProgress = fn
	}
}

// DownloadLyricsPatch fetches lyrics for tracks that have none, writing
// them as sidecar files next to the track.
type DownloadLyricsPatch struct {
	base
	finder     Finder
	gate       *Gate
	timeout    time.Duration
	onProgress func(done, total int)
	changes    []LyricChange
}

var _ Patch = (*DownloadLyricsPatch)(nil)

// NewDownloadLyricsPatch creates the patch over tracks, looking lyrics up
// through finder.
func NewDownloadLyricsPatch(tracks []model.Track, finder Finder, deps Deps, opts ...DownloadOption) *DownloadLyricsPatch {
	p := &DownloadLyricsPatch{
		base:    newBase(tracks, deps),
		finder:  finder,
		gate:    NewGate(MaxConcurrentLookups),
		timeout: DefaultLookupTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *DownloadLyricsPatch) Help() string { return downloadHelp }

func (p *DownloadLyricsPatch) TableHeaders() []string {
	return []string{"Source", "Destination", "Action", "Type"}
}

// Changes returns the planned changes in track order.
func (p *DownloadLyricsPatch) Changes() []LyricChange { return p.changes }

// Gate returns the admission gate guarding lookups.
func (p *DownloadLyricsPatch) Gate() *Gate { return p.gate }

type lookupJob struct {
	index int
	query lyrics.Query
}

func (p *DownloadLyricsPatch) Prepare(ctx context.Context) (Table, error) {
	if err := p.begin(); err != nil {
		return nil, err
	}

	p.changes = make([]LyricChange, len(p.tracks))
	var jobs []lookupJob
	for i, track := range p.tracks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		change, query := p.inspect(track)
		p.changes[i] = change
		if !change.Skipped() {
			jobs = append(jobs, lookupJob{index: i, query: query})
		}
	}

	p.lookupAll(ctx, jobs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table := make(Table, 0, len(p.changes))
	for _, change := range p.changes {
		table = append(table, p.row(change))
	}
	return table, nil
}

// inspect decides everything that can be decided locally. A change
// returned without a skip reason still needs a lookup.
func (p *DownloadLyricsPatch) inspect(track model.Track) (LyricChange, lyrics.Query) {
	change := LyricChange{Track: track}

	var (
		query    lyrics.Query
		embedded string
	)
	err := attempt(func() error {
		f, err := p.tags.Open(track.Source)
		if err != nil {
			return err
		}
		defer f.Close()
		query = lyrics.Query{
			Artist: strings.TrimSpace(f.Get(audio.FieldArtist)),
			Title:  strings.TrimSpace(f.Get(audio.FieldTitle)),
			Album:  strings.TrimSpace(f.Get(audio.FieldAlbum)),
		}
		embedded = strings.TrimSpace(f.Get(audio.FieldLyrics))
		return nil
	})
	if err != nil {
		p.logger.Warn("cannot read tags", "path", track.Source, "err", err)
		change.SkipReason = SkipMissingMetadata
		return change, lyrics.Query{}
	}

	switch {
	case query.Artist == "" || query.Title == "":
		change.SkipReason = SkipMissingMetadata
	case p.files.Exists(ioutils.SidecarPath(track.Source, ioutils.SyncedExt)):
		change.SkipReason = SkipSyncedSidecar
	case p.files.Exists(ioutils.SidecarPath(track.Source, ioutils.PlainExt)):
		change.SkipReason = SkipPlainSidecar
	case embedded != "":
		change.SkipReason = SkipEmbedded
	}
	if change.Skipped() {
		return change, query
	}

	var d time.Duration
	err = attempt(func() (err error) {
		d, err = p.tags.Duration(track.Source)
		return err
	})
	if err != nil {
		p.logger.Debug("duration unknown", "path", track.Source, "err", err)
	} else {
		query.Duration = d
	}
	return change, query
}

// lookupAll runs the lookups concurrently behind the gate. Each goroutine
// owns exactly one slot of p.changes, so track order is kept.
func (p *DownloadLyricsPatch) lookupAll(ctx context.Context, jobs []lookupJob) {
	var (
		g    errgroup.Group
		done atomic.Int64
	)
	for _, job := range jobs {
		g.Go(func() error {
			res := p.lookup(ctx, job.query)
			change := &p.changes[job.index]
			switch {
			case strings.TrimSpace(res.Synced) != "":
				change.Synced = true
				change.Lyrics = res.Synced
			case strings.TrimSpace(res.Plain) != "":
				change.Lyrics = res.Plain
			default:
				change.SkipReason = SkipNotFound
			}
			if p.onProgress != nil {
				p.onProgress(int(done.Add(1)), len(jobs))
			}
			return nil
		})
	}
	_ = g.Wait()
}

// lookup performs one gated, time-limited lookup. Failures are logged and
// reported as an empty result.
func (p *DownloadLyricsPatch) lookup(ctx context.Context, q lyrics.Query) lyrics.Result {
	var res lyrics.Result
	err := p.gate.Do(ctx, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()

		var err error
		res, err = p.finder.Lookup(ctx, q)
		return err
	})
	switch {
	case err == nil:
		return res
	case errors.Is(err, lyrics.ErrNotFound):
		p.logger.Debug("no lyrics", "artist", q.Artist, "title", q.Title)
	default:
		p.logger.Warn("lyrics lookup failed", "artist", q.Artist, "title", q.Title, "err", err)
	}
	return lyrics.Result{}
}

func (p *DownloadLyricsPatch) row(change LyricChange) Row {
	if change.Skipped() {
		return Row{
			{Text: change.Track.Source},
			{},
			{Text: change.SkipReason},
			{},
		}
	}
	kind := typePlain
	if change.Synced {
		kind = typeSynced
	}
	return Row{
		{Text: change.Track.Source},
		{Text: change.SidecarPath()},
		{Text: actionDownload, Flag: true},
		{Text: kind, Flag: change.Synced},
	}
}

func (p *DownloadLyricsPatch) Apply(ctx context.Context) *ChangeLog {
	changes := NewChangeLog()
	for i, change := range p.changes {
		if err := ctx.Err(); err != nil {
			changes.Aborted(len(p.changes)-i, err)
			break
		}
		if change.Skipped() {
			continue
		}

		path := change.SidecarPath()
		err := attempt(func() error { return p.files.WriteText(ctx, path, change.Lyrics) })
		if err != nil {
			p.logger.Error("write lyrics failed", "path", path, "err", err)
			changes.Failed(path, err)
			continue
		}
		changes.Downloaded(change.Synced, path)
	}
	return changes
}

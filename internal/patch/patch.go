package patch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/handiism/tagpatch/internal/audio"
	ioutils "github.com/handiism/tagpatch/internal/io"
	"github.com/handiism/tagpatch/internal/model"
)

var (
	// ErrAlreadyPrepared is returned by a second call to Prepare.
	ErrAlreadyPrepared = errors.New("patch already prepared")
)

const (
	defaultTableFormat      = "grid"
	defaultTableMaxColWidth = 30
)

// Patch is the contract every tag operation implements.
type Patch interface {
	// Help describes the patch for command help text.
	Help() string

	// Prepare inspects every track without mutating anything, stores the
	// planned changes and returns them as a table.
	Prepare(ctx context.Context) (Table, error)

	// Apply performs the changes stored by Prepare, isolating failures
	// per item, and returns the aggregate log.
	Apply(ctx context.Context) *ChangeLog

	TableHeaders() []string
	TableFormat() string
	TableMaxColWidth() int
}

// Cell is one table value. Flag marks values that deserve attention, such
// as a tag that is about to change.
type Cell struct {
	Text string
	Flag bool
}

// Row is one table line, one per track.
type Row []Cell

// Table is the dry-run plan in display form.
type Table []Row

// Files is the filesystem surface patches need.
type Files interface {
	Touch(path string) error
	SameFile(a, b string) (bool, error)
	Copy(ctx context.Context, src, dst string) error
	Exists(path string) bool
	ReadText(path string) (string, error)
	WriteText(ctx context.Context, path, text string) error
}

// Deps carries the collaborators of a patch. Nil fields fall back to the
// local tag store, the local filesystem and a discarding logger.
type Deps struct {
	Tags   audio.Store
	Files  Files
	Logger *log.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Tags == nil {
		d.Tags = audio.NewLocalStore()
	}
	if d.Files == nil {
		d.Files = ioutils.Local{}
	}
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	return d
}

// base holds what every patch shares: the tracks, collaborators and the
// single-use Prepare guard.
type base struct {
	tracks   []model.Track
	tags     audio.Store
	files    Files
	logger   *log.Logger
	prepared bool
}

func newBase(tracks []model.Track, deps Deps) base {
	deps = deps.withDefaults()
	return base{
		tracks: tracks,
		tags:   deps.Tags,
		files:  deps.Files,
		logger: deps.Logger,
	}
}

func (b *base) TableFormat() string   { return defaultTableFormat }
func (b *base) TableMaxColWidth() int { return defaultTableMaxColWidth }

func (b *base) begin() error {
	if b.prepared {
		return ErrAlreadyPrepared
	}
	b.prepared = true
	return nil
}

// readTag opens path and returns the value of one field. A panic in the
// tag backend is returned as an error.
func (b *base) readTag(path string, field audio.Field) (value string, err error) {
	err = attempt(func() error {
		f, err := b.tags.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		value = f.Get(field)
		return nil
	})
	return value, err
}

// materialize makes sure track.Destination exists and holds the source
// bytes. Nothing is copied when both paths name the same file.
func (b *base) materialize(ctx context.Context, track model.Track, changes *ChangeLog) error {
	if err := b.files.Touch(track.Destination); err != nil {
		return err
	}
	if track.InPlace() {
		return nil
	}
	same, err := b.files.SameFile(track.Source, track.Destination)
	if err != nil {
		return err
	}
	if same {
		return nil
	}
	if err := b.files.Copy(ctx, track.Source, track.Destination); err != nil {
		return err
	}
	changes.Copied(track.Destination)
	return nil
}

// attempt runs fn, converting a panic into an error so that one bad file
// cannot take down the batch.
func attempt(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

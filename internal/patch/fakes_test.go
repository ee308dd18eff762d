package patch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/handiism/tagpatch/internal/audio"
	"github.com/handiism/tagpatch/internal/lyrics"
	"github.com/handiism/tagpatch/internal/model"
)

// memStore keeps tags in memory, keyed by path.
type memStore struct {
	mu        sync.Mutex
	tags      map[string]map[audio.Field]string
	durations map[string]time.Duration
	openErr   map[string]error
	openPanic map[string]string
	saveErr   map[string]error
	saves     int
}

func newMemStore() *memStore {
	return &memStore{
		tags:      map[string]map[audio.Field]string{},
		durations: map[string]time.Duration{},
		openErr:   map[string]error{},
		openPanic: map[string]string{},
		saveErr:   map[string]error{},
	}
}

func (s *memStore) put(path string, tags map[audio.Field]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags[path] = tags
}

func (s *memStore) get(path string, field audio.Field) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tags[path][field]
}

func (s *memStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *memStore) Open(path string) (audio.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.openErr[path]; err != nil {
		return nil, err
	}
	if msg, ok := s.openPanic[path]; ok {
		panic(msg)
	}
	tags, ok := s.tags[path]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file", path)
	}
	view := make(map[audio.Field]string, len(tags))
	for k, v := range tags {
		view[k] = v
	}
	return &memFile{store: s, path: path, tags: view}, nil
}

func (s *memStore) Duration(path string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.durations[path]; ok {
		return d, nil
	}
	return 0, audio.ErrUnsupportedFormat
}

type memFile struct {
	store *memStore
	path  string
	tags  map[audio.Field]string
}

func (f *memFile) Get(field audio.Field) string        { return f.tags[field] }
func (f *memFile) Set(field audio.Field, value string) { f.tags[field] = value }
func (f *memFile) Close() error                        { return nil }

func (f *memFile) Save() error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if err := f.store.saveErr[f.path]; err != nil {
		return err
	}
	f.store.saves++
	f.store.tags[f.path] = f.tags
	return nil
}

// memFiles is a Files double that counts every mutating call. Copy
// duplicates the tags held by store.
type memFiles struct {
	mu         sync.Mutex
	store      *memStore
	texts      map[string]string
	touches    int
	copies     int
	writes     int
	sameChecks int
	copyErr    map[string]error
}

func newMemFiles(store *memStore) *memFiles {
	return &memFiles{store: store, texts: map[string]string{}, copyErr: map[string]error{}}
}

func (f *memFiles) Touch(path string) error {
	f.mu.Lock()
	f.touches++
	f.mu.Unlock()

	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if _, ok := f.store.tags[path]; !ok {
		f.store.tags[path] = map[audio.Field]string{}
	}
	return nil
}

func (f *memFiles) SameFile(a, b string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sameChecks++
	return a == b, nil
}

func (f *memFiles) Copy(ctx context.Context, src, dst string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.copyErr[src]; err != nil {
		return err
	}
	f.copies++

	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	dup := map[audio.Field]string{}
	for k, v := range f.store.tags[src] {
		dup[k] = v
	}
	f.store.tags[dst] = dup
	return nil
}

func (f *memFiles) Exists(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.texts[path]
	return ok
}

func (f *memFiles) ReadText(path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	text, ok := f.texts[path]
	if !ok {
		return "", errors.New("no such file")
	}
	return text, nil
}

func (f *memFiles) WriteText(ctx context.Context, path, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	f.texts[path] = text
	return nil
}

func (f *memFiles) counts() (touches, copies, writes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touches, f.copies, f.writes
}

// finderFunc adapts a function to Finder.
type finderFunc func(ctx context.Context, q lyrics.Query) (lyrics.Result, error)

func (fn finderFunc) Lookup(ctx context.Context, q lyrics.Query) (lyrics.Result, error) {
	return fn(ctx, q)
}

func inPlace(paths ...string) []model.Track {
	tracks := make([]model.Track, len(paths))
	for i, p := range paths {
		tracks[i] = model.Track{Source: p, Destination: p}
	}
	return tracks
}

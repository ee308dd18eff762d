package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
)

// ErrInvalidInputKind is returned when source and destination are not both
// files or both directories.
var ErrInvalidInputKind = errors.New("source and destination must be both files or both directories")

// Resolve enumerates the tracks under src and maps each one to its
// destination under dst.
//
// When src and dst are files the single pair is returned without any
// extension check. When they are directories, regular files with a known
// audio extension are collected, recursively if nested is set. Results are
// ordered by source path.
//
// Example:
//
//	tracks, err := Resolve("/music", "/music", true)
//	// every Track has Source == Destination
func Resolve(src, dst string, nested bool) ([]Track, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("stat source: %w", err)
	}
	dstInfo, err := os.Stat(dst)
	if err != nil {
		return nil, fmt.Errorf("stat destination: %w", err)
	}

	switch {
	case srcInfo.Mode().IsRegular() && dstInfo.Mode().IsRegular():
		srcPath, err := canonical(src)
		if err != nil {
			return nil, err
		}
		dstPath, err := canonical(dst)
		if err != nil {
			return nil, err
		}
		return []Track{{Source: srcPath, Destination: dstPath}}, nil
	case srcInfo.IsDir() && dstInfo.IsDir():
	default:
		return nil, fmt.Errorf("%w: %s, %s", ErrInvalidInputKind, src, dst)
	}

	srcRoot, err := canonical(src)
	if err != nil {
		return nil, err
	}
	dstRoot, err := canonical(dst)
	if err != nil {
		return nil, err
	}
	inPlace := os.SameFile(srcInfo, dstInfo)

	found, err := listTracks(srcRoot, nested)
	if err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(found))
	for _, c := range found {
		track := Track{Source: c.path, Destination: c.path}
		if !inPlace {
			track.Destination = filepath.Join(dstRoot, c.name)
		}
		tracks = append(tracks, track)
	}

	return tracks, nil
}

// candidate is a discovered track: its resolved path and the name it was
// found under.
type candidate struct {
	path string
	name string
}

func listTracks(root string, nested bool) ([]candidate, error) {
	if !nested {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("read directory: %w", err)
		}
		var found []candidate
		for _, entry := range entries {
			if c, ok := inspect(filepath.Join(root, entry.Name())); ok {
				found = append(found, c)
			}
		}
		return found, nil
	}

	var (
		mu    sync.Mutex
		found []candidate
	)
	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// Unreadable subtrees are skipped.
			return nil
		}
		if d.IsDir() {
			return nil
		}
		c, ok := inspect(path)
		if !ok {
			return nil
		}
		mu.Lock()
		found = append(found, c)
		mu.Unlock()
		return nil
	}
	if err := fastwalk.Walk(&fastwalk.Config{Follow: false}, root, walkFn); err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	// fastwalk visits entries concurrently.
	slices.SortFunc(found, func(a, b candidate) int {
		return strings.Compare(a.path, b.path)
	})
	return found, nil
}

// inspect accepts path if it has a known extension and resolves to a
// regular file.
func inspect(path string) (candidate, bool) {
	if !IsTrackFile(path) {
		return candidate{}, false
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return candidate{}, false
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return candidate{}, false
	}
	return candidate{path: resolved, name: filepath.Base(path)}, true
}

func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolute path of %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return resolved, nil
}

package ioutils

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	// SyncedExt is the extension of timestamped lyric sidecars.
	SyncedExt = ".lrc"

	// PlainExt is the extension of plain-text lyric sidecars.
	PlainExt = ".txt"
)

// CopyFile copies a file from source to destination.
//
// The destination is created if it doesn't exist, or truncated if it does.
// The source's permission bits and modification time are carried over.
//
// Example:
//
//	err := CopyFile(ctx, "/path/to/source.mp3", "/path/to/dest.mp3")
func CopyFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	info, err := sourceFile.Stat()
	if err != nil {
		return err
	}

	destFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		return err
	}
	if err := destFile.Close(); err != nil {
		return err
	}

	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Touch creates path as an empty file if it does not exist, and otherwise
// bumps its modification time.
func Touch(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	now := timeNow()
	return os.Chtimes(path, now, now)
}

// SameFile reports whether a and b name the same file on disk.
func SameFile(a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	return os.SameFile(ai, bi), nil
}

// Exists reports whether path exists. Errors other than "not exist" count
// as existing so callers never overwrite something they could not inspect.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// SidecarPath returns trackPath with its extension replaced by ext.
//
// Example:
//
//	SidecarPath("/music/01 Song.flac", SyncedExt) // "/music/01 Song.lrc"
func SidecarPath(trackPath, ext string) string {
	return strings.TrimSuffix(trackPath, filepath.Ext(trackPath)) + ext
}

// EnsureDir creates a directory and all parent directories if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

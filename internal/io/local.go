package ioutils

import (
	"context"
	"os"
	"time"
)

var timeNow = time.Now

// Local performs file operations against the local filesystem.
type Local struct{}

func (Local) Touch(path string) error { return Touch(path) }

func (Local) SameFile(a, b string) (bool, error) { return SameFile(a, b) }

func (Local) Copy(ctx context.Context, src, dst string) error { return CopyFile(ctx, src, dst) }

func (Local) Exists(path string) bool { return Exists(path) }

func (Local) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (Local) WriteText(ctx context.Context, path, text string) error {
	return WriteFile(ctx, path, []byte(text))
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	ioutils "github.com/handiism/tagpatch/internal/io"
	"github.com/handiism/tagpatch/internal/model"
	"github.com/handiism/tagpatch/internal/patch"
	"github.com/handiism/tagpatch/internal/tui"
)

var errNeedsConfirmation = errors.New("stdin is not a terminal; pass --assume-yes to apply without confirmation")

type patchBuilder struct {
	// progressTitle enables the progress view during Prepare when set.
	progressTitle string
	build         func(tracks []model.Track, deps patch.Deps, report func(done, total int)) patch.Patch
}

func runPatch(cmd *cobra.Command, cctx *commandContext, flags patchFlags, builder patchBuilder) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	logger := cctx.logger(errOut)

	src := flags.src
	if src == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		src = wd
	}
	dst := flags.dst
	if dst == "" {
		dst = src
	}
	if err := ensureDestination(dst); err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	tracks, err := model.Resolve(src, dst, flags.nested)
	if err != nil {
		return err
	}
	if len(tracks) == 0 {
		fmt.Fprintln(out, "No music files found in src.")
		return nil
	}
	logger.Debug("resolved tracks", "count", len(tracks), "src", src, "dst", dst)

	deps := patch.Deps{Logger: logger}
	var (
		p     patch.Patch
		table patch.Table
	)
	prepare := func(ctx context.Context, report func(done, total int)) error {
		p = builder.build(tracks, deps, report)
		var perr error
		table, perr = p.Prepare(ctx)
		return perr
	}
	if builder.progressTitle != "" && isTerminal(errOut) {
		err = withBufferedLog(logger, errOut, func() error {
			return tui.RunWithProgress(ctx, cmd.InOrStdin(), errOut, builder.progressTitle, prepare)
		})
	} else {
		err = prepare(ctx, nil)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, tui.RenderTable(p, table))

	if !flags.assumeYes {
		in := cmd.InOrStdin()
		if !isTerminal(in) {
			return errNeedsConfirmation
		}
		ok, err := tui.Confirm(ctx, in, out, "Apply these changes?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	changes := p.Apply(ctx)
	fmt.Fprint(out, tui.RenderChangeLog(changes))
	fmt.Fprintln(out, tui.Summary(changes))
	return ctx.Err()
}

// ensureDestination creates dst when missing: a directory when the path
// has no extension, an empty file otherwise.
func ensureDestination(dst string) error {
	if ioutils.Exists(dst) {
		return nil
	}
	if filepath.Ext(dst) == "" {
		return ioutils.EnsureDir(dst)
	}
	if err := ioutils.EnsureDir(filepath.Dir(dst)); err != nil {
		return err
	}
	return ioutils.Touch(dst)
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/handiism/tagpatch/internal/http"
	"github.com/handiism/tagpatch/internal/lyrics"
	"github.com/handiism/tagpatch/internal/model"
	"github.com/handiism/tagpatch/internal/patch"
)

type patchFlags struct {
	src       string
	dst       string
	assumeYes bool
	nested    bool
}

func (f *patchFlags) register(cmd *cobra.Command, withDst bool) {
	cmd.Flags().StringVarP(&f.src, "src", "s", "", "Source file or directory (default: current directory)")
	if withDst {
		cmd.Flags().StringVarP(&f.dst, "dst", "d", "", "Destination file or directory (default: the source)")
	}
	cmd.Flags().BoolVarP(&f.assumeYes, "assume-yes", "y", false, "Apply without asking for confirmation")
	cmd.Flags().BoolVarP(&f.nested, "nested", "n", false, "Descend into subdirectories")
}

func newArtistNameCommand(ctx *commandContext) *cobra.Command {
	var flags patchFlags
	cmd := &cobra.Command{
		Use:   "artist-name",
		Short: "Normalize artist delimiters to '/'",
		Long:  patch.NewArtistNamePatch(nil, patch.Deps{}).Help(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(cmd, ctx, flags, patchBuilder{
				build: func(tracks []model.Track, deps patch.Deps, _ func(done, total int)) patch.Patch {
					return patch.NewArtistNamePatch(tracks, deps)
				},
			})
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newEmbedLrcCommand(ctx *commandContext) *cobra.Command {
	var flags patchFlags
	cmd := &cobra.Command{
		Use:   "embed-lrc",
		Short: "Embed .lrc sidecar files into the lyrics tag",
		Long:  patch.NewEmbedLyricsPatch(nil, patch.Deps{}).Help(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(cmd, ctx, flags, patchBuilder{
				build: func(tracks []model.Track, deps patch.Deps, _ func(done, total int)) patch.Patch {
					return patch.NewEmbedLyricsPatch(tracks, deps)
				},
			})
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newDownloadLrcCommand(ctx *commandContext) *cobra.Command {
	var flags patchFlags
	cmd := &cobra.Command{
		Use:   "download-lrc",
		Short: "Download missing lyrics as .lrc or .txt files",
		Long:  patch.NewDownloadLyricsPatch(nil, nil, patch.Deps{}).Help(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return runPatch(cmd, ctx, flags, patchBuilder{
				progressTitle: "Looking up lyrics",
				build: func(tracks []model.Track, deps patch.Deps, report func(done, total int)) patch.Patch {
					client := lyrics.NewClient(cfg.Lyrics.BaseURL, http.NewClient(cfg.ToHTTPOptions()), deps.Logger)
					return patch.NewDownloadLyricsPatch(tracks, client, deps,
						patch.WithLookupTimeout(cfg.LookupTimeout()),
						patch.WithProgress(report),
					)
				},
			})
		},
	}
	flags.register(cmd, false)
	return cmd
}

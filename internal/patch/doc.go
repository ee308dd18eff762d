// Package patch implements the two-phase mutation pipeline shared by every
// tag operation.
//
// # Prepare and Apply
//
// A Patch is built over the tracks returned by model.Resolve. Prepare runs
// the dry run: it inspects every track without touching the disk, stores
// one change record per track, and returns a Table for review. Apply
// replays exactly those records; nothing is recomputed, so what was shown
// is what gets written.
//
//	p := patch.NewArtistNamePatch(tracks, patch.Deps{Logger: logger})
//	table, err := p.Prepare(ctx)
//	if err != nil {
//	    return err
//	}
//	// render table, ask for confirmation
//	changeLog := p.Apply(ctx)
//	fmt.Print(changeLog)
//
// Prepare may be called once per instance; a second call returns
// ErrAlreadyPrepared.
//
// # Failure Isolation
//
// Apply never fails as a whole. Every item runs behind its own boundary and
// any error (or panic) is recorded in the ChangeLog as
//
//	Error - failed to patch <dst>: <message>
//
// before moving on to the next item.
//
// # Patches
//
//   - ArtistNamePatch normalizes artist delimiters to "/".
//   - EmbedLyricsPatch embeds .lrc sidecars into the lyrics tag.
//   - DownloadLyricsPatch fetches missing lyrics and writes sidecars. Its
//     lookups run concurrently behind a Gate admitting at most
//     MaxConcurrentLookups requests at a time.
package patch

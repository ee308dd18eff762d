// Package audio provides tag reading and writing for audio files.
//
// # Tag Store
//
// Store opens a File, a small key-value view over the container's tags:
//
//	store := audio.NewLocalStore()
//	f, err := store.Open("/music/song.mp3")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	artist := f.Get(audio.FieldArtist)
//	f.Set(audio.FieldArtist, "Sigrid/Bring Me The Horizon")
//	err = f.Save()
//
// The backend is chosen by extension:
//   - .mp3: ID3v2 frames (TPE1, TIT2, TALB, USLT)
//   - .flac: Vorbis comments (ARTIST, TITLE, ALBUM, LYRICS)
//   - .ogg, .opus, .m4a, .wav: TagLib property map (ARTIST, TITLE, ALBUM,
//     LYRICS)
//
// A stream the parser cannot handle, truncated or otherwise corrupt, makes
// Open fail for that file only.
//
// # Duration
//
// Store.Duration probes the stream length used for lyric lookups, with
// audioduration for MP3 and FLAC and TagLib's audio properties for the
// rest. Other extensions return ErrUnsupportedFormat.
package audio

// Package lyrics looks up song lyrics on an LRCLIB-compatible service.
//
// # Lookup
//
//	client := lyrics.NewClient(lyrics.DefaultBaseURL, httpClient, logger)
//	res, err := client.Lookup(ctx, lyrics.Query{
//	    Artist:   "Sigrid",
//	    Title:    "Bad Life",
//	    Album:    "How To Let Go",
//	    Duration: 3*time.Minute + 19*time.Second,
//	})
//	if res.Synced != "" {
//	    // timestamped lyrics, written as .lrc
//	}
//
// The service answers GET <base>/get?artist_name=..&track_name=..
// [&album_name=..][&duration=<seconds>] with either a JSON object or an
// array of objects carrying optional syncedLyrics and plainLyrics fields.
// For an array the first element wins.
package lyrics

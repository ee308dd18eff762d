// Package http provides the HTTP client used for remote metadata lookups.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Client-wide timeout handling
//   - Query parameter encoding
//   - Optional request pacing with a token-bucket limiter
//   - JSON decoding of successful responses
//
// # Basic Usage
//
//	client := http.NewClient(http.Options{UserAgent: "tagpatch"})
//
//	var out map[string]any
//	err := client.GetJSON(ctx, "https://lrclib.net/api/get", url.Values{"track_name": {"Song"}}, &out)
//
// Non-2xx responses are returned as *StatusError so callers can tell a
// missing resource from a transport failure.
package http

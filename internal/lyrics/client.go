package lyrics

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/handiism/tagpatch/internal/http"
)

// DefaultBaseURL is the public LRCLIB API.
const DefaultBaseURL = "https://lrclib.net/api"

// ErrNotFound is returned when the service has no record for a query.
var ErrNotFound = errors.New("lyrics not found")

// Query identifies a track to look up. Album and Duration are optional.
type Query struct {
	Artist   string
	Title    string
	Album    string
	Duration time.Duration
}

// Values encodes q as request parameters. Duration is sent as whole
// seconds, rounded.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("artist_name", q.Artist)
	v.Set("track_name", q.Title)
	if q.Album != "" {
		v.Set("album_name", q.Album)
	}
	if q.Duration > 0 {
		v.Set("duration", strconv.FormatInt(int64(q.Duration.Round(time.Second)/time.Second), 10))
	}
	return v
}

// Result carries whatever lyrics the service returned. Either field may
// be empty.
type Result struct {
	Synced string
	Plain  string
}

// Empty reports whether neither form of lyrics is present.
func (r Result) Empty() bool {
	return strings.TrimSpace(r.Synced) == "" && strings.TrimSpace(r.Plain) == ""
}

// Client queries the lookup service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// NewClient creates a Client for the service rooted at baseURL.
func NewClient(baseURL string, httpClient *http.Client, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.NewClient(http.Options{})
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// Lookup fetches the lyrics for q. A 404 from the service is reported as
// ErrNotFound; any other failure is returned wrapped.
func (c *Client) Lookup(ctx context.Context, q Query) (Result, error) {
	c.logger.Debug("looking up lyrics", "artist", q.Artist, "title", q.Title, "album", q.Album)

	body, err := c.http.Get(ctx, c.baseURL+"/get", q.Values())
	if err != nil {
		if http.IsStatus(err, nethttp.StatusNotFound) {
			return Result{}, ErrNotFound
		}
		return Result{}, fmt.Errorf("lookup %s - %s: %w", q.Artist, q.Title, err)
	}

	res, err := decodeResponse(body)
	if err != nil {
		return Result{}, fmt.Errorf("decode lookup response: %w", err)
	}
	return res, nil
}

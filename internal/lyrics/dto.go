package lyrics

import (
	"bytes"
	"encoding/json"
)

// jsonRecord is one record returned by the lookup service.
type jsonRecord struct {
	ID           int     `json:"id"`
	TrackName    string  `json:"trackName"`
	ArtistName   string  `json:"artistName"`
	AlbumName    string  `json:"albumName"`
	Duration     float64 `json:"duration"`
	Instrumental bool    `json:"instrumental"`
	PlainLyrics  *string `json:"plainLyrics"`
	SyncedLyrics *string `json:"syncedLyrics"`
}

// ToResult converts the record to a Result, mapping null fields to "".
func (r *jsonRecord) ToResult() Result {
	var res Result
	if r.SyncedLyrics != nil {
		res.Synced = *r.SyncedLyrics
	}
	if r.PlainLyrics != nil {
		res.Plain = *r.PlainLyrics
	}
	return res
}

// decodeResponse accepts a single record or an array of records and
// returns the first one. An empty array yields an empty Result.
func decodeResponse(body []byte) (Result, error) {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []jsonRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return Result{}, err
		}
		if len(records) == 0 {
			return Result{}, nil
		}
		return records[0].ToResult(), nil
	}

	var record jsonRecord
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return Result{}, err
	}
	return record.ToResult(), nil
}

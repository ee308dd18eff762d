package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hcl/audioduration"
	"go.senan.xyz/taglib"
)

var durationTypes = map[string]int{
	".mp3":  audioduration.TypeMp3,
	".flac": audioduration.TypeFlac,
}

// taglibDurations are probed through TagLib's audio properties.
var taglibDurations = map[string]struct{}{
	".ogg":  {},
	".opus": {},
	".m4a":  {},
	".wav":  {},
}

func probeDuration(path string) (time.Duration, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := taglibDurations[ext]; ok {
		props, err := taglib.ReadProperties(path)
		if err != nil {
			return 0, fmt.Errorf("probe duration: %w", err)
		}
		return props.Length, nil
	}

	kind, ok := durationTypes[ext]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	seconds, err := audioduration.Duration(f, kind)
	if err != nil {
		return 0, fmt.Errorf("probe duration: %w", err)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}

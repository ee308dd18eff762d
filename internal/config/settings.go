package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/handiism/tagpatch/internal/http"
)

//go:embed config.example.toml
var exampleConf []byte

// ErrExists is returned by CreateFile when the target already exists.
var ErrExists = errors.New("config file already exists")

// Settings holds all configuration options.
type Settings struct {
	Lyrics LyricsSettings `toml:"lyrics"`
	Log    LogSettings    `toml:"log"`
}

// LyricsSettings configures the lyrics lookup service.
type LyricsSettings struct {
	BaseURL           string  `toml:"base_url"`
	UserAgent         string  `toml:"user_agent"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// LogSettings configures diagnostics.
type LogSettings struct {
	Level string `toml:"level"`
}

// DefaultPath returns the per-user config file location,
// $XDG_CONFIG_HOME/tagpatch/config.toml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "tagpatch", "config.toml")
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	var s Settings
	if _, err := toml.Decode(string(exampleConf), &s); err != nil {
		panic(fmt.Sprintf("parse embedded default config: %v", err))
	}
	return &s
}

// Load reads settings from a TOML file. Keys missing from the file keep
// their default value; a missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultSettings(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	settings := DefaultSettings()
	md, err := toml.Decode(string(data), settings)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return settings, nil
}

// Validate checks value ranges.
func (s *Settings) Validate() error {
	if s.Lyrics.TimeoutSeconds <= 0 {
		return fmt.Errorf("lyrics.timeout_seconds must be positive, got %d", s.Lyrics.TimeoutSeconds)
	}
	if s.Lyrics.RequestsPerSecond < 0 {
		return fmt.Errorf("lyrics.requests_per_second must not be negative, got %g", s.Lyrics.RequestsPerSecond)
	}
	if _, err := log.ParseLevel(s.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Save writes settings to a TOML file, creating parent directories.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// CreateFile writes the commented example config to path. It refuses to
// overwrite an existing file.
func CreateFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, exampleConf, 0644)
}

// LookupTimeout returns the bound for a single lyrics lookup.
func (s *Settings) LookupTimeout() time.Duration {
	return time.Duration(s.Lyrics.TimeoutSeconds) * time.Second
}

// LogLevel returns the configured log level, falling back to info.
func (s *Settings) LogLevel() log.Level {
	level, err := log.ParseLevel(s.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// ToHTTPOptions converts settings to client options.
func (s *Settings) ToHTTPOptions() http.Options {
	return http.Options{
		UserAgent:         s.Lyrics.UserAgent,
		Timeout:           s.LookupTimeout(),
		RequestsPerSecond: s.Lyrics.RequestsPerSecond,
	}
}

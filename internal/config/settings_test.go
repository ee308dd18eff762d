package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "https://lrclib.net/api", s.Lyrics.BaseURL)
	assert.Equal(t, 10*time.Second, s.LookupTimeout())
	assert.Zero(t, s.Lyrics.RequestsPerSecond)
	assert.Equal(t, log.InfoLevel, s.LogLevel())
	assert.NoError(t, s.Validate())

	opts := s.ToHTTPOptions()
	assert.Equal(t, s.Lyrics.UserAgent, opts.UserAgent)
	assert.Equal(t, 10*time.Second, opts.Timeout)
}

func TestDefaultPath(t *testing.T) {
	p := DefaultPath()
	assert.True(t, filepath.IsAbs(p))
	assert.Equal(t, filepath.Join("tagpatch", "config.toml"), filepath.Join(filepath.Base(filepath.Dir(p)), filepath.Base(p)))
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		s, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultSettings(), s)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[lyrics]\ntimeout_seconds = 3\n\n[log]\nlevel = \"debug\"\n"), 0644))

		s, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 3*time.Second, s.LookupTimeout())
		assert.Equal(t, log.DebugLevel, s.LogLevel())
		assert.Equal(t, "https://lrclib.net/api", s.Lyrics.BaseURL)
	})

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed", "[lyrics\n", "parse config"},
		{"unknown key", "[lyrics]\nretries = 3\n", "unknown key"},
		{"zero timeout", "[lyrics]\ntimeout_seconds = 0\n", "timeout_seconds"},
		{"negative rate", "[lyrics]\nrequests_per_second = -1.0\n", "requests_per_second"},
		{"bad level", "[log]\nlevel = \"loud\"\n", "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	s := DefaultSettings()
	s.Lyrics.BaseURL = "http://localhost:8080/api"
	s.Lyrics.RequestsPerSecond = 2.5

	require.NoError(t, s.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagpatch", "config.toml")
	require.NoError(t, CreateFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# tagpatch configuration"))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)

	assert.ErrorIs(t, CreateFile(path), ErrExists)
}

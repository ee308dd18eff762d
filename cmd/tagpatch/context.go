package main

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/handiism/tagpatch/internal/config"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Settings
	configErr  error
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag != nil {
		if path := strings.TrimSpace(*c.configFlag); path != "" {
			return path
		}
	}
	return config.DefaultPath()
}

func (c *commandContext) ensureConfig() (*config.Settings, error) {
	c.configOnce.Do(func() {
		c.config, c.configErr = config.Load(c.configPath())
	})
	return c.config, c.configErr
}

// logger creates the diagnostics logger writing to w. A configuration
// that fails to load only costs the configured level.
func (c *commandContext) logger(w io.Writer) *log.Logger {
	level := log.InfoLevel
	cfg, cfgErr := c.ensureConfig()
	if cfgErr == nil {
		level = cfg.LogLevel()
	}
	if c.verboseFlag != nil && *c.verboseFlag {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tagpatch",
		Level:           level,
	})
	if cfgErr != nil {
		logger.Warn("configuration ignored", "path", c.configPath(), "err", cfgErr)
	}
	return logger
}

// withBufferedLog holds everything logger writes while fn runs and flushes
// it to w afterwards, so log lines never tear a full-screen view.
func withBufferedLog(logger *log.Logger, w io.Writer, fn func() error) error {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer func() {
		logger.SetOutput(w)
		_, _ = buf.WriteTo(w)
	}()
	return fn()
}

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

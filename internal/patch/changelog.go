package patch

import (
	"fmt"
	"strings"
	"sync"
)

// Level indicates the kind of a change log entry.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Entry is one line of a change log.
type Entry struct {
	Message string
	Level   Level
}

// ChangeLog accumulates the outcome of Apply, one entry per event, in the
// order the events happened. It is safe for concurrent use.
type ChangeLog struct {
	mu      sync.Mutex
	entries []Entry
}

// NewChangeLog creates an empty ChangeLog.
func NewChangeLog() *ChangeLog {
	return &ChangeLog{}
}

func (c *ChangeLog) add(level Level, format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, Entry{Message: fmt.Sprintf(format, args...), Level: level})
}

// Copied records that src bytes were copied to dst.
func (c *ChangeLog) Copied(dst string) {
	c.add(LevelInfo, "Copied - %s", dst)
}

// Unchanged records that dst already held the wanted value.
func (c *ChangeLog) Unchanged(dst string) {
	c.add(LevelInfo, "Unchanged - %s", dst)
}

// Patched records a tag write on dst.
func (c *ChangeLog) Patched(dst string) {
	c.add(LevelSuccess, "Patched - %s", dst)
}

// Downloaded records a lyrics sidecar written to path.
func (c *ChangeLog) Downloaded(synced bool, path string) {
	kind := "plain"
	if synced {
		kind = "synced"
	}
	c.add(LevelSuccess, "Downloaded %s lyrics - %s", kind, path)
}

// Failed records a per-item failure.
func (c *ChangeLog) Failed(dst string, err error) {
	c.add(LevelError, "Error - failed to patch %s: %v", dst, err)
}

// Aborted records that the remaining items were not processed because
// the run was cancelled.
func (c *ChangeLog) Aborted(remaining int, err error) {
	c.add(LevelWarning, "Aborted - %d item(s) not processed: %v", remaining, err)
}

// Entries returns a copy of the recorded entries.
func (c *ChangeLog) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries.
func (c *ChangeLog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Count returns the number of entries at level.
func (c *ChangeLog) Count(level Level) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// String renders the log, one entry per line.
func (c *ChangeLog) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var b strings.Builder
	for _, e := range c.entries {
		b.WriteString(e.Message)
		b.WriteByte('\n')
	}
	return b.String()
}

package tui

import (
	"fmt"
	"strings"

	"github.com/handiism/tagpatch/internal/patch"
)

// RenderChangeLog draws every entry on its own line, styled by level.
func RenderChangeLog(changes *patch.ChangeLog) string {
	var b strings.Builder
	for _, e := range changes.Entries() {
		style, prefix := levelStyle(e.Level)
		b.WriteString(style.Render(prefix + " " + e.Message))
		b.WriteString("\n")
	}
	return b.String()
}

// Summary is the closing line printed after apply.
func Summary(changes *patch.ChangeLog) string {
	switch n := changes.Count(patch.LevelError); n {
	case 0:
		return successStyle.Render("Applied.")
	case 1:
		return warningStyle.Render("Applied.") + " " + dimStyle.Render("1 item failed")
	default:
		return warningStyle.Render("Applied.") + " " + dimStyle.Render(fmt.Sprintf("%d items failed", n))
	}
}

package common

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// ClampLines cuts every line of text to width display cells. ANSI sequences
// are preserved. A non-positive width disables clamping.
func ClampLines(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		if ansi.StringWidth(ln) <= width {
			continue
		}
		lines[i] = ansi.Truncate(ln, width-1, "…")
	}
	return strings.Join(lines, "\n")
}

// Hints joins key hints the way every footer shows them.
func Hints(items ...string) string {
	return "  " + strings.Join(items, " • ")
}

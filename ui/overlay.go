package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// placeOverlay draws fg over bg with its top-left cell at (x, y).
func placeOverlay(x, y int, fg, bg string) string {
	lines := strings.Split(bg, "\n")
	for i, fgLine := range strings.Split(fg, "\n") {
		row := y + i
		if row < 0 {
			continue
		}
		for row >= len(lines) {
			lines = append(lines, "")
		}
		line := lines[row]
		left := ansi.Truncate(line, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ansi.TruncateLeft(line, x+ansi.StringWidth(fgLine), "")
		lines[row] = left + fgLine + right
	}
	return strings.Join(lines, "\n")
}

// clipLines keeps at most n lines of s.
func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:max(n, 0)]
	}
	return strings.Join(lines, "\n")
}

// padLines extends s with empty lines up to n lines.
func padLines(s string, n int) string {
	count := strings.Count(s, "\n") + 1
	if count >= n {
		return s
	}
	return s + strings.Repeat("\n", n-count)
}

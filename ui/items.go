package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/drake/einvite/ui/style"
)

// backgroundItem is a bundled or registered background in the chooser.
type backgroundItem string

func (b backgroundItem) FilterValue() string { return string(b) }

func (b backgroundItem) Render(width int, selected bool, matches []int, styles style.Styles) string {
	base, hl := styles.OverlayNormal, styles.OverlayMatch
	if selected {
		base, hl = styles.OverlaySelected, styles.OverlayMatchSelected
	}
	marked := make(map[int]bool, len(matches))
	for _, i := range matches {
		marked[i] = true
	}

	var sb strings.Builder
	sb.WriteString(base.Render(" "))
	for i, r := range string(b) {
		if marked[i] {
			sb.WriteString(hl.Render(string(r)))
		} else {
			sb.WriteString(base.Render(string(r)))
		}
	}
	row := sb.String()
	if pad := width - ansi.StringWidth(row); pad > 0 {
		row += base.Render(strings.Repeat(" ", pad))
	}
	return row
}

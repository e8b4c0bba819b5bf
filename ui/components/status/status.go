package status

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/drake/einvite/ui/style"
)

// Level sets how a status message is styled.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Bar displays the last notice on the left and key hints on the right.
type Bar struct {
	text  string
	level Level
	hints string
	width int

	styles style.Styles
}

// New creates a new status bar.
func New(styles style.Styles) Bar {
	return Bar{styles: styles}
}

// SetWidth updates the status bar width.
func (s *Bar) SetWidth(w int) {
	s.width = w
}

// SetText replaces the notice.
func (s *Bar) SetText(text string, level Level) {
	s.text = text
	s.level = level
}

// Clear removes the notice.
func (s *Bar) Clear() {
	s.text = ""
	s.level = LevelInfo
}

// Text returns the current notice.
func (s *Bar) Text() string {
	return s.text
}

// Level returns the level of the current notice.
func (s *Bar) Level() Level {
	return s.level
}

// SetHints sets the key hints shown on the right.
func (s *Bar) SetHints(hints string) {
	s.hints = hints
}

// View renders the status bar.
func (s *Bar) View() string {
	var left string
	switch s.level {
	case LevelError:
		left = s.styles.Error.Render("✗ " + s.text)
	case LevelSuccess:
		left = s.styles.Success.Render("✓ " + s.text)
	default:
		left = s.styles.StatusBar.Render(s.text)
	}
	if s.text == "" {
		left = ""
	}
	right := s.styles.Muted.Render(s.hints)

	padding := s.width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if padding < 1 {
		// Hints give way to the notice.
		return ansi.Truncate(left, s.width, "…")
	}
	return left + strings.Repeat(" ", padding) + right
}

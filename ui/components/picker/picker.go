package picker

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/drake/einvite/ui/style"
)

// Config holds picker configuration.
type Config struct {
	MaxVisible int    // Maximum number of visible items
	Header     string // Optional header text (e.g., "Background: ")
	EmptyText  string // Text to show when no matches (default: "No matches")
}

// Model is a generic fuzzy-filtering selector.
type Model[T Item] struct {
	items     []T
	filtered  []T
	positions [][]int
	query     string
	selected  int
	scrollOff int
	config    Config
	styles    style.Styles
	width     int
}

// New creates a new picker with the given configuration.
func New[T Item](config Config, styles style.Styles) *Model[T] {
	if config.MaxVisible == 0 {
		config.MaxVisible = 10
	}
	if config.EmptyText == "" {
		config.EmptyText = "No matches"
	}
	return &Model[T]{
		config: config,
		styles: styles,
	}
}

// source adapts a slice of items to fuzzy.Source.
type source[T Item] []T

func (s source[T]) String(i int) string { return s[i].FilterValue() }
func (s source[T]) Len() int            { return len(s) }

// SetItems sets the items to filter.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.Reset()
}

// SetWidth updates the picker width.
func (m *Model[T]) SetWidth(w int) {
	m.width = w
}

// Width returns the current width.
func (m *Model[T]) Width() int {
	return m.width
}

// Query returns the current filter query.
func (m *Model[T]) Query() string {
	return m.query
}

// Filter narrows the list to items fuzzy-matching query, best match first.
func (m *Model[T]) Filter(query string) {
	m.query = query
	if query == "" {
		m.Reset()
		return
	}

	found := fuzzy.FindFrom(query, source[T](m.items))
	m.filtered = make([]T, len(found))
	m.positions = make([][]int, len(found))
	for i, match := range found {
		m.filtered[i] = m.items[match.Index]
		m.positions[i] = match.MatchedIndexes
	}

	m.selected = 0
	m.scrollOff = 0
}

// SelectUp moves selection up with wraparound.
func (m *Model[T]) SelectUp() {
	if len(m.filtered) == 0 {
		return
	}
	m.selected--
	if m.selected < 0 {
		m.selected = len(m.filtered) - 1
	}
	m.adjustScroll()
}

// SelectDown moves selection down with wraparound.
func (m *Model[T]) SelectDown() {
	if len(m.filtered) == 0 {
		return
	}
	m.selected++
	if m.selected >= len(m.filtered) {
		m.selected = 0
	}
	m.adjustScroll()
}

func (m *Model[T]) adjustScroll() {
	if m.selected < m.scrollOff {
		m.scrollOff = m.selected
	} else if m.selected >= m.scrollOff+m.config.MaxVisible {
		m.scrollOff = m.selected - m.config.MaxVisible + 1
	}
}

// Reset clears the query and selection.
func (m *Model[T]) Reset() {
	m.query = ""
	m.filtered = m.items
	m.positions = nil
	m.selected = 0
	m.scrollOff = 0
}

// Selected returns the currently selected item, or false if none.
func (m *Model[T]) Selected() (T, bool) {
	var zero T
	if m.selected < 0 || m.selected >= len(m.filtered) {
		return zero, false
	}
	return m.filtered[m.selected], true
}

// Count returns the number of filtered items.
func (m *Model[T]) Count() int {
	return len(m.filtered)
}

// Height returns the rendered height of this picker (including border).
func (m *Model[T]) Height() int {
	h := min(len(m.filtered), m.config.MaxVisible)
	if h == 0 {
		h = 1 // "No matches" placeholder
	}
	if m.config.Header != "" {
		h++
	}
	return h + 2
}

// View renders the picker overlay.
func (m *Model[T]) View() string {
	var lines []string

	if m.config.Header != "" {
		lines = append(lines, m.styles.Muted.Render(m.config.Header)+m.query+"█")
	}

	if len(m.filtered) == 0 {
		lines = append(lines, m.styles.Muted.Render("  "+m.config.EmptyText))
	}

	end := min(m.scrollOff+m.config.MaxVisible, len(m.filtered))
	for i := m.scrollOff; i < end; i++ {
		var positions []int
		if i < len(m.positions) {
			positions = m.positions[i]
		}
		lines = append(lines, m.filtered[i].Render(m.width-4, i == m.selected, positions, m.styles))
	}

	return m.styles.OverlayBorder.Width(m.width - 4).Render(strings.Join(lines, "\n"))
}

package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/drake/einvite/ui/style"
)

const (
	paletteCols = 10
	swatchWidth = 3

	// Offsets of the first swatch inside the overlay: border and padding
	// horizontally, border and header vertically.
	swatchLeft = 2
	swatchTop  = 2
)

// Saturation/value pairs for the colored rows, lightest first.
var paletteShades = [][2]float64{
	{0.30, 0.97},
	{0.55, 0.88},
	{0.75, 0.70},
	{0.85, 0.50},
	{0.90, 0.32},
}

// buildPalette returns a gray row followed by one row per shade, with one
// hue per column.
func buildPalette() []colorful.Color {
	palette := make([]colorful.Color, 0, paletteCols*(len(paletteShades)+1))
	for i := range paletteCols {
		v := float64(i) / float64(paletteCols-1)
		palette = append(palette, colorful.Color{R: v, G: v, B: v})
	}
	for _, shade := range paletteShades {
		for i := range paletteCols {
			hue := float64(i) * 360 / paletteCols
			palette = append(palette, colorful.Hsv(hue, shade[0], shade[1]).Clamped())
		}
	}
	return palette
}

// ColorPicker is the swatch overlay. While it is open it also holds the
// outside-click listener: pointer presses are only hit-tested while
// Listening reports true.
type ColorPicker struct {
	palette []colorful.Color
	cursor  int
	hex     textinput.Model
	editing bool

	visible  bool
	attached bool

	styles style.Styles
}

// NewColorPicker creates a closed picker.
func NewColorPicker(styles style.Styles) ColorPicker {
	hex := textinput.New()
	hex.Prompt = "Hex: "
	hex.Placeholder = "#1d3557"
	hex.CharLimit = 7
	hex.Width = 8
	return ColorPicker{
		palette: buildPalette(),
		hex:     hex,
		styles:  styles,
	}
}

// Open shows the picker with the cursor on the swatch nearest current and
// attaches the outside-click listener.
func (p *ColorPicker) Open(current string) {
	p.visible = true
	p.attached = true
	p.editing = false
	p.hex.Blur()
	p.hex.SetValue(current)
	if c, err := colorful.Hex(current); err == nil {
		p.cursor = p.nearest(c)
	}
}

// Close hides the picker and detaches the listener.
func (p *ColorPicker) Close() {
	p.visible = false
	p.attached = false
	p.editing = false
	p.hex.Blur()
}

// Visible reports whether the overlay is shown.
func (p *ColorPicker) Visible() bool { return p.visible }

// Listening reports whether the outside-click listener is attached.
func (p *ColorPicker) Listening() bool { return p.attached }

// Editing reports whether the hex entry has focus.
func (p *ColorPicker) Editing() bool { return p.editing }

// SetHex shows hex in the entry without moving focus.
func (p *ColorPicker) SetHex(hex string) {
	p.hex.SetValue(hex)
	if c, err := colorful.Hex(hex); err == nil {
		p.cursor = p.nearest(c)
	}
}

func (p *ColorPicker) nearest(c colorful.Color) int {
	best, dist := 0, math.Inf(1)
	for i, sw := range p.palette {
		if d := c.DistanceCIE94(sw); d < dist {
			best, dist = i, d
		}
	}
	return best
}

func (p *ColorPicker) rows() int {
	return len(p.palette) / paletteCols
}

// Width is the rendered width including border.
func (p *ColorPicker) Width() int {
	return paletteCols*swatchWidth + 4
}

// Height is the rendered height including border.
func (p *ColorPicker) Height() int {
	// header, grid, blank, hex entry, hints
	return p.rows() + 4 + 2
}

// SwatchAt returns the swatch under (x, y), relative to the overlay's
// top-left cell.
func (p *ColorPicker) SwatchAt(x, y int) (int, bool) {
	col := (x - swatchLeft) / swatchWidth
	row := y - swatchTop
	if x < swatchLeft || col >= paletteCols || row < 0 || row >= p.rows() {
		return 0, false
	}
	return row*paletteCols + col, true
}

// Choose moves the cursor to swatch i and returns its hex value.
func (p *ColorPicker) Choose(i int) string {
	p.cursor = i
	hex := p.palette[i].Hex()
	p.hex.SetValue(hex)
	return hex
}

// Update handles a key while the picker has focus. picked is non-empty
// when the key chose a color.
func (p ColorPicker) Update(msg tea.KeyMsg) (_ ColorPicker, picked string, cmd tea.Cmd) {
	if p.editing {
		switch msg.String() {
		case "enter":
			if c, err := colorful.Hex(strings.TrimSpace(p.hex.Value())); err == nil {
				picked = c.Hex()
				p.cursor = p.nearest(c)
			}
			return p, picked, nil
		case "tab", "esc":
			p.editing = false
			p.hex.Blur()
			return p, "", nil
		}
		p.hex, cmd = p.hex.Update(msg)
		return p, "", cmd
	}

	n := len(p.palette)
	switch msg.String() {
	case "left", "h":
		p.cursor = (p.cursor + n - 1) % n
	case "right", "l":
		p.cursor = (p.cursor + 1) % n
	case "up", "k":
		p.cursor = (p.cursor + n - paletteCols) % n
	case "down", "j":
		p.cursor = (p.cursor + paletteCols) % n
	case "enter", " ":
		picked = p.Choose(p.cursor)
	case "tab", "#":
		p.editing = true
		return p, "", p.hex.Focus()
	case "y":
		return p, "", copyCmd(p.hex.Value())
	case "p":
		return p, "", pasteCmd
	}
	return p, picked, nil
}

// View renders the overlay.
func (p *ColorPicker) View() string {
	lines := []string{p.styles.Label.Render("Pick a color")}

	for row := range p.rows() {
		var b strings.Builder
		for col := range paletteCols {
			i := row*paletteCols + col
			sw := p.palette[i]
			cell, st := "   ", lipgloss.NewStyle()
			if i == p.cursor {
				cell, st = " ◆ ", p.styles.SwatchCursor
			}
			fg := "#ffffff"
			if l, _, _ := sw.Lab(); l > 0.6 {
				fg = "#000000"
			}
			b.WriteString(st.
				Background(lipgloss.Color(sw.Hex())).
				Foreground(lipgloss.Color(fg)).
				Render(cell))
		}
		lines = append(lines, b.String())
	}

	lines = append(lines, "", p.hex.View(), p.styles.Hint.Render("#:hex y:copy p:paste"))
	return p.styles.OverlayBorder.Width(p.Width() - 2).Render(strings.Join(lines, "\n"))
}

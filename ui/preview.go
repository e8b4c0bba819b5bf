package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/drake/einvite/invite"
	"github.com/drake/einvite/render"
	"github.com/drake/einvite/ui/style"
)

// matte is the card color the terminal preview is drawn on.
var matte = color.RGBA{R: 0xf1, G: 0xfa, B: 0xee, A: 0xff}

// maxGap caps the cells inserted between letters.
const maxGap = 3

// letterGap maps a letter-spacing in pixels to blank cells between runes.
func letterGap(px float64) int {
	if px <= 0 {
		return 0
	}
	return min(int(px/2), maxGap)
}

// spaceOut inserts gap blanks between the runes of s. Text that would no
// longer fit in width is left as is.
func spaceOut(s string, gap, width int) string {
	if gap == 0 || s == "" {
		return s
	}
	sep := strings.Repeat(" ", gap)
	spaced := strings.Join(strings.Split(s, ""), sep)
	if runewidth.StringWidth(spaced) > width {
		return s
	}
	return spaced
}

// textColor resolves the preview color the same way the rasterizer does:
// anything that does not parse is black.
func textColor(hex string) lipgloss.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color(c.Hex())
}

func alignPosition(a invite.Alignment) lipgloss.Position {
	switch a {
	case invite.AlignLeft:
		return lipgloss.Left
	case invite.AlignRight:
		return lipgloss.Right
	}
	return lipgloss.Center
}

// renderText draws the text block of p into a width×height card. Empty
// segments take no rows and zero-size ones a blank row; the date gets a blank
// row above it.
func renderText(p render.Preview, width, height int, styles style.Styles) string {
	inner := max(width-2, 1)
	gap := letterGap(p.LetterSpacing)
	line := lipgloss.NewStyle().
		Width(inner).
		Align(alignPosition(p.Align)).
		Foreground(textColor(p.Color)).
		Background(lipgloss.Color("#f1faee"))

	var rows []string
	for _, seg := range p.Segments {
		if seg.Text == "" {
			continue
		}
		if seg.Role == render.RoleDate {
			rows = append(rows, line.Render(""))
		}
		if seg.Size <= 0 {
			rows = append(rows, line.Render(""))
			continue
		}
		st := line
		if seg.Role.Strong() {
			st = st.Bold(true)
		}
		if seg.Role == render.RoleAmpersand {
			st = st.Italic(true)
		}
		rows = append(rows, st.Render(spaceOut(seg.Text, gap, inner)))
	}

	block := strings.Join(rows, "\n")
	card := lipgloss.Place(inner, max(height-2, 1), lipgloss.Center, lipgloss.Center, block,
		lipgloss.WithWhitespaceBackground(lipgloss.Color("#f1faee")))
	return styles.Preview.Render(card)
}

// renderThumbnail draws cells as upper half blocks.
func renderThumbnail(cells [][]render.Cell) string {
	var b strings.Builder
	for i, row := range cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexOf(c.Top))).
				Background(lipgloss.Color(hexOf(c.Bottom))).
				Render("▀"))
		}
	}
	return b.String()
}

func hexOf(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// thumbnailSize fits the surface aspect ratio into width×height cells. Each
// cell holds two pixel rows.
func thumbnailSize(width, height int) (cols, rows int) {
	cols = width
	rows = cols * render.SurfaceHeight / render.SurfaceWidth / 2
	if rows > height {
		rows = height
		cols = rows * 2 * render.SurfaceWidth / render.SurfaceHeight
	}
	return cols, rows
}

// previewCaption names the background and font under the preview.
func previewCaption(p render.Preview) string {
	bg := "no background"
	if p.Background != nil {
		bg = p.Background.Source.Label()
	}
	return fmt.Sprintf("%s · %s", bg, p.Font.Label())
}

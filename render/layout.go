// Package render turns invitation state into a preview: first a pure layout
// description, then pixels.
package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/drake/einvite/invite"
)

// Preview surface geometry, in pixels.
const (
	SurfaceWidth   = 556
	SurfaceHeight  = 500
	CornerRadius   = 12
	SurfacePadding = 20
	BlockPadding   = 40
)

// BackgroundOpacity keeps overlaid text legible.
const BackgroundOpacity = 0.9

const (
	ampersandScale = 0.8
	detailScale    = 0.5

	// Used when the size entry does not parse as a number. A blank entry
	// only falls back for the names.
	fallbackNameSize      = 48
	fallbackAmpersandSize = 30
	fallbackDetailSize    = 18

	ampersandLineHeight = 36
	detailLineHeight    = 28
	dateMargin          = 16
	venueMargin         = 8
)

// Role identifies a line of the text block.
type Role int

const (
	RoleFirstName Role = iota
	RoleAmpersand
	RoleSecondName
	RoleDate
	RoleVenue
)

func (r Role) String() string {
	switch r {
	case RoleFirstName:
		return "first-name"
	case RoleAmpersand:
		return "ampersand"
	case RoleSecondName:
		return "second-name"
	case RoleDate:
		return "date"
	case RoleVenue:
		return "venue"
	}
	return "unknown"
}

// Strong reports whether the role is set in the heavier weight.
func (r Role) Strong() bool {
	return r == RoleFirstName || r == RoleAmpersand || r == RoleSecondName
}

// Segment is one line group of the text block.
type Segment struct {
	Role       Role
	Text       string
	Size       float64 // font size, px
	LineHeight float64 // px per wrapped line
	MarginTop  float64 // px above the segment
}

// BackgroundLayer is the optional image behind the text.
type BackgroundLayer struct {
	Source  invite.Background
	Opacity float64
}

// Preview describes the surface. It is a pure function of invite.State.
type Preview struct {
	Width, Height int
	Background    *BackgroundLayer
	Font          invite.Font
	Color         string
	Align         invite.Alignment
	LetterSpacing float64
	Segments      []Segment
}

// Layout derives the preview for s.
func Layout(s invite.State) Preview {
	p := Preview{
		Width:         SurfaceWidth,
		Height:        SurfaceHeight,
		Font:          s.Font,
		Color:         s.Color,
		Align:         s.Align,
		LetterSpacing: parseSpacing(s.Spacing),
	}

	if s.Background.IsSet() {
		p.Background = &BackgroundLayer{Source: s.Background, Opacity: BackgroundOpacity}
	}

	nameSize, ampSize, detailSize := float64(fallbackNameSize), float64(fallbackAmpersandSize), float64(fallbackDetailSize)
	if size, ok := parsePixels(s.Size); ok {
		nameSize = size
		ampSize = size * ampersandScale
		detailSize = size * detailScale
	} else if strings.TrimSpace(s.Size) == "" {
		// Blank scales the smaller segments to zero; names keep the fallback.
		ampSize, detailSize = 0, 0
	}

	first, second := invite.SplitNames(s.Names)
	p.Segments = []Segment{
		{Role: RoleFirstName, Text: first, Size: nameSize, LineHeight: nameSize},
		{Role: RoleAmpersand, Text: "&", Size: ampSize, LineHeight: ampersandLineHeight},
		{Role: RoleSecondName, Text: second, Size: nameSize, LineHeight: nameSize},
		{Role: RoleDate, Text: s.Date, Size: detailSize, LineHeight: detailLineHeight, MarginTop: dateMargin},
		{Role: RoleVenue, Text: s.Venue, Size: detailSize, LineHeight: detailLineHeight, MarginTop: venueMargin},
	}
	return p
}

// Segment returns the segment with the given role.
func (p Preview) Segment(role Role) (Segment, bool) {
	for _, seg := range p.Segments {
		if seg.Role == role {
			return seg, true
		}
	}
	return Segment{}, false
}

// parsePixels reads a font size entry. Negative sizes are invalid.
func parsePixels(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// parseSpacing reads a letter-spacing entry; anything unparsable is normal
// spacing.
func parseSpacing(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

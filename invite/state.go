// Package invite holds the editable invitation form state.
//
// Every field is an independent slot. Setters accept any value and never
// fail: range hints shown by the form (size 16-40, spacing 1-3) are advisory
// and are not enforced here.
package invite

import (
	"errors"
	"fmt"
	"strings"
)

// Font is a CSS-style generic font family name.
type Font string

const (
	FontSerif     Font = "serif"
	FontSansSerif Font = "sans-serif"
	FontCursive   Font = "cursive"
	FontMonospace Font = "monospace"
	FontFantasy   Font = "fantasy"
)

// Fonts lists the families offered by the form, in display order.
var Fonts = []Font{FontSerif, FontSansSerif, FontCursive, FontMonospace, FontFantasy}

// Label returns the human-readable option text.
func (f Font) Label() string {
	switch f {
	case FontSerif:
		return "Serif"
	case FontSansSerif:
		return "Sans-serif"
	case FontCursive:
		return "Cursive"
	case FontMonospace:
		return "Monospace"
	case FontFantasy:
		return "Fantasy"
	}
	return string(f)
}

// Known reports whether f is one of the five offered families.
func (f Font) Known() bool {
	for _, k := range Fonts {
		if f == k {
			return true
		}
	}
	return false
}

// Alignment is the horizontal text alignment of the preview text block.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Alignments lists the alignment options in display order.
var Alignments = []Alignment{AlignLeft, AlignCenter, AlignRight}

// Label returns the human-readable option text.
func (a Alignment) Label() string {
	switch a {
	case AlignLeft:
		return "Left"
	case AlignCenter:
		return "Center"
	case AlignRight:
		return "Right"
	}
	return string(a)
}

// Separator splits the couple's names for display.
const Separator = " & "

// Default slot values.
const (
	DefaultNames      = "John & Jane"
	DefaultDate       = "25th December 2025"
	DefaultVenue      = "Sunset Beach Resort, Hawaii"
	DefaultFont       = FontSerif
	DefaultColor      = "#1d3557"
	DefaultBackground = "wed1.jpg"
	DefaultSize       = "24"
	DefaultSpacing    = "1"
	DefaultAlignment  = AlignCenter
)

// ErrUnknownField is returned by Set for a field name that has no slot.
var ErrUnknownField = errors.New("invite: unknown field")

// State is the complete form state. Size and Spacing hold the raw text the
// user typed, partial entries included; the renderer decides how to read them.
type State struct {
	Names      string
	Date       string
	Venue      string
	Font       Font
	Color      string
	Background Background
	Size       string
	Spacing    string
	Align      Alignment
}

// Default returns the state a fresh form starts with.
func Default() State {
	return State{
		Names:      DefaultNames,
		Date:       DefaultDate,
		Venue:      DefaultVenue,
		Font:       DefaultFont,
		Color:      DefaultColor,
		Background: AssetBackground(DefaultBackground),
		Size:       DefaultSize,
		Spacing:    DefaultSpacing,
		Align:      DefaultAlignment,
	}
}

func (s *State) SetNames(v string)        { s.Names = v }
func (s *State) SetDate(v string)         { s.Date = v }
func (s *State) SetVenue(v string)        { s.Venue = v }
func (s *State) SetFont(v Font)           { s.Font = v }
func (s *State) SetColor(v string)        { s.Color = v }
func (s *State) SetSize(v string)         { s.Size = v }
func (s *State) SetSpacing(v string)      { s.Spacing = v }
func (s *State) SetAlignment(v Alignment) { s.Align = v }

// SetBackground replaces the background slot.
func (s *State) SetBackground(b Background) { s.Background = b }

// ResetBackground clears the background. No other slot changes.
func (s *State) ResetBackground() { s.Background = Background{} }

// Set assigns a slot by name. It is used by init.lua and the render command.
func (s *State) Set(field, value string) error {
	switch strings.ToLower(field) {
	case "names":
		s.SetNames(value)
	case "date":
		s.SetDate(value)
	case "venue":
		s.SetVenue(value)
	case "font":
		s.SetFont(Font(value))
	case "color":
		s.SetColor(value)
	case "background":
		s.SetBackground(ParseBackground(value))
	case "size":
		s.SetSize(value)
	case "spacing":
		s.SetSpacing(value)
	case "align", "alignment":
		s.SetAlignment(Alignment(value))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Get reads a slot by name.
func (s State) Get(field string) (string, error) {
	switch strings.ToLower(field) {
	case "names":
		return s.Names, nil
	case "date":
		return s.Date, nil
	case "venue":
		return s.Venue, nil
	case "font":
		return string(s.Font), nil
	case "color":
		return s.Color, nil
	case "background":
		return s.Background.String(), nil
	case "size":
		return s.Size, nil
	case "spacing":
		return s.Spacing, nil
	case "align", "alignment":
		return string(s.Align), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
}

// SplitNames splits names at the first separator. Without a separator the
// whole string is the first segment and the second segment is empty.
func SplitNames(names string) (first, second string) {
	first, second, _ = strings.Cut(names, Separator)
	return first, second
}

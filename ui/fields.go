package ui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/drake/einvite/invite"
)

// control is one row of the form. Rows are drawn in this order.
type control int

const (
	ctrlNames control = iota
	ctrlDate
	ctrlVenue
	ctrlFont
	ctrlColor
	ctrlUpload
	ctrlBundled
	ctrlReset
	ctrlSize
	ctrlSpacing
	ctrlAlign
	ctrlDownload
	numControls
)

var controlLabels = [numControls]string{
	ctrlNames:    "Names",
	ctrlDate:     "Date",
	ctrlVenue:    "Venue",
	ctrlFont:     "Font",
	ctrlColor:    "Color",
	ctrlUpload:   "Background",
	ctrlBundled:  "",
	ctrlReset:    "",
	ctrlSize:     "Size",
	ctrlSpacing:  "Spacing",
	ctrlAlign:    "Alignment",
	ctrlDownload: "",
}

func (c control) label() string { return controlLabels[c] }

// isText reports whether c is backed by a text input.
func (c control) isText() bool {
	switch c {
	case ctrlNames, ctrlDate, ctrlVenue, ctrlSize, ctrlSpacing:
		return true
	}
	return false
}

// isButton reports whether c acts on enter or click.
func (c control) isButton() bool {
	switch c {
	case ctrlColor, ctrlUpload, ctrlBundled, ctrlReset, ctrlDownload:
		return true
	}
	return false
}

// isSelect reports whether c cycles through fixed options.
func (c control) isSelect() bool {
	return c == ctrlFont || c == ctrlAlign
}

func (c control) next() control { return (c + 1) % numControls }
func (c control) prev() control { return (c + numControls - 1) % numControls }

// textFields owns the text inputs of the form.
type textFields struct {
	inputs map[control]*textinput.Model
}

func newTextFields(s invite.State) textFields {
	f := textFields{inputs: make(map[control]*textinput.Model)}
	add := func(c control, value, placeholder string, limit int) {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		ti.SetValue(value)
		f.inputs[c] = &ti
	}
	add(ctrlNames, s.Names, "Partner 1 & Partner 2", 0)
	add(ctrlDate, s.Date, "Wedding date", 0)
	add(ctrlVenue, s.Venue, "Venue", 0)
	add(ctrlSize, s.Size, "16-40", 8)
	add(ctrlSpacing, s.Spacing, "1-3", 8)
	return f
}

func (f textFields) get(c control) *textinput.Model {
	return f.inputs[c]
}

func (f textFields) setWidth(w int) {
	for _, ti := range f.inputs {
		ti.Width = w
	}
}

// focus focuses the input for c and blurs the rest.
func (f textFields) focus(c control) {
	for k, ti := range f.inputs {
		if k == c {
			ti.Focus()
		} else {
			ti.Blur()
		}
	}
}

// apply copies the value of the input for c into the matching slot.
func apply(s *invite.State, c control, value string) {
	switch c {
	case ctrlNames:
		s.SetNames(value)
	case ctrlDate:
		s.SetDate(value)
	case ctrlVenue:
		s.SetVenue(value)
	case ctrlSize:
		s.SetSize(value)
	case ctrlSpacing:
		s.SetSpacing(value)
	}
}

// cycle returns the option after (or before) cur, wrapping around. An
// unknown cur starts from the first option.
func cycle[T comparable](options []T, cur T, delta int) T {
	idx := -1
	for i, o := range options {
		if o == cur {
			idx = i
			break
		}
	}
	if idx < 0 {
		return options[0]
	}
	n := len(options)
	return options[((idx+delta)%n+n)%n]
}

package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/drake/einvite/invite"
	"github.com/drake/einvite/render"
	"github.com/drake/einvite/ui/style"
)

func TestLetterGap(t *testing.T) {
	tests := []struct {
		px   float64
		want int
	}{
		{0, 0},
		{-2, 0},
		{1, 0},
		{2, 1},
		{3, 1},
		{4, 2},
		{40, maxGap},
	}
	for _, tt := range tests {
		if got := letterGap(tt.px); got != tt.want {
			t.Errorf("letterGap(%v) = %d, want %d", tt.px, got, tt.want)
		}
	}
}

func TestSpaceOut(t *testing.T) {
	if got := spaceOut("Jane", 1, 20); got != "J a n e" {
		t.Errorf("spaceOut = %q", got)
	}
	if got := spaceOut("Jane", 3, 8); got != "Jane" {
		t.Errorf("overflowing spaceOut = %q, want unspaced", got)
	}
}

func TestRenderTextSkipsEmptySegments(t *testing.T) {
	s := invite.Default()
	s.SetNames("Solo")
	s.SetVenue("")
	out := ansi.Strip(renderText(render.Layout(s), 60, 20, style.DefaultStyles()))

	for _, want := range []string{"Solo", "&", "25th December 2025"} {
		if !strings.Contains(out, want) {
			t.Errorf("preview missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Sunset") {
		t.Errorf("cleared venue still shown:\n%s", out)
	}
}

func TestRenderTextBlankSizeHidesSmallSegments(t *testing.T) {
	s := invite.Default()
	s.SetSize("")
	out := ansi.Strip(renderText(render.Layout(s), 60, 20, style.DefaultStyles()))

	if !strings.Contains(out, "John") || !strings.Contains(out, "Jane") {
		t.Errorf("names missing:\n%s", out)
	}
	for _, hidden := range []string{"&", "25th December 2025", "Sunset"} {
		if strings.Contains(out, hidden) {
			t.Errorf("zero-size %q still shown:\n%s", hidden, out)
		}
	}
}

func TestRenderTextAlignment(t *testing.T) {
	s := invite.Default()
	s.SetAlignment(invite.AlignLeft)
	left := ansi.Strip(renderText(render.Layout(s), 60, 20, style.DefaultStyles()))
	s.SetAlignment(invite.AlignRight)
	right := ansi.Strip(renderText(render.Layout(s), 60, 20, style.DefaultStyles()))

	col := func(out string) int {
		for _, line := range strings.Split(out, "\n") {
			if i := strings.Index(line, "John"); i >= 0 {
				return i
			}
		}
		return -1
	}
	if l, r := col(left), col(right); l < 0 || l >= r {
		t.Errorf("left column %d should be before right column %d", l, r)
	}
}

func TestTextColorFallsBackToBlack(t *testing.T) {
	if got := textColor("#E63946"); got != "#e63946" {
		t.Errorf("textColor = %q", got)
	}
	if got := textColor("tomato"); got != "#000000" {
		t.Errorf("invalid textColor = %q, want black", got)
	}
}

func TestThumbnailSize(t *testing.T) {
	cols, rows := thumbnailSize(60, 100)
	if cols != 60 || rows != 60*500/556/2 {
		t.Errorf("wide fit = %dx%d", cols, rows)
	}
	cols, rows = thumbnailSize(200, 10)
	if rows != 10 || cols > 200 {
		t.Errorf("tall fit = %dx%d", cols, rows)
	}
}

func TestPreviewCaption(t *testing.T) {
	s := invite.Default()
	if got := previewCaption(render.Layout(s)); got != "wed1.jpg · Serif" {
		t.Errorf("caption = %q", got)
	}
	s.ResetBackground()
	if got := previewCaption(render.Layout(s)); !strings.HasPrefix(got, "no background") {
		t.Errorf("caption = %q", got)
	}
}

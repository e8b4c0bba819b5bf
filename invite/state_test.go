package invite

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	got := Default()
	want := State{
		Names:      "John & Jane",
		Date:       "25th December 2025",
		Venue:      "Sunset Beach Resort, Hawaii",
		Font:       FontSerif,
		Color:      "#1d3557",
		Background: Background{Kind: BackgroundAsset, Ref: "wed1.jpg"},
		Size:       "24",
		Spacing:    "1",
		Align:      AlignCenter,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("default state mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitNames(t *testing.T) {
	tests := []struct {
		names         string
		first, second string
	}{
		{"A & B", "A", "B"},
		{"John & Jane", "John", "Jane"},
		{"Alex", "Alex", ""},
		{"Tom&Jerry", "Tom&Jerry", ""},
		{"A & B & C", "A", "B & C"},
		{"", "", ""},
		{" & ", "", ""},
	}

	for _, tt := range tests {
		first, second := SplitNames(tt.names)
		if first != tt.first || second != tt.second {
			t.Errorf("SplitNames(%q) = (%q, %q), want (%q, %q)",
				tt.names, first, second, tt.first, tt.second)
		}
	}
}

func TestResetBackgroundLeavesOtherSlots(t *testing.T) {
	s := Default()
	s.SetNames("Ann & Bob")
	s.SetDate("tomorrow")
	s.SetVenue("the park")
	s.SetFont(FontCursive)
	s.SetColor("#ff0000")
	s.SetSize("31")
	s.SetSpacing("2.5")
	s.SetAlignment(AlignRight)
	s.SetBackground(DataURIBackground("data:image/png;base64,AAAA"))

	before := s
	s.ResetBackground()

	if s.Background.IsSet() {
		t.Fatalf("background still set after reset: %+v", s.Background)
	}
	before.Background = Background{}
	if diff := cmp.Diff(before, s); diff != "" {
		t.Fatalf("reset touched other slots (-want +got):\n%s", diff)
	}
}

func TestSettersAcceptAnything(t *testing.T) {
	s := Default()
	s.SetSize("")
	s.SetSize("4")
	s.SetSize("-")
	if s.Size != "-" {
		t.Fatalf("size = %q, want raw entry %q", s.Size, "-")
	}
	s.SetSize("400")
	if s.Size != "400" {
		t.Fatalf("size = %q, out-of-range entries must not be clamped", s.Size)
	}
	s.SetSpacing("1.")
	if s.Spacing != "1." {
		t.Fatalf("spacing = %q, want partial entry kept", s.Spacing)
	}
	s.SetFont("papyrus")
	if s.Font.Known() {
		t.Fatal("papyrus should not be a known family")
	}
}

func TestSetAndGetByName(t *testing.T) {
	s := Default()
	fields := map[string]string{
		"names":      "Mia & Leo",
		"date":       "1 May",
		"venue":      "Vienna",
		"font":       "monospace",
		"color":      "#abcdef",
		"background": "wed2.jpg",
		"size":       "30",
		"spacing":    "2",
		"align":      "left",
	}
	for field, value := range fields {
		if err := s.Set(field, value); err != nil {
			t.Fatalf("Set(%q): %v", field, err)
		}
		got, err := s.Get(field)
		if err != nil {
			t.Fatalf("Get(%q): %v", field, err)
		}
		if got != value {
			t.Errorf("Get(%q) = %q, want %q", field, got, value)
		}
	}

	if err := s.Set("nope", "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("Set(nope) error = %v, want ErrUnknownField", err)
	}
	if _, err := s.Get("nope"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("Get(nope) error = %v, want ErrUnknownField", err)
	}

	if err := s.Set("background", "none"); err != nil {
		t.Fatal(err)
	}
	if s.Background.IsSet() {
		t.Fatal("background \"none\" should clear the slot")
	}
}

func TestFontOptions(t *testing.T) {
	want := []Font{"serif", "sans-serif", "cursive", "monospace", "fantasy"}
	if diff := cmp.Diff(want, Fonts); diff != "" {
		t.Fatalf("font options (-want +got):\n%s", diff)
	}
	for _, f := range Fonts {
		if !f.Known() {
			t.Errorf("%q should be known", f)
		}
	}
}

package invite

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestParseBackground(t *testing.T) {
	tests := []struct {
		in   string
		kind BackgroundKind
	}{
		{"", BackgroundNone},
		{"none", BackgroundNone},
		{"wed1.jpg", BackgroundAsset},
		{"data:image/png;base64,AAAA", BackgroundDataURI},
	}
	for _, tt := range tests {
		if got := ParseBackground(tt.in).Kind; got != tt.kind {
			t.Errorf("ParseBackground(%q).Kind = %v, want %v", tt.in, got, tt.kind)
		}
	}
}

func TestEncodeDecodeDataURI(t *testing.T) {
	uri := EncodeDataURI(pngHeader)
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("unexpected prefix: %.40s", uri)
	}

	data, mediaType, err := DecodeDataURI(uri)
	if err != nil {
		t.Fatalf("DecodeDataURI: %v", err)
	}
	if mediaType != "image/png" {
		t.Errorf("media type = %q, want image/png", mediaType)
	}
	if !bytes.Equal(data, pngHeader) {
		t.Error("payload did not survive the round trip")
	}
}

func TestDecodeDataURIErrors(t *testing.T) {
	for _, uri := range []string{"wed1.jpg", "data:image/png;base64", "data:image/png;base64,!!!"} {
		if _, _, err := DecodeDataURI(uri); !errors.Is(err, ErrBadDataURI) {
			t.Errorf("DecodeDataURI(%q) error = %v, want ErrBadDataURI", uri, err)
		}
	}

	data, mediaType, err := DecodeDataURI("data:,hello%20there")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello there" || mediaType != "text/plain" {
		t.Errorf("got (%q, %q)", data, mediaType)
	}
}

func TestReadBackground(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	if err := os.WriteFile(path, pngHeader, 0o644); err != nil {
		t.Fatal(err)
	}

	bg, err := ReadBackground(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadBackground: %v", err)
	}
	if bg.Kind != BackgroundDataURI {
		t.Fatalf("kind = %v, want data-uri", bg.Kind)
	}
	if !strings.HasPrefix(bg.Ref, DataScheme) {
		t.Fatalf("ref %.20q lacks data scheme", bg.Ref)
	}
	if got := bg.Label(); got != "uploaded image/png" {
		t.Errorf("label = %q", got)
	}
}

func TestReadBackgroundWithoutFile(t *testing.T) {
	s := Default()
	before := s.Background

	bg, err := ReadBackground(context.Background(), "")
	if !errors.Is(err, ErrNoFile) {
		t.Fatalf("error = %v, want ErrNoFile", err)
	}
	if err == nil {
		s.SetBackground(bg)
	}
	if s.Background != before {
		t.Fatalf("background changed to %+v", s.Background)
	}
}

func TestReadBackgroundMissingFile(t *testing.T) {
	_, err := ReadBackground(context.Background(), filepath.Join(t.TempDir(), "missing.jpg"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error = %v, want not-exist", err)
	}
}

package render

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
	"golang.org/x/image/font/opentype"

	"github.com/drake/einvite/invite"
)

// fallbackFamily is used for families outside the offered five, the same
// way a browser falls back to its default serif face.
const fallbackFamily = invite.FontSerif

// weights holds the regular and strong face of a family.
type weights struct {
	regular *opentype.Font
	strong  *opentype.Font
}

// FontSet maps font families to parsed fonts. The Go fonts cover every
// family until a real font file is registered for it.
type FontSet struct {
	mu       sync.RWMutex
	families map[invite.Font]weights
}

// NewFontSet parses the built-in Go fonts.
func NewFontSet() (*FontSet, error) {
	builtin := map[invite.Font][2][]byte{
		invite.FontSerif:     {gomedium.TTF, gobold.TTF},
		invite.FontSansSerif: {goregular.TTF, gobold.TTF},
		invite.FontCursive:   {goitalic.TTF, gobolditalic.TTF},
		invite.FontMonospace: {gomono.TTF, gomonobold.TTF},
		invite.FontFantasy:   {gosmallcaps.TTF, gosmallcapsitalic.TTF},
	}

	fs := &FontSet{families: make(map[invite.Font]weights, len(builtin))}
	for family, ttf := range builtin {
		regular, err := opentype.Parse(ttf[0])
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", family, err)
		}
		strong, err := opentype.Parse(ttf[1])
		if err != nil {
			return nil, fmt.Errorf("parse %s (strong): %w", family, err)
		}
		fs.families[family] = weights{regular: regular, strong: strong}
	}
	return fs, nil
}

// Register replaces both weights of family with the font in path.
func (fs *FontSet) Register(family invite.Font, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("font %s: %w", family, err)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("font %s: parse %s: %w", family, path, err)
	}

	fs.mu.Lock()
	fs.families[family] = weights{regular: parsed, strong: parsed}
	fs.mu.Unlock()
	return nil
}

// Face returns a new face for family at size px. Faces are not safe for
// concurrent use, so every caller gets its own.
func (fs *FontSet) Face(family invite.Font, strong bool, size float64) (font.Face, error) {
	fs.mu.RLock()
	w, ok := fs.families[family]
	if !ok {
		w = fs.families[fallbackFamily]
	}
	fs.mu.RUnlock()

	f := w.regular
	if strong {
		f = w.strong
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("face %s at %.1fpx: %w", family, size, err)
	}
	return face, nil
}

package render

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/disintegration/imaging"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp"

	"github.com/drake/einvite/invite"
)

// AssetSource resolves bundled background names.
type AssetSource interface {
	Open(name string) ([]byte, error)
}

type backgroundKey struct {
	source        [sha256.Size]byte
	width, height int
}

// Rasterizer draws previews. It is safe for concurrent use.
type Rasterizer struct {
	fonts  *FontSet
	assets AssetSource
	log    *zap.Logger

	// Decoded, cover-fitted backgrounds. Uploaded data URIs are large, so
	// entries are keyed by a digest of the source.
	backgrounds *lru.Cache[backgroundKey, *image.NRGBA]
}

// NewRasterizer creates a Rasterizer. A nil logger discards output.
func NewRasterizer(fonts *FontSet, assets AssetSource, log *zap.Logger) *Rasterizer {
	if log == nil {
		log = zap.NewNop()
	}
	cache, _ := lru.New[backgroundKey, *image.NRGBA](16)
	return &Rasterizer{
		fonts:       fonts,
		assets:      assets,
		log:         log,
		backgrounds: cache,
	}
}

// Draw rasterizes p. Pixels outside the rounded card are transparent.
func (r *Rasterizer) Draw(ctx context.Context, p Preview) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bounds := image.Rect(0, 0, p.Width, p.Height)
	dst := image.NewRGBA(bounds)
	draw.DrawMask(dst, bounds, image.White, image.Point{}, roundedMask(p.Width, p.Height, CornerRadius, 1), image.Point{}, draw.Over)

	if p.Background != nil {
		bg, err := r.background(p.Background.Source, p.Width, p.Height)
		if err != nil {
			return nil, err
		}
		mask := roundedMask(p.Width, p.Height, CornerRadius, p.Background.Opacity)
		draw.DrawMask(dst, bounds, bg, image.Point{}, mask, image.Point{}, draw.Over)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.drawText(ctx, dst, p); err != nil {
		return nil, err
	}
	return dst, nil
}

// CachedBackgrounds returns how many fitted backgrounds are cached.
func (r *Rasterizer) CachedBackgrounds() int {
	return r.backgrounds.Len()
}

// Surface binds a preview to the rasterizer so it can be captured later.
func (r *Rasterizer) Surface(p Preview) *Surface {
	return &Surface{r: r, p: p}
}

// Surface is a mounted preview, ready for capture.
type Surface struct {
	r *Rasterizer
	p Preview
}

// Capture rasterizes the surface.
func (s *Surface) Capture(ctx context.Context) (image.Image, error) {
	return s.r.Draw(ctx, s.p)
}

func (r *Rasterizer) background(src invite.Background, width, height int) (*image.NRGBA, error) {
	key := backgroundKey{
		source: sha256.Sum256([]byte(src.Kind.String() + ":" + src.Ref)),
		width:  width,
		height: height,
	}
	if img, ok := r.backgrounds.Get(key); ok {
		return img, nil
	}

	var data []byte
	var err error
	switch src.Kind {
	case invite.BackgroundDataURI:
		data, _, err = invite.DecodeDataURI(src.Ref)
	default:
		data, err = r.assets.Open(src.Ref)
	}
	if err != nil {
		return nil, fmt.Errorf("loading background: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding background %s: %w", src.Label(), err)
	}

	fitted := imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)
	r.backgrounds.Add(key, fitted)
	r.log.Debug("background decoded",
		zap.String("source", src.Label()),
		zap.String("format", format),
		zap.Int("bytes", len(data)),
	)
	return fitted, nil
}

// maxRasterSize bounds the face size glyphs are rasterized at. A glyph this
// large already covers the surface several times over.
const maxRasterSize = 4 * SurfaceHeight

type placedSegment struct {
	seg   Segment
	face  font.Face
	lines []string
}

func (r *Rasterizer) drawText(ctx context.Context, dst *image.RGBA, p Preview) error {
	spacing := fixed.Int26_6(math.Round(min(max(p.LetterSpacing, -maxRasterSize), maxRasterSize) * 64))
	maxWidth := fixed.I(p.Width - 2*SurfacePadding - 2*BlockPadding)

	var placed []placedSegment
	defer func() {
		for _, ps := range placed {
			if ps.face != nil {
				ps.face.Close()
			}
		}
	}()

	var blockWidth fixed.Int26_6
	blockHeight := 0.0
	for _, seg := range p.Segments {
		if seg.Text == "" {
			continue
		}
		ps := placedSegment{seg: seg, lines: []string{seg.Text}}
		if seg.Size > 0 {
			face, err := r.fonts.Face(p.Font, seg.Role.Strong(), min(seg.Size, maxRasterSize))
			if err != nil {
				return err
			}
			ps.face = face
			ps.lines = wrap(face, seg.Text, spacing, maxWidth)
			for _, line := range ps.lines {
				blockWidth = max(blockWidth, measure(face, line, spacing))
			}
		}
		blockHeight += seg.MarginTop + seg.LineHeight*float64(len(ps.lines))
		placed = append(placed, ps)
	}
	blockWidth = min(blockWidth, maxWidth)

	src := image.NewUniform(parseColor(p.Color))
	x0 := (fixed.I(p.Width) - blockWidth) / 2
	y := (float64(p.Height) - blockHeight) / 2

	for _, ps := range placed {
		if err := ctx.Err(); err != nil {
			return err
		}
		y += ps.seg.MarginTop
		for _, line := range ps.lines {
			if ps.face != nil {
				m := ps.face.Metrics()
				ascent, descent := float64(m.Ascent)/64, float64(m.Descent)/64
				baseline := y + (ps.seg.LineHeight-ascent-descent)/2 + ascent
				if reach := ascent + descent; baseline-reach >= float64(p.Height) || baseline+reach <= 0 {
					y += ps.seg.LineHeight
					continue
				}

				x := x0
				switch width := measure(ps.face, line, spacing); p.Align {
				case invite.AlignLeft:
				case invite.AlignRight:
					x += blockWidth - width
				default:
					x += (blockWidth - width) / 2
				}
				drawLine(dst, src, ps.face, line, spacing, fixed.Point26_6{X: x, Y: fixed.Int26_6(math.Round(baseline * 64))})
			}
			y += ps.seg.LineHeight
		}
	}
	return nil
}

// drawLine draws text glyph by glyph so letter spacing lands after each
// character, kerning included. Glyphs that miss dst are only advanced over.
func drawLine(dst draw.Image, src image.Image, face font.Face, text string, spacing fixed.Int26_6, dot fixed.Point26_6) {
	b := dst.Bounds()
	clip := fixed.R(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)

	d := &font.Drawer{Dst: dst, Src: src, Face: face, Dot: dot}
	prev := rune(-1)
	for _, c := range text {
		if prev >= 0 {
			d.Dot.X += face.Kern(prev, c)
		}
		bounds, advance, ok := face.GlyphBounds(c)
		glyph := fixed.Rectangle26_6{Min: bounds.Min.Add(d.Dot), Max: bounds.Max.Add(d.Dot)}
		if ok && !glyph.Intersect(clip).Empty() {
			d.DrawString(string(c))
		} else {
			d.Dot.X += advance
		}
		d.Dot.X += spacing
		prev = c
	}
}

// measure returns the advance of text including letter spacing.
func measure(face font.Face, text string, spacing fixed.Int26_6) fixed.Int26_6 {
	return font.MeasureString(face, text) + spacing*fixed.Int26_6(utf8.RuneCountInString(text))
}

// wrap breaks text at spaces so lines fit in width. A single word wider than
// width keeps its own line and overflows.
func wrap(face font.Face, text string, spacing, width fixed.Int26_6) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if measure(face, candidate, spacing) <= width {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}

// parseColor reads a hex color. Anything else renders black.
func parseColor(hex string) color.Color {
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return color.Black
	}
	return c
}

// roundedMask returns a mask covering a w×h rounded rectangle, anti-aliased at
// the corners and scaled by opacity.
func roundedMask(w, h, radius int, opacity float64) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	rad := float64(radius)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cx, cy := float64(x)+0.5, float64(y)+0.5
			cov := 1.0

			dx := max(rad-cx, cx-(float64(w)-rad), 0)
			dy := max(rad-cy, cy-(float64(h)-rad), 0)
			if dx > 0 && dy > 0 {
				cov = min(max(rad-math.Hypot(dx, dy)+0.5, 0), 1)
			}
			mask.Pix[y*mask.Stride+x] = uint8(math.Round(cov * opacity * 255))
		}
	}
	return mask
}

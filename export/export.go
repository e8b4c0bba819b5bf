// Package export captures the preview surface and saves it as a PNG.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileName is the name every export is saved under.
const FileName = "wedding-invitation.png"

// ErrNoSurface means there was nothing mounted to capture. Callers treat it
// as a silent no-op.
var ErrNoSurface = errors.New("export: preview surface not mounted")

// Surface is anything that can be rasterized on demand.
type Surface interface {
	Capture(ctx context.Context) (image.Image, error)
}

// Exporter writes captures into a directory.
type Exporter struct {
	dir string
	log *zap.Logger
}

// New creates an Exporter that saves into dir. A nil logger discards output.
func New(dir string, log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{dir: dir, log: log}
}

// Dir returns the output directory.
func (e *Exporter) Dir() string {
	return e.dir
}

// Path returns where the next export will be written.
func (e *Exporter) Path() string {
	return filepath.Join(e.dir, FileName)
}

// Export captures s and writes it to Path. A nil surface returns
// ErrNoSurface without touching the filesystem.
func (e *Exporter) Export(ctx context.Context, s Surface) (string, error) {
	if s == nil {
		return "", ErrNoSurface
	}

	img, err := s.Capture(ctx)
	if err != nil {
		e.log.Warn("capture failed", zap.Error(err))
		return "", fmt.Errorf("capturing preview: %w", err)
	}

	path := e.Path()
	if err := writeFile(path, img); err != nil {
		e.log.Warn("export failed", zap.String("path", path), zap.Error(err))
		return "", err
	}

	b := img.Bounds()
	e.log.Info("exported invitation",
		zap.String("path", path),
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()),
	)
	return path, nil
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// writeFile replaces path atomically so a failed export never leaves a
// truncated image behind.
func writeFile(path string, img image.Image) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".wedding-invitation-*.png")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, img); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("saving %s: %w", filepath.Base(path), err)
	}
	return nil
}

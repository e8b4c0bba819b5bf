package export

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSurface struct {
	img   image.Image
	err   error
	calls int
}

func (f *fakeSurface) Capture(ctx context.Context) (image.Image, error) {
	f.calls++
	return f.img, f.err
}

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(1, 1, color.RGBA{R: 0x1d, G: 0x35, B: 0x57, A: 0xff})
	return img
}

func outputFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestExportWritesOnePNG(t *testing.T) {
	dir := t.TempDir()
	core, logs := observer.New(zapcore.InfoLevel)
	e := New(dir, zap.New(core))
	surface := &fakeSurface{img: solid(4, 3)}

	path, err := e.Export(context.Background(), surface)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if path != filepath.Join(dir, "wedding-invitation.png") {
		t.Fatalf("path = %q", path)
	}
	if surface.calls != 1 {
		t.Fatalf("capture called %d times, want 1", surface.calls)
	}
	if files := outputFiles(t, dir); len(files) != 1 || files[0] != FileName {
		t.Fatalf("output dir holds %v, want exactly %s", files, FileName)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding export: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 4, 3) {
		t.Fatalf("bounds = %v", got)
	}
	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 != 0x1d || g>>8 != 0x35 || b>>8 != 0x57 {
		t.Fatalf("pixel = %x %x %x", r>>8, g>>8, b>>8)
	}

	if n := logs.FilterMessage("exported invitation").Len(); n != 1 {
		t.Fatalf("logged %d export entries, want 1", n)
	}
}

func TestExportWithoutSurface(t *testing.T) {
	dir := t.TempDir()
	e := New(dir, nil)

	path, err := e.Export(context.Background(), nil)
	if !errors.Is(err, ErrNoSurface) {
		t.Fatalf("error = %v, want ErrNoSurface", err)
	}
	if path != "" {
		t.Fatalf("path = %q, want empty", path)
	}
	if files := outputFiles(t, dir); len(files) != 0 {
		t.Fatalf("output dir holds %v, want nothing", files)
	}
}

func TestExportCaptureFailure(t *testing.T) {
	dir := t.TempDir()
	e := New(dir, nil)
	boom := errors.New("tainted canvas")

	_, err := e.Export(context.Background(), &fakeSurface{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want wrapped capture error", err)
	}
	if files := outputFiles(t, dir); len(files) != 0 {
		t.Fatalf("output dir holds %v after failure", files)
	}
}

func TestExportOverwrites(t *testing.T) {
	dir := t.TempDir()
	e := New(dir, nil)

	if _, err := e.Export(context.Background(), &fakeSurface{img: solid(2, 2)}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Export(context.Background(), &fakeSurface{img: solid(5, 5)}); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(e.Path())
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 5 {
		t.Fatalf("width = %d, want the latest export", cfg.Width)
	}
}

func TestExportCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	e := New(dir, nil)
	if _, err := e.Export(context.Background(), &fakeSurface{img: solid(1, 1)}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, FileName)); err != nil {
		t.Fatal(err)
	}
}

package render

import (
	"image"
	"image/color"
	"testing"
)

func TestThumbnail(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if y < 20 {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
			}
		}
	}

	matte := color.RGBA{R: 0, G: 0, B: 255, A: 255}
	grid := Thumbnail(img, 4, 2, matte)
	if len(grid) != 2 || len(grid[0]) != 4 {
		t.Fatalf("grid is %dx%d, want 2x4", len(grid), len(grid[0]))
	}

	red := color.RGBA{R: 255, A: 255}
	if got := grid[0][0]; got.Top != red || got.Bottom != red {
		t.Errorf("top row = %+v, want red", got)
	}
	if got := grid[1][3]; got.Top != matte || got.Bottom != matte {
		t.Errorf("transparent area = %+v, want matte", got)
	}
}

func TestThumbnailEmpty(t *testing.T) {
	if grid := Thumbnail(image.NewRGBA(image.Rect(0, 0, 4, 4)), 0, 3, color.White); grid != nil {
		t.Fatalf("grid = %v, want nil", grid)
	}
}

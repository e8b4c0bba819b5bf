package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Cell is one terminal cell of a thumbnail: two stacked pixels, drawn as an
// upper half block with Top as foreground and Bottom as background.
type Cell struct {
	Top, Bottom color.RGBA
}

// Thumbnail scales img to cols×rows cells, flattening transparency onto
// matte.
func Thumbnail(img image.Image, cols, rows int, matte color.Color) [][]Cell {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	small := imaging.Resize(img, cols, rows*2, imaging.Box)
	mr, mg, mb, _ := matte.RGBA()
	flatten := func(x, y int) color.RGBA {
		c := small.NRGBAAt(x, y)
		a := uint32(c.A)
		blend := func(v uint8, m uint32) uint8 {
			return uint8((uint32(v)*a + (m>>8)*(255-a)) / 255)
		}
		return color.RGBA{R: blend(c.R, mr), G: blend(c.G, mg), B: blend(c.B, mb), A: 0xff}
	}

	grid := make([][]Cell, rows)
	for row := range grid {
		grid[row] = make([]Cell, cols)
		for col := range grid[row] {
			grid[row][col] = Cell{Top: flatten(col, row*2), Bottom: flatten(col, row*2+1)}
		}
	}
	return grid
}

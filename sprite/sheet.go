// Package sprite cuts a rendered image into fixed-size tiles and packs them
// into an atlas.
package sprite

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Standard tile sizes offered by the editor.
var TileSizes = []int{8, 16, 32}

var ErrNoTiles = errors.New("image is smaller than one tile")

// Grid returns how many whole tiles fit across and down a w x h image.
func Grid(w, h, tileSize int) (cols, rows int) {
	if tileSize < 1 {
		return 0, 0
	}
	return w / tileSize, h / tileSize
}

// Tiles lists the source rectangle of every whole tile in row-major order.
// Pixels past the last whole tile are not covered.
func Tiles(bounds image.Rectangle, tileSize int) []image.Rectangle {
	cols, rows := Grid(bounds.Dx(), bounds.Dy(), tileSize)
	res := make([]image.Rectangle, 0, cols*rows)
	for row := range rows {
		for col := range cols {
			p := bounds.Min.Add(image.Pt(col*tileSize, row*tileSize))
			res = append(res, image.Rectangle{Min: p, Max: p.Add(image.Pt(tileSize, tileSize))})
		}
	}
	return res
}

// Sheet packs the whole tiles of img into an atlas of
// floor(W/tileSize) x floor(H/tileSize) tiles. Remainder pixels are dropped.
func Sheet(img image.Image, tileSize int) (*image.NRGBA, error) {
	if tileSize < 1 {
		return nil, fmt.Errorf("invalid tile size: %d", tileSize)
	}
	b := img.Bounds()
	cols, rows := Grid(b.Dx(), b.Dy(), tileSize)
	if cols == 0 || rows == 0 {
		return nil, fmt.Errorf("%dx%d image with %d px tiles: %w", b.Dx(), b.Dy(), tileSize, ErrNoTiles)
	}

	atlas := image.NewNRGBA(image.Rect(0, 0, cols*tileSize, rows*tileSize))
	for i, tile := range Tiles(b, tileSize) {
		col, row := i%cols, i/cols
		dr := image.Rect(col*tileSize, row*tileSize, (col+1)*tileSize, (row+1)*tileSize)
		draw.Draw(atlas, dr, img, tile.Min, draw.Src)
	}
	return atlas, nil
}

// Package dither maps pixel buffers onto a palette with Floyd-Steinberg
// error diffusion.
package dither

import (
	"image"
	"math"

	"pixelart/palette"
)

type tap struct {
	dx, dy int
	weight float64
}

// floydSteinberg only reaches pixels that have not been visited yet in
// raster order. The weights sum to one.
var floydSteinberg = [...]tap{
	{dx: 1, dy: 0, weight: 7.0 / 16},
	{dx: -1, dy: 1, weight: 3.0 / 16},
	{dx: 0, dy: 1, weight: 5.0 / 16},
	{dx: 1, dy: 1, weight: 1.0 / 16},
}

// FloydSteinberg rewrites the RGB of every pixel in buf to a palette colour,
// diffusing the quantization error to later neighbours. Neighbour channels
// are clamped to [0, 255] after each addition and targets outside buf are
// skipped. Alpha is left untouched. An empty palette leaves buf unchanged.
func FloydSteinberg(buf *image.NRGBA, pal palette.Palette) {
	if len(pal) == 0 {
		return
	}
	b := buf.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	// Working values carry the fractional part of diffused error.
	work := make([]float64, w*h*3)
	for y := range h {
		row := buf.Pix[y*buf.Stride:]
		for x := range w {
			copy3(work[(y*w+x)*3:], row[x*4:])
		}
	}

	for y := range h {
		row := buf.Pix[y*buf.Stride:]
		for x := range w {
			i := (y*w + x) * 3
			old := [3]float64{work[i], work[i+1], work[i+2]}
			e, _ := pal.Nearest(palette.RGB{R: round8(old[0]), G: round8(old[1]), B: round8(old[2])})

			p := row[x*4:]
			p[0], p[1], p[2] = e.R, e.G, e.B

			diffuse(work, w, h, x, y, [3]float64{
				old[0] - float64(e.R),
				old[1] - float64(e.G),
				old[2] - float64(e.B),
			})
		}
	}
}

// diffuse spreads err from (x, y) over the kernel and reports the total
// weight that landed inside the buffer.
func diffuse(work []float64, w, h, x, y int, err [3]float64) float64 {
	spread := 0.0
	for _, t := range floydSteinberg {
		nx, ny := x+t.dx, y+t.dy
		if nx < 0 || nx >= w || ny < 0 || ny >= h {
			continue
		}
		spread += t.weight
		j := (ny*w + nx) * 3
		for c := range 3 {
			work[j+c] = clamp(work[j+c] + err[c]*t.weight)
		}
	}
	return spread
}

func copy3(dst []float64, src []uint8) {
	dst[0], dst[1], dst[2] = float64(src[0]), float64(src[1]), float64(src[2])
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(255, v))
}

func round8(v float64) uint8 {
	return uint8(math.Round(clamp(v)))
}

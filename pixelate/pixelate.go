// Package pixelate turns a region of an image into pixel-art blocks.
//
// The source is shrunk to block resolution, optionally mapped onto a
// palette, blown back up with nearest-neighbour sampling and copied into a
// copy of the source wherever the selection allows.
package pixelate

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"pixelart/dither"
	"pixelart/mask"
	"pixelart/palette"
)

// MapFunc rewrites the RGB of every pixel in buf onto pal, in place.
type MapFunc func(buf *image.NRGBA, pal palette.Palette)

// Scope says where pixelation is composited.
type Scope int

const (
	// ScopeSelection composites only selected pixels. With no selection or
	// an empty one the output equals the source.
	ScopeSelection Scope = iota
	// ScopeImage ignores the selection and pixelates every pixel.
	ScopeImage
)

func (s Scope) String() string {
	if s == ScopeImage {
		return "image"
	}
	return "selection"
}

// Params holds the per-pass settings.
type Params struct {
	BlockSize int
	Palette   palette.Palette
	Dither    bool
	Scope     Scope
}

// Pixelator runs pixelation passes. The zero value is not usable; call New.
type Pixelator struct {
	// Downscale shrinks the source to block resolution. NearestNeighbor
	// keeps blocks crisp; smoother kernels average within blocks.
	Downscale draw.Interpolator
	// Dither is used when Params.Dither is set.
	Dither MapFunc
	// Map is used when Params.Dither is not set.
	Map MapFunc
}

// Option configures a Pixelator.
type Option func(*Pixelator)

// WithDownscale replaces the downscaling kernel.
func WithDownscale(k draw.Interpolator) Option {
	return func(p *Pixelator) { p.Downscale = k }
}

// WithDither replaces the error diffusion function.
func WithDither(f MapFunc) Option {
	return func(p *Pixelator) { p.Dither = f }
}

// New returns a Pixelator using nearest-neighbour downscaling, direct
// nearest-colour mapping and Floyd-Steinberg dithering.
func New(opts ...Option) *Pixelator {
	p := &Pixelator{
		Downscale: draw.NearestNeighbor,
		Dither:    dither.FloydSteinberg,
		Map:       MapNearest,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// GridSize returns the block grid for a w x h image.
func GridSize(w, h, blockSize int) (int, int) {
	blockSize = max(1, blockSize)
	return max(1, int(math.Round(float64(w)/float64(blockSize)))),
		max(1, int(math.Round(float64(h)/float64(blockSize))))
}

// Pixelate returns a new buffer the size of src. Pixels outside the
// composite region equal src; pixels inside get the RGB of the pixelated
// image and keep the source alpha.
func (p *Pixelator) Pixelate(src image.Image, params Params, sel mask.Selection) *image.NRGBA {
	out := Clone(src)
	b := out.Bounds()
	if b.Empty() {
		return out
	}
	if params.Scope == ScopeSelection && sel.State() != mask.Active {
		return out
	}

	big := p.Blocks(out, params)

	for y := range b.Dy() {
		orow := out.Pix[y*out.Stride:]
		brow := big.Pix[y*big.Stride:]
		for x := range b.Dx() {
			if params.Scope == ScopeSelection && !sel.Selected(x, y) {
				continue
			}
			copy(orow[x*4:x*4+3], brow[x*4:x*4+3])
		}
	}
	return out
}

// Blocks returns the full-size pixelated image of src without compositing.
func (p *Pixelator) Blocks(src *image.NRGBA, params Params) *image.NRGBA {
	b := src.Bounds()
	sw, sh := GridSize(b.Dx(), b.Dy(), params.BlockSize)

	small := image.NewNRGBA(image.Rect(0, 0, sw, sh))
	p.Downscale.Scale(small, small.Bounds(), src, b, draw.Src, nil)

	if len(params.Palette) > 0 {
		if params.Dither {
			p.Dither(small, params.Palette)
		} else {
			p.Map(small, params.Palette)
		}
	}

	big := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.NearestNeighbor.Scale(big, big.Bounds(), small, small.Bounds(), draw.Src, nil)
	return big
}

// MapNearest replaces each pixel's RGB with its nearest palette colour.
func MapNearest(buf *image.NRGBA, pal palette.Palette) {
	b := buf.Bounds()
	for y := range b.Dy() {
		row := buf.Pix[y*buf.Stride:]
		for x := range b.Dx() {
			px := row[x*4 : x*4+3]
			e, ok := pal.Nearest(palette.RGB{R: px[0], G: px[1], B: px[2]})
			if !ok {
				return
			}
			px[0], px[1], px[2] = e.R, e.G, e.B
		}
	}
}

// Clone copies img into a new NRGBA buffer with its origin at (0, 0).
func Clone(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if src, ok := img.(*image.NRGBA); ok {
		for y := range b.Dy() {
			copy(out.Pix[y*out.Stride:(y+1)*out.Stride], src.Pix[y*src.Stride:])
		}
		return out
	}
	for y := range b.Dy() {
		for x := range b.Dx() {
			out.SetNRGBA(x, y, color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA))
		}
	}
	return out
}

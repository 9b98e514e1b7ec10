package convert

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"pixelart/mask"
	"pixelart/pixelate"
)

var selectionTint = color.NRGBA{R: 0xff, G: 0x20, B: 0xa0, A: 0x70}

// selectionPreview tints the selected pixels of src.
func selectionPreview(src image.Image, m *mask.Mask) *image.NRGBA {
	dst := pixelate.Clone(src)
	if m == nil {
		return dst
	}
	draw.DrawMask(dst, dst.Bounds(), image.NewUniform(selectionTint), image.Point{}, m.Alpha(), image.Point{}, draw.Over)
	return dst
}

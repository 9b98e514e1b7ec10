package convert

import (
	"image"
	"image/color"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
)

// fit scales img towards width×height before pixelation. A zero dimension
// keeps the source size on that axis. With crop the source is trimmed to the
// target aspect ratio; otherwise the image shrinks to fit, and when fill is
// set the spare area is padded with it so the canvas is exactly width×height.
func fit(logger *slog.Logger, img image.Image, width, height int, crop bool, fill color.Color, kernel draw.Interpolator) *image.NRGBA {
	src := img.Bounds()
	sw, sh := float64(src.Dx()), float64(src.Dy())

	dw, dh := float64(width), float64(height)
	if width <= 0 {
		dw = sw
	}
	if height <= 0 {
		dh = sh
	}

	canvas := image.Rect(0, 0, int(dw), int(dh))
	target := canvas
	srcAR, dstAR := sw/sh, dw/dh
	padded := false

	switch {
	case crop && srcAR < dstAR:
		trim := int(math.Round((sh - sw/dstAR) / 2))
		src.Min.Y += trim
		src.Max.Y -= trim
	case crop && srcAR > dstAR:
		trim := int(math.Round((sw - sh*dstAR) / 2))
		src.Min.X += trim
		src.Max.X -= trim
	case !crop && srcAR < dstAR:
		w := dh * srcAR
		if fill == nil {
			canvas.Max.X = int(math.Round(w))
			target = canvas
		} else if padded = dw > w; padded {
			inset := int(math.Round((dw - w) / 2))
			target.Min.X += inset
			target.Max.X -= inset
		}
	case !crop && srcAR > dstAR:
		h := dw / srcAR
		if fill == nil {
			canvas.Max.Y = int(math.Round(h))
			target = canvas
		} else if padded = dh > h; padded {
			inset := int(math.Round((dh - h) / 2))
			target.Min.Y += inset
			target.Max.Y -= inset
		}
	}

	logger.Info("fitting", "width", canvas.Dx(), "height", canvas.Dy())
	dst := image.NewNRGBA(canvas)
	if padded {
		draw.Draw(dst, canvas, image.NewUniform(fill), image.Point{}, draw.Src)
	}
	kernel.Scale(dst, target, img, src, draw.Over, nil)
	return dst
}

// Package imgio decodes source images and writes results atomically through
// a temporary file in the destination folder.
package imgio

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"

	"pixelart/palette"
)

// Formats lists the encoders Encode supports.
var Formats = []string{"png", "gif", "jpeg", "bmp", "tiff"}

// Open decodes the image file at name.
func Open(name string) (image.Image, string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, "", fmt.Errorf("could not open image %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "name", name, "error", closeErr)
		}
	}()

	img, imgType, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("could not decode image %q: %w", name, err)
	}
	return img, imgType, nil
}

// OutputType resolves an output format option against the source type. A
// "unsup:" prefix converts only formats that cannot be encoded, "same" keeps
// the source format.
func OutputType(imgType, outType string) string {
	outType, unsupOnly := strings.CutPrefix(outType, "unsup:")
	if outType == "same" {
		return imgType
	}
	if unsupOnly {
		for _, f := range Formats {
			if f == imgType {
				return imgType
			}
		}
	}
	return outType
}

// DestName swaps the extension of srcName for format, adding suffix before it.
func DestName(srcName, suffix, format string) string {
	base := filepath.Base(srcName)
	return fmt.Sprintf("%s%s.%s", strings.TrimSuffix(base, filepath.Ext(base)), suffix, format)
}

// Encode writes img in the given format. When pal holds 1 to 256 colours and
// indexed is set or the format is gif, the image is stored with that palette;
// pixels are mapped to their nearest entry without dithering.
func Encode(w io.Writer, img image.Image, format string, pal palette.Palette, indexed bool) error {
	if len(pal) > 0 && len(pal) <= 256 && (indexed || format == "gif") {
		img = ToPaletted(img, pal)
	}

	switch format {
	case "gif":
		if err := gif.Encode(w, img, nil); err != nil {
			return fmt.Errorf("could not encode GIF: %w", err)
		}
	case "jpeg", "jpg":
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: 100}); err != nil {
			return fmt.Errorf("could not encode JPEG: %w", err)
		}
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if err := enc.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode PNG: %w", err)
		}
	case "bmp":
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode BMP: %w", err)
		}
	case "tiff":
		if err := tiff.Encode(w, img, nil); err != nil {
			return fmt.Errorf("could not encode TIFF: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
	return nil
}

// ToPaletted converts img to a paletted image over pal.
func ToPaletted(img image.Image, pal palette.Palette) *image.Paletted {
	b := img.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), pal.ColorPalette())
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Save encodes img into destDir/destName. See Encode for pal and indexed.
func Save(img image.Image, format, destDir, destName string, pal palette.Palette, indexed bool) error {
	return WriteFile(destDir, destName, func(w io.Writer) error {
		return Encode(w, img, format, pal, indexed)
	})
}

// WriteFile writes through a temporary file that is renamed into place only
// when write succeeds.
func WriteFile(destDir, destName string, write func(io.Writer) error) (err error) {
	outFile, err := os.CreateTemp(destDir, destName)
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", destName, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", destName, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), filepath.Join(destDir, destName)); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", destName, defErr)
			}
		} else if rmErr := os.Remove(outFile.Name()); rmErr != nil {
			slog.Error("could not remove temporary file", "name", outFile.Name(), "error", rmErr)
		}
	}()

	if err = write(outFile); err != nil {
		return fmt.Errorf("could not write %q: %w", destName, err)
	}

	canRename = true
	return nil
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}

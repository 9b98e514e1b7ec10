package quantize

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"pixelart/imgio"
	"pixelart/palette"
	"pixelart/pixelate"
)

// CLICmd builds a palette from an image, or converts a built-in palette or
// PAL file, and prints it or writes it as a RIFF PAL file.
type CLICmd struct {
	Source  string `arg:"" help:"Image to cluster, or a built-in palette name or PAL file to convert"`
	Colors  int    `help:"Number of colours to cluster an image into (2-32)" default:"8"`
	Block   int    `help:"Cluster the image shrunk to this block size" default:"1"`
	Seed    uint64 `help:"Seed for centroid initialisation, 0 picks a random one" default:"0"`
	Samples int    `help:"Maximum number of pixels sampled" default:"4000"`
	Out     string `help:"Write the palette to this PAL file instead of printing it" type:"path"`

	Stdout io.Writer `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.Colors < 2 || c.Colors > 32 {
		return fmt.Errorf("invalid colour count %d, expected 2-32", c.Colors)
	}
	if c.Block < 1 {
		return fmt.Errorf("invalid block size: %d", c.Block)
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	return nil
}

func (c *CLICmd) Run() error {
	pal, err := c.load()
	if err != nil {
		return err
	}
	if len(pal) == 0 {
		return fmt.Errorf("no colours found in %q", c.Source)
	}

	if c.Out == "" {
		for _, hex := range pal.Hexes() {
			if _, err := fmt.Fprintln(c.Stdout, hex); err != nil {
				return err
			}
		}
		return nil
	}

	err = imgio.WriteFile(filepath.Dir(c.Out), filepath.Base(c.Out), func(w io.Writer) error {
		_, err := palette.WriteTo(w, pal)
		return err
	})
	if err != nil {
		return err
	}
	slog.Info("palette written", "file", c.Out, "colors", len(pal))
	return nil
}

func (c *CLICmd) load() (palette.Palette, error) {
	if pal, ok := palette.Fixed(c.Source); ok {
		return pal, nil
	}
	if strings.EqualFold(filepath.Ext(c.Source), ".pal") {
		return palette.LoadPalette(c.Source)
	}

	img, _, err := imgio.Open(c.Source)
	if err != nil {
		return nil, err
	}
	if c.Block > 1 {
		b := img.Bounds()
		w, h := pixelate.GridSize(b.Dx(), b.Dy(), c.Block)
		img = Shrink(img, w, h)
	}

	opts := Options{MaxSamples: c.Samples}
	if c.Seed != 0 {
		opts.Rand = NewRand(c.Seed)
	}
	return FromImage(img, c.Colors, opts), nil
}

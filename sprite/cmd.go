package sprite

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/alecthomas/kong"

	"pixelart/imgio"
)

type CLICmd struct {
	Source string `arg:"" help:"Image to cut into tiles" type:"existingfile"`
	Tile   int    `help:"Tile size in pixels (8, 16 or 32)" default:"16"`
	Dest   string `help:"Destination folder, defaults to the source folder"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if !slices.Contains(TileSizes, c.Tile) {
		return fmt.Errorf("unsupported tile size %d, expected one of %v", c.Tile, TileSizes)
	}
	if c.Dest == "" {
		c.Dest = filepath.Dir(c.Source)
	}
	return nil
}

func (c *CLICmd) Run() error {
	img, _, err := imgio.Open(c.Source)
	if err != nil {
		return err
	}
	sheet, err := Sheet(img, c.Tile)
	if err != nil {
		return err
	}

	name := imgio.DestName(c.Source, fmt.Sprintf("_sprites%d", c.Tile), "png")
	if err := imgio.Save(sheet, "png", c.Dest, name, nil, false); err != nil {
		return err
	}
	cols, rows := Grid(img.Bounds().Dx(), img.Bounds().Dy(), c.Tile)
	slog.Info("sprite sheet written", "file", filepath.Join(c.Dest, name), "cols", cols, "rows", rows)
	return nil
}

// Package convert implements the pixelate command: each image is loaded into
// an editing session, the shape sequence from the command line becomes its
// selection, and the rendered output is written next to optional palette,
// sprite sheet and selection preview files.
package convert

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/alecthomas/kong"
	"golang.org/x/image/draw"

	"pixelart/editor"
	"pixelart/imgio"
	"pixelart/mask"
	"pixelart/palette"
	"pixelart/parallel"
	"pixelart/pixelate"
	"pixelart/sprite"
)

var kernels = map[string]draw.Interpolator{
	"nearest":    draw.NearestNeighbor,
	"bilinear":   draw.ApproxBiLinear,
	"catmullrom": draw.CatmullRom,
}

type CLICmd struct {
	Scan string `help:"Source image, or folder of images to process" default:"."`
	Dest string `help:"Destination folder for pixelated pictures. Relative to the scan folder if not absolute. If same as the scan folder, will overwrite source files." default:"pixelated"`

	Block    int    `help:"Block size in pixels (1-50)" default:"8" group:"pixelate"`
	Resample string `help:"Kernel used to shrink the image to block resolution" enum:"nearest,bilinear,catmullrom" default:"nearest" group:"pixelate"`

	Palette string `help:"Palette source" enum:"none,fixed,kmeans" default:"none" group:"palette"`
	Name    string `help:"Palette name for --palette=fixed (gameboy, nes, snes, bw, gray16, spectra6, vga16) or PAL file in RIFF format" default:"gameboy" group:"palette"`
	Colors  int    `help:"Colour count for --palette=kmeans (2-32)" default:"8" group:"palette"`
	Seed    uint64 `help:"Seed for --palette=kmeans, 0 picks a random one" default:"0" group:"palette"`
	Dither  bool   `help:"Apply Floyd-Steinberg dithering" default:"false" group:"palette"`

	Select []string `help:"Selection shape as mode:shape:args, applied in order. Modes are add and remove; rect, circle and ellipse take x,y,w,h and lasso takes x,y;x,y;..." sep:"none" group:"selection"`
	Scope  string   `help:"Where to pixelate. auto pixelates the whole image when no --select is given" enum:"auto,selection,image" default:"auto" group:"selection"`

	Width  int    `help:"Fit width before pixelating, 0 keeps the source width" group:"fit"`
	Height int    `help:"Fit height before pixelating, 0 keeps the source height" group:"fit"`
	Crop   bool   `help:"Crop to the requested aspect ratio instead of shrinking to fit" default:"false" group:"fit"`
	Fill   string `help:"If given and not cropping, pad to the requested size with this #RGB or #RRGGBB colour" group:"fit"`

	Format      string `help:"Output format of pixelated image. If prefixed with 'unsup:' will convert only unsupported formats" enum:"same,gif,unsup:gif,jpeg,unsup:jpeg,png,unsup:png,bmp,unsup:bmp,tiff,unsup:tiff" default:"unsup:png" group:"output"`
	Indexed     bool   `help:"Store PNG output as a paletted image" default:"false" group:"output"`
	SavePalette bool   `help:"Also write the palette of each image as a PAL file" default:"false" group:"output"`
	Sprites     int    `help:"Also cut the output into a sprite sheet with tiles of this size (8, 16 or 32)" default:"0" group:"output"`
	Preview     bool   `help:"Also write the source with the selection tinted" default:"false" group:"output"`

	Files     []string          `kong:"-"`
	Ops       []mask.Op         `kong:"-"`
	Settings  editor.Settings   `kong:"-"`
	Downscale draw.Interpolator `kong:"-"`
	FillColor color.Color       `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanPath, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		info, err = os.Stat(scanPath)
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanPath
	if !info.IsDir() {
		c.Files = []string{scanPath}
		c.Scan = filepath.Dir(scanPath)
	}

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(c.Scan, c.Dest)
	}

	mode, err := editor.ParsePaletteMode(c.Palette)
	if err != nil {
		return err
	}
	if mode == editor.PaletteFixed {
		if _, err := palette.LoadPalette(c.Name); err != nil {
			return err
		}
	}
	if c.Indexed && mode == editor.PaletteNone {
		return fmt.Errorf("indexed output needs a palette")
	}

	c.Ops = c.Ops[:0]
	for _, s := range c.Select {
		op, err := mask.ParseOp(s)
		if err != nil {
			return err
		}
		c.Ops = append(c.Ops, op)
	}

	settings := editor.Settings{
		PaletteMode: mode,
		PaletteName: c.Name,
		K:           c.Colors,
		Dither:      c.Dither,
		BlockSize:   c.Block,
		Scope:       pixelate.ScopeSelection,
		Seed:        c.Seed,
	}
	if c.Scope == "image" || (c.Scope == "auto" && len(c.Ops) == 0) {
		settings.Scope = pixelate.ScopeImage
	}
	c.Settings = settings.Clamp()
	if c.Settings.BlockSize != settings.BlockSize {
		slog.Warn("block size out of range", "requested", settings.BlockSize, "using", c.Settings.BlockSize)
	}
	if mode == editor.PaletteKMeans && c.Settings.K != settings.K {
		slog.Warn("colour count out of range", "requested", settings.K, "using", c.Settings.K)
	}

	c.Downscale = kernels[c.Resample]

	switch {
	case c.Width < 0:
		return fmt.Errorf("invalid fit width: %d", c.Width)
	case c.Height < 0:
		return fmt.Errorf("invalid fit height: %d", c.Height)
	}
	if !c.Crop && c.Fill != "" {
		fill, err := palette.ParseHex(c.Fill)
		if err != nil {
			return fmt.Errorf("invalid fill colour: %w", err)
		}
		c.FillColor = fill
	}

	if c.Sprites != 0 && !slices.Contains(sprite.TileSizes, c.Sprites) {
		return fmt.Errorf("unsupported sprite tile size %d, expected one of %v", c.Sprites, sprite.TileSizes)
	}

	return nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files := c.Files
	if files == nil {
		entries, err := os.ReadDir(c.Scan)
		if err != nil {
			return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
		}
		for _, e := range entries {
			if !e.IsDir() {
				files = append(files, filepath.Join(c.Scan, e.Name()))
			}
		}
	}

	var processedCount, errCount atomic.Uint64
	for _, filePath := range files {
		worker(func() error {
			logger := slog.Default().With("file", filePath)
			if err := c.process(logger, filePath); err != nil {
				errCount.Add(1)
				logger.Error("could not pixelate image", "error", err)
				return err
			}
			processedCount.Add(1)
			return nil
		})
	}

	err := wait()

	processed := processedCount.Load()
	failed := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", failed,
		"total", processed+failed)

	if err != nil {
		return fmt.Errorf("error processing %d files", failed)
	}
	return nil
}

func (c *CLICmd) process(logger *slog.Logger, filePath string) error {
	img, imgType, err := imgio.Open(filePath)
	if err != nil {
		return err
	}

	if c.Width > 0 || c.Height > 0 {
		img = fit(logger, img, c.Width, c.Height, c.Crop, c.FillColor, c.Downscale)
	}

	session := editor.New(
		editor.WithLogger(logger),
		editor.WithPixelator(pixelate.New(pixelate.WithDownscale(c.Downscale))),
	)
	session.Load(img)
	if err := session.SetShapes(c.Ops); err != nil {
		return err
	}
	if err := session.ApplySettings(c.Settings); err != nil {
		return err
	}

	sel := session.Selection()
	if sel.State() == mask.EmptySelection && c.Settings.Scope == pixelate.ScopeSelection {
		logger.Warn("selection is empty, image left unchanged")
	}

	out := session.Output()
	pal := session.Palette()
	outType := imgio.OutputType(imgType, c.Format)
	if err := imgio.Save(out, outType, c.Dest, imgio.DestName(filePath, "", outType), pal, c.Indexed); err != nil {
		return err
	}

	if c.SavePalette && len(pal) > 0 {
		err := imgio.WriteFile(c.Dest, imgio.DestName(filePath, "", "pal"), func(w io.Writer) error {
			_, err := palette.WriteTo(w, pal)
			return err
		})
		if err != nil {
			return err
		}
		logger.Info("palette saved", "colors", strings.Join(pal.Hexes(), " "))
	}

	if c.Sprites > 0 {
		sheet, err := sprite.Sheet(out, c.Sprites)
		switch {
		case errors.Is(err, sprite.ErrNoTiles):
			logger.Warn("no sprite sheet written", "tile", c.Sprites, "error", err)
		case err != nil:
			return err
		default:
			name := imgio.DestName(filePath, fmt.Sprintf("_sprites%d", c.Sprites), "png")
			if err := imgio.Save(sheet, "png", c.Dest, name, nil, false); err != nil {
				return err
			}
		}
	}

	if c.Preview && sel.State() == mask.Active {
		name := imgio.DestName(filePath, "_selection", "png")
		if err := imgio.Save(selectionPreview(session.Source(), sel.Mask()), "png", c.Dest, name, nil, false); err != nil {
			return err
		}
	}

	logger.Debug("pixelated", "format", outType, "selection", sel.State(), "colors", len(pal))
	return nil
}

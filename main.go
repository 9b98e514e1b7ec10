package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"pixelart/convert"
	"pixelart/parallel"
	"pixelart/quantize"
	"pixelart/sprite"
)

type CLI struct {
	Config  kong.ConfigFlag `help:"Load flag defaults from a JSON file"`
	Workers int             `help:"Number of images processed in parallel, 0 for one per CPU" default:"0"`
	Verbose bool            `help:"Log debug messages" short:"v"`

	Pixelate convert.CLICmd  `cmd:"" help:"Pixelate images inside a selection, optionally remapping to a palette"`
	Palette  quantize.CLICmd `cmd:"" help:"Build a palette from an image with k-means, or convert a palette to a PAL file"`
	Sprites  sprite.CLICmd   `cmd:"" help:"Cut an image into a sprite sheet"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("pixelart"),
		kong.Description("Selection-aware pixelation, palette and sprite sheet tools."),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, "~/.config/pixelart.json"),
	)

	if cli.Verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	pool := parallel.Start(cli.Workers)
	err := kctx.Run(pool.Do, pool.Wait)
	pool.Cancel()
	if err != nil {
		slog.Error("command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}

package editor

import (
	"fmt"

	"pixelart/pixelate"
)

type PaletteMode int

const (
	PaletteNone PaletteMode = iota
	PaletteFixed
	PaletteKMeans
)

var paletteModeNames = map[PaletteMode]string{
	PaletteNone:   "none",
	PaletteFixed:  "fixed",
	PaletteKMeans: "kmeans",
}

func (m PaletteMode) String() string {
	if n, ok := paletteModeNames[m]; ok {
		return n
	}
	return fmt.Sprintf("PaletteMode(%d)", int(m))
}

// ParsePaletteMode reads "none", "fixed" or "kmeans".
func ParsePaletteMode(s string) (PaletteMode, error) {
	for m, n := range paletteModeNames {
		if n == s {
			return m, nil
		}
	}
	return PaletteNone, fmt.Errorf("unsupported palette mode %q", s)
}

const (
	MinK         = 2
	MaxK         = 32
	MinBlockSize = 1
	MaxBlockSize = 50
)

// Settings are the user-facing pixelation options.
type Settings struct {
	PaletteMode PaletteMode
	// PaletteName is a built-in palette or a .pal file, used by PaletteFixed.
	PaletteName string
	// K is the colour count for PaletteKMeans.
	K         int
	Dither    bool
	BlockSize int
	Scope     pixelate.Scope
	// Seed makes k-means palettes reproducible. Zero picks a random seed.
	Seed uint64
}

func DefaultSettings() Settings {
	return Settings{
		PaletteMode: PaletteNone,
		PaletteName: "gameboy",
		K:           8,
		BlockSize:   8,
		Scope:       pixelate.ScopeSelection,
	}
}

// Clamp forces K and BlockSize into their supported ranges.
func (s Settings) Clamp() Settings {
	s.K = min(MaxK, max(MinK, s.K))
	s.BlockSize = min(MaxBlockSize, max(MinBlockSize, s.BlockSize))
	return s
}

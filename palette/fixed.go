package palette

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
)

var fixed = map[string][]string{
	"gameboy": {"#0f380f", "#306230", "#8bac0f", "#9bbc0f"},
	"nes": {
		"#7c7c7c", "#0000fc", "#0000bc", "#4428bc", "#940084", "#a80020", "#a81000",
		"#881400", "#503000", "#007800", "#006800", "#005800", "#004058", "#000000",
	},
	"snes": {
		"#2b2b2b", "#6b6b6b", "#bdbdbd", "#ffffff", "#ff0000", "#ffb400", "#ffd700",
		"#00ff00", "#00ffff", "#0000ff", "#8000ff",
	},
	"bw":       {"#000000", "#ffffff"},
	"spectra6": {"#000000", "#ffffff", "#ff0000", "#00ff00", "#0000ff", "#ffff00"},
	"vga16": {
		"#000000", "#0000aa", "#00aa00", "#00aaaa", "#aa0000", "#aa00aa", "#aa5500", "#aaaaaa",
		"#555555", "#5555ff", "#55ff55", "#55ffff", "#ff5555", "#ff55ff", "#ffff55", "#ffffff",
	},
}

func init() {
	gray := make([]string, 16)
	for i := range gray {
		gray[i] = RGB{uint8(i * 17), uint8(i * 17), uint8(i * 17)}.Hex()
	}
	fixed["gray16"] = gray
}

// Names lists the built-in palettes in sorted order.
func Names() []string {
	names := make([]string, 0, len(fixed))
	for name := range fixed {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Fixed returns a built-in palette by name.
func Fixed(name string) (Palette, bool) {
	hexes, ok := fixed[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	p, err := FromHex(hexes...)
	if err != nil {
		panic(fmt.Sprintf("built-in palette %q: %v", name, err))
	}
	return p, true
}

// LoadPalette returns the built-in palette called name or, failing that,
// reads name as a RIFF PAL file.
func LoadPalette(name string) (Palette, error) {
	if p, ok := Fixed(name); ok {
		return p, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unknown palette %q (built-in: %s): %w", name, strings.Join(Names(), ", "), err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close palette file", "name", name, "error", closeErr)
		}
	}()

	pals, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("could not load palette file %q: %w", name, err)
	}

	var p Palette
	for _, pal := range pals {
		p = append(p, pal...)
	}
	if len(p) == 0 {
		return nil, fmt.Errorf("palette file %q holds no colors", name)
	}
	return p, nil
}

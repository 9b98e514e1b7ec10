package palette

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestNearestRoundTrip(t *testing.T) {
	for _, name := range Names() {
		p, ok := Fixed(name)
		if !ok {
			t.Fatalf("expected built-in palette %q", name)
		}
		for i, e := range p {
			got, ok := p.Nearest(e.RGB)
			if !ok {
				t.Fatalf("%s: expected a match", name)
			}
			if got.RGB != e.RGB {
				t.Errorf("%s[%d]: expected %s, got %s", name, i, e.Hex, got.Hex)
			}
		}
	}
}

func TestNearestTieKeepsFirst(t *testing.T) {
	p, err := FromHex("#000000", "#020202", "#000000")
	if err != nil {
		t.Fatal(err)
	}
	if i := p.Index(RGB{1, 1, 1}); i != 0 {
		t.Errorf("expected index 0 on tie, got %d", i)
	}
	if i := p.Index(RGB{0, 0, 0}); i != 0 {
		t.Errorf("expected first exact match, got %d", i)
	}
}

func TestNearestEmpty(t *testing.T) {
	if _, ok := Palette(nil).Nearest(RGB{1, 2, 3}); ok {
		t.Error("expected no match for empty palette")
	}
	if i := Palette(nil).Index(RGB{}); i != -1 {
		t.Errorf("expected -1, got %d", i)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"#000000", RGB{0, 0, 0}},
		{"#0f380f", RGB{0x0f, 0x38, 0x0f}},
		{"#FFB400", RGB{0xff, 0xb4, 0x00}},
		{"#abc", RGB{0xaa, 0xbb, 0xcc}},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.in, err)
		} else if got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.in, tt.want, got)
		}
	}

	for _, bad := range []string{"", "000000", "#12345", "#ggg", "#12345678"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}

func TestHex(t *testing.T) {
	if got := (RGB{0x0f, 0x38, 0xff}).Hex(); got != "#0f38ff" {
		t.Errorf("expected #0f38ff, got %s", got)
	}
	p, _ := Fixed("GameBoy")
	if len(p) != 4 || p[0].Hex != "#0f380f" {
		t.Errorf("expected gameboy palette, got %v", p.Hexes())
	}
}

func TestRIFFRoundTrip(t *testing.T) {
	nes, _ := Fixed("nes")
	bw, _ := Fixed("bw")

	var buf bytes.Buffer
	n, err := WriteTo(&buf, nes, bw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != int64(len(nes)+len(bw)) {
		t.Errorf("expected %d colors written, got %d", len(nes)+len(bw), n)
	}

	pals, err := ReadFrom(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pals) != 2 {
		t.Fatalf("expected 2 palettes, got %d", len(pals))
	}
	for i, e := range nes {
		if pals[0][i] != e {
			t.Errorf("color %d: expected %v, got %v", i, e, pals[0][i])
		}
	}
}

func TestLoadPalette(t *testing.T) {
	if _, err := LoadPalette("snes"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	gb, _ := Fixed("gameboy")
	name := filepath.Join(t.TempDir(), "gb.pal")
	f, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := WriteTo(f, gb); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPalette(name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p) != len(gb) {
		t.Errorf("expected %d colors, got %d", len(gb), len(p))
	}

	if _, err := LoadPalette(filepath.Join(t.TempDir(), "missing.pal")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadPaletteClosesFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "two.pal")
	f, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	bw, _ := Fixed("bw")
	if _, err := WriteTo(f, bw); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	defer slog.SetDefault(prev)

	for range 3 {
		if p, err := LoadPalette(name); err != nil || len(p) != 2 {
			t.Fatalf("expected two colours, got %v %v", p, err)
		}
	}
	if logs.Len() != 0 {
		t.Errorf("expected no close errors logged, got %q", logs.String())
	}
}

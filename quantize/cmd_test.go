package quantize

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pixelart/imgio"
	"pixelart/palette"
)

func TestCmdPrintsFixedPalette(t *testing.T) {
	var out bytes.Buffer
	c := CLICmd{Source: "BW", Colors: 8, Block: 1, Stdout: &out}
	if err := c.Validate(nil); err != nil {
		t.Fatal(err)
	}
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if got := strings.Fields(out.String()); len(got) != 2 || got[0] != "#000000" || got[1] != "#ffffff" {
		t.Errorf("expected black and white, got %v", got)
	}
}

func TestCmdClustersImage(t *testing.T) {
	dir := t.TempDir()
	if err := imgio.Save(twoToneImage(16, 16), "png", dir, "two.png", nil, false); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "two.pal")
	c := CLICmd{Source: filepath.Join(dir, "two.png"), Colors: 4, Block: 4, Seed: 3, Out: out}
	if err := c.Validate(nil); err != nil {
		t.Fatal(err)
	}
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	pals, err := palette.ReadFrom(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(pals) != 1 || len(pals[0]) != 2 {
		t.Errorf("expected one palette with the two colours, got %v", pals)
	}
}

func TestCmdValidate(t *testing.T) {
	for _, c := range []CLICmd{
		{Source: "x", Colors: 1, Block: 1},
		{Source: "x", Colors: 33, Block: 1},
		{Source: "x", Colors: 8, Block: 0},
	} {
		if err := c.Validate(nil); err == nil {
			t.Errorf("expected error for %+v", c)
		}
	}
}

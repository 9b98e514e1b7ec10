package quantize

import (
	"image"
	"image/color"
	"testing"

	"pixelart/palette"
)

func twoToneImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			c := color.NRGBA{R: 250, G: 10, B: 10, A: 0xff}
			if x >= w/2 {
				c = color.NRGBA{R: 5, G: 5, B: 240, A: 0xff}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestSamplesSkipTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	img.SetNRGBA(1, 0, color.NRGBA{R: 9, A: 0xff})
	img.SetNRGBA(3, 0, color.NRGBA{R: 3, A: 1})

	s := Samples(img, 100)
	if len(s) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(s))
	}
	if s[0] != (palette.RGB{R: 9}) {
		t.Errorf("expected first sample R=9, got %v", s[0])
	}
}

func TestSamplesBounded(t *testing.T) {
	img := twoToneImage(100, 81)
	if n := len(Samples(img, 4000)); n > 4000 {
		t.Errorf("expected at most 4000 samples, got %d", n)
	}
	if n := len(Samples(img, 10)); n > 10 || n == 0 {
		t.Errorf("expected 1..10 samples, got %d", n)
	}
}

func TestKMeansEmpty(t *testing.T) {
	if p := KMeans(nil, 4, Options{}); len(p) != 0 {
		t.Errorf("expected empty palette, got %v", p)
	}
	transparent := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	if p := FromImage(transparent, 4, Options{}); len(p) != 0 {
		t.Errorf("expected empty palette for transparent image, got %v", p)
	}
}

func TestKMeansTwoClusters(t *testing.T) {
	p := FromImage(twoToneImage(16, 16), 2, Options{Rand: NewRand(1)})
	if len(p) != 2 {
		t.Fatalf("expected 2 colors, got %d", len(p))
	}
	want := map[palette.RGB]bool{
		{R: 250, G: 10, B: 10}: true,
		{R: 5, G: 5, B: 240}:   true,
	}
	for _, e := range p {
		if !want[e.RGB] {
			t.Errorf("unexpected centroid %v", e.RGB)
		}
		if e.Hex != e.RGB.Hex() {
			t.Errorf("expected hex %s, got %s", e.RGB.Hex(), e.Hex)
		}
	}
}

func TestKMeansCapsAtDistinctColors(t *testing.T) {
	samples := []palette.RGB{{R: 1, G: 1, B: 1}, {R: 1, G: 1, B: 1}, {R: 200, G: 0, B: 0}, {R: 200, G: 0, B: 0}}
	p := KMeans(samples, 8, Options{Rand: NewRand(7)})
	if len(p) != 2 {
		t.Errorf("expected 2 colors, got %d", len(p))
	}
}

func TestKMeansDeterministicWithSeed(t *testing.T) {
	var samples []palette.RGB
	for i := range 500 {
		samples = append(samples, palette.RGB{R: uint8(i * 7), G: uint8(i * 13), B: uint8(i * 29)})
	}
	a := KMeans(samples, 6, Options{Rand: NewRand(42)})
	b := KMeans(samples, 6, Options{Rand: NewRand(42)})
	if len(a) != len(b) {
		t.Fatalf("expected equal lengths, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("entry %d: expected %v, got %v", i, a[i], b[i])
		}
	}
}

func TestKMeansMeanRounding(t *testing.T) {
	// one cluster: mean of 0 and 3 is 1.5, rounds to 2
	samples := []palette.RGB{{R: 0, G: 0, B: 0}, {R: 3, G: 3, B: 3}}
	p := KMeans(samples, 1, Options{Rand: NewRand(3)})
	if len(p) != 1 || p[0].RGB != (palette.RGB{R: 2, G: 2, B: 2}) {
		t.Errorf("expected [#020202], got %v", p.Hexes())
	}
}

func TestShrink(t *testing.T) {
	small := Shrink(twoToneImage(16, 16), 2, 2)
	if small.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("expected 2x2, got %v", small.Bounds())
	}
	if c := small.NRGBAAt(0, 1); c.R < 200 || c.B > 50 {
		t.Errorf("expected red block, got %v", c)
	}
	if c := small.NRGBAAt(1, 0); c.B < 200 || c.R > 50 {
		t.Errorf("expected blue block, got %v", c)
	}
	if Shrink(twoToneImage(4, 4), 0, 0).Bounds().Dx() != 1 {
		t.Error("expected at least one pixel")
	}
}

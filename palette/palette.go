package palette

import (
	"fmt"
	"image/color"
	"math"
)

// RGB is an opaque 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// Hex returns the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Distance returns the squared euclidean distance between two colours.
func (c RGB) Distance(o RGB) int {
	dr := int(c.R) - int(o.R)
	dg := int(c.G) - int(o.G)
	db := int(c.B) - int(o.B)
	return dr*dr + dg*dg + db*db
}

// Entry is a palette colour together with its hex spelling.
type Entry struct {
	RGB
	Hex string
}

// NewEntry builds an entry and fills in its hex string.
func NewEntry(c RGB) Entry {
	return Entry{RGB: c, Hex: c.Hex()}
}

// Palette is an ordered list of colours. An empty palette means no
// quantization.
type Palette []Entry

// FromColors converts a standard library palette. Alpha is dropped.
func FromColors(cp color.Palette) Palette {
	p := make(Palette, 0, len(cp))
	for _, col := range cp {
		c := color.NRGBAModel.Convert(col).(color.NRGBA)
		p = append(p, NewEntry(RGB{c.R, c.G, c.B}))
	}
	return p
}

// FromHex builds a palette from #rrggbb or #rgb strings. Hex strings are
// normalized to #rrggbb.
func FromHex(hexes ...string) (Palette, error) {
	p := make(Palette, 0, len(hexes))
	for _, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			return nil, err
		}
		p = append(p, NewEntry(c))
	}
	return p, nil
}

// Index returns the position of the entry closest to c, preferring the
// earliest entry on ties. It returns -1 for an empty palette.
func (p Palette) Index(c RGB) int {
	ret, bestSum := -1, math.MaxInt
	for i, v := range p {
		sum := c.Distance(v.RGB)
		if sum < bestSum {
			if sum == 0 {
				return i
			}
			ret, bestSum = i, sum
		}
	}
	return ret
}

// Nearest returns the entry closest to c. ok is false only when the palette
// is empty.
func (p Palette) Nearest(c RGB) (e Entry, ok bool) {
	i := p.Index(c)
	if i < 0 {
		return Entry{}, false
	}
	return p[i], true
}

// ColorPalette converts p for use with image.Paletted.
func (p Palette) ColorPalette() color.Palette {
	cp := make(color.Palette, len(p))
	for i, e := range p {
		cp[i] = color.RGBA{R: e.R, G: e.G, B: e.B, A: 0xff}
	}
	return cp
}

// Hexes returns the hex string of every entry in order.
func (p Palette) Hexes() []string {
	res := make([]string, len(p))
	for i, e := range p {
		if e.Hex == "" {
			e.Hex = e.RGB.Hex()
		}
		res[i] = e.Hex
	}
	return res
}

// ParseHex reads #RGB or #RRGGBB.
func ParseHex(s string) (RGB, error) {
	var c RGB
	switch len(s) {
	case 4:
		n, err := fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		if err != nil {
			return RGB{}, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 3 {
			return RGB{}, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}

		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
	case 7:
		n, err := fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B)
		if err != nil {
			return RGB{}, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 3 {
			return RGB{}, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}
	default:
		return RGB{}, fmt.Errorf("invalid color %q, should be #RGB or #RRGGBB", s)
	}

	return c, nil
}

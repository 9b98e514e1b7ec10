// Package mask compiles an ordered list of add/remove shapes into a per-pixel
// selection.
package mask

import (
	"image"

	"pixelart/geom"
)

// Mode says whether an operation adds pixels to the selection or removes them.
type Mode int

const (
	Add Mode = iota
	Remove
)

func (m Mode) String() string {
	if m == Remove {
		return "remove"
	}
	return "add"
}

// Op is one committed selection edit.
type Op struct {
	Shape geom.Shape
	Mode  Mode
}

// Mask is a binary selection over an image of fixed size.
type Mask struct {
	width  int
	height int
	bits   []bool
}

// New returns an all-false mask.
func New(width, height int) *Mask {
	return &Mask{
		width:  width,
		height: height,
		bits:   make([]bool, width*height),
	}
}

// Bounds returns the mask dimensions as an image.Rectangle.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

func (m *Mask) Width() int  { return m.width }
func (m *Mask) Height() int { return m.height }

// At reports whether (x, y) is selected. Out-of-range points are not.
func (m *Mask) At(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	return m.bits[y*m.width+x]
}

// Set changes a single pixel. Out-of-range points are ignored.
func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.bits[y*m.width+x] = v
}

// Count returns the number of selected pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// BoundingBox returns the smallest rectangle holding every selected pixel,
// or an empty rectangle if nothing is selected.
func (m *Mask) BoundingBox() image.Rectangle {
	minX, minY, maxX, maxY := m.width, m.height, -1, -1
	for y := range m.height {
		row := m.bits[y*m.width : (y+1)*m.width]
		for x, b := range row {
			if !b {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < 0 {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// Alpha returns the mask as an opaque/transparent alpha image, usable as a
// mask argument to draw.DrawMask.
func (m *Mask) Alpha() *image.Alpha {
	a := image.NewAlpha(m.Bounds())
	for i, b := range m.bits {
		if b {
			a.Pix[i] = 0xff
		}
	}
	return a
}

// Equal reports whether two masks have the same size and bits.
func (m *Mask) Equal(o *Mask) bool {
	if m.width != o.width || m.height != o.height {
		return false
	}
	for i := range m.bits {
		if m.bits[i] != o.bits[i] {
			return false
		}
	}
	return true
}

func (m *Mask) apply(op Op) {
	r := op.Shape.Bounds().Intersect(m.Bounds())
	v := op.Mode == Add
	for y := r.Min.Y; y < r.Max.Y; y++ {
		cy := float64(y) + 0.5
		row := m.bits[y*m.width : (y+1)*m.width]
		for x := r.Min.X; x < r.Max.X; x++ {
			if op.Shape.Contains(float64(x)+0.5, cy) {
				row[x] = v
			}
		}
	}
}

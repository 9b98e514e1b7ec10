// Package geom holds the selection shapes and their closed-form fill tests.
//
// Coordinates are in image pixels. A pixel (px, py) is considered covered by
// a shape when its centre (px+0.5, py+0.5) passes the shape's Contains test.
package geom

import (
	"image"
	"math"
)

// Point is a location in image coordinates.
type Point struct {
	X, Y float64
}

// Shape is a closed region that can test points for membership.
type Shape interface {
	// Contains reports whether (x, y) lies inside the filled region.
	Contains(x, y float64) bool
	// Bounds returns the pixels that may be covered by the shape. Pixels
	// outside this rectangle are never covered.
	Bounds() image.Rectangle
}

// Rect is an axis-aligned rectangle given by a corner and a signed size.
// Negative sizes extend left or up from (X, Y).
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) norm() (xmin, ymin, xmax, ymax float64) {
	return math.Min(r.X, r.X+r.W), math.Min(r.Y, r.Y+r.H),
		math.Max(r.X, r.X+r.W), math.Max(r.Y, r.Y+r.H)
}

// Contains reports whether the point lies in the closed rectangle. A
// rectangle with zero width or height has no interior, even on its line.
func (r Rect) Contains(x, y float64) bool {
	if r.W == 0 || r.H == 0 {
		return false
	}
	xmin, ymin, xmax, ymax := r.norm()
	return xmin <= x && x <= xmax && ymin <= y && y <= ymax
}

func (r Rect) Bounds() image.Rectangle {
	if r.W == 0 || r.H == 0 {
		return image.Rectangle{}
	}
	return pixelBounds(r.norm())
}

// Circle is inscribed in its bounding box: the radius is half the shorter
// side and the centre is the centre of the box.
type Circle struct {
	X, Y, W, H float64
}

func (c Circle) geometry() (cx, cy, r float64) {
	return c.X + c.W/2, c.Y + c.H/2, math.Min(math.Abs(c.W), math.Abs(c.H)) / 2
}

func (c Circle) Contains(x, y float64) bool {
	cx, cy, r := c.geometry()
	if r == 0 {
		return false
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}

func (c Circle) Bounds() image.Rectangle {
	cx, cy, r := c.geometry()
	if r == 0 {
		return image.Rectangle{}
	}
	return pixelBounds(cx-r, cy-r, cx+r, cy+r)
}

// Ellipse fills its bounding box's inscribed axis-aligned ellipse.
type Ellipse struct {
	X, Y, W, H float64
}

func (e Ellipse) geometry() (cx, cy, rx, ry float64) {
	return e.X + e.W/2, e.Y + e.H/2, math.Abs(e.W) / 2, math.Abs(e.H) / 2
}

func (e Ellipse) Contains(x, y float64) bool {
	cx, cy, rx, ry := e.geometry()
	if rx == 0 || ry == 0 {
		return false
	}
	nx, ny := (x-cx)/rx, (y-cy)/ry
	return nx*nx+ny*ny <= 1
}

func (e Ellipse) Bounds() image.Rectangle {
	cx, cy, rx, ry := e.geometry()
	if rx == 0 || ry == 0 {
		return image.Rectangle{}
	}
	return pixelBounds(cx-rx, cy-ry, cx+rx, cy+ry)
}

// Lasso is a freeform polygon. The last point connects back to the first.
type Lasso struct {
	Points []Point
}

// Contains uses the nonzero winding rule, so self-overlapping loops stay
// filled. Polygons with fewer than three points are empty.
func (l Lasso) Contains(x, y float64) bool {
	n := len(l.Points)
	if n < 3 {
		return false
	}

	winding := 0
	for i := range n {
		a, b := l.Points[i], l.Points[(i+1)%n]
		if a.Y <= y {
			if b.Y > y && cross(a, b, x, y) > 0 {
				winding++
			}
		} else if b.Y <= y && cross(a, b, x, y) < 0 {
			winding--
		}
	}
	return winding != 0
}

// cross is positive when (x, y) is left of the directed edge a->b.
func cross(a, b Point, x, y float64) float64 {
	return (b.X-a.X)*(y-a.Y) - (x-a.X)*(b.Y-a.Y)
}

func (l Lasso) Bounds() image.Rectangle {
	if len(l.Points) < 3 {
		return image.Rectangle{}
	}
	xmin, ymin := l.Points[0].X, l.Points[0].Y
	xmax, ymax := xmin, ymin
	for _, p := range l.Points[1:] {
		xmin, xmax = math.Min(xmin, p.X), math.Max(xmax, p.X)
		ymin, ymax = math.Min(ymin, p.Y), math.Max(ymax, p.Y)
	}
	return pixelBounds(xmin, ymin, xmax, ymax)
}

// pixelBounds returns the pixels whose centres may fall in the closed box.
func pixelBounds(xmin, ymin, xmax, ymax float64) image.Rectangle {
	return image.Rect(
		int(math.Ceil(xmin-0.5)), int(math.Ceil(ymin-0.5)),
		int(math.Floor(xmax-0.5))+1, int(math.Floor(ymax-0.5))+1,
	)
}

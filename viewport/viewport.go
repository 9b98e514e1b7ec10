// Package viewport maps pointer positions on a zoomed and panned view back to
// image coordinates.
package viewport

import "pixelart/geom"

const (
	MinScale  = 0.3
	MaxScale  = 5
	ZoomStep  = 0.1
	baseScale = 1
)

// Transform is a uniform zoom followed by a translation: a point p in image
// space is drawn at p*Scale + Offset relative to the view's top-left corner.
type Transform struct {
	Scale  float64
	Offset geom.Point
}

// Identity returns the unzoomed, unpanned transform.
func Identity() Transform {
	return Transform{Scale: baseScale}
}

// ToImage converts a pointer position in client coordinates to image
// coordinates. origin is the view's top-left corner in client coordinates.
func (t Transform) ToImage(client, origin geom.Point) geom.Point {
	s := t.Scale
	if s == 0 {
		s = baseScale
	}
	return geom.Point{
		X: (client.X - origin.X - t.Offset.X) / s,
		Y: (client.Y - origin.Y - t.Offset.Y) / s,
	}
}

// ToView is the inverse of ToImage.
func (t Transform) ToView(p, origin geom.Point) geom.Point {
	return geom.Point{
		X: p.X*t.Scale + t.Offset.X + origin.X,
		Y: p.Y*t.Scale + t.Offset.Y + origin.Y,
	}
}

// Zoom steps the scale by one notch per unit of delta. Positive deltas (wheel
// down) zoom out. The result is clamped to [MinScale, MaxScale].
func (t Transform) Zoom(delta float64) Transform {
	t.Scale = min(MaxScale, max(MinScale, t.Scale-delta*ZoomStep))
	return t
}

// Pan tracks a drag that moves the view.
type Pan struct {
	anchor geom.Point
}

// StartPan records the grab point so that the offset follows the pointer.
func (t Transform) StartPan(client geom.Point) Pan {
	return Pan{anchor: geom.Point{X: client.X - t.Offset.X, Y: client.Y - t.Offset.Y}}
}

// Move returns t with the offset set so the grab point sits under client.
func (p Pan) Move(t Transform, client geom.Point) Transform {
	t.Offset = geom.Point{X: client.X - p.anchor.X, Y: client.Y - p.anchor.Y}
	return t
}

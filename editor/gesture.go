package editor

import (
	"pixelart/geom"
	"pixelart/mask"
	"pixelart/viewport"
)

// Tool selects the shape drawn by a pointer gesture.
type Tool int

const (
	ToolRect Tool = iota
	ToolCircle
	ToolEllipse
	ToolLasso
)

func (t Tool) String() string {
	switch t {
	case ToolCircle:
		return "circle"
	case ToolEllipse:
		return "ellipse"
	case ToolLasso:
		return "lasso"
	default:
		return "rect"
	}
}

type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
)

// draft is a shape being drawn, in image coordinates.
type draft struct {
	tool   Tool
	mode   mask.Mode
	start  geom.Point
	cur    geom.Point
	points []geom.Point
}

func (d *draft) op() mask.Op {
	var shape geom.Shape
	w, h := d.cur.X-d.start.X, d.cur.Y-d.start.Y
	switch d.tool {
	case ToolCircle:
		shape = geom.Circle{X: d.start.X, Y: d.start.Y, W: w, H: h}
	case ToolEllipse:
		shape = geom.Ellipse{X: d.start.X, Y: d.start.Y, W: w, H: h}
	case ToolLasso:
		shape = geom.Lasso{Points: append([]geom.Point(nil), d.points...)}
	default:
		shape = geom.Rect{X: d.start.X, Y: d.start.Y, W: w, H: h}
	}
	return mask.Op{Shape: shape, Mode: d.mode}
}

// SetTool picks the shape for the next gesture.
func (s *Session) SetTool(t Tool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tool = t
}

// SetMode picks add or remove for the next gesture.
func (s *Session) SetMode(m mask.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
}

func (s *Session) View() viewport.Transform {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Wheel zooms the view by one step per wheel event. Only the sign of delta
// counts, so raw device deltas such as 120 move a single notch.
func (s *Session) Wheel(delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case delta > 0:
		s.view = s.view.Zoom(1)
	case delta < 0:
		s.view = s.view.Zoom(-1)
	}
}

// PointerDown starts panning (middle button) or drawing a shape. client and
// origin are in view coordinates; see viewport.Transform.ToImage.
func (s *Session) PointerDown(client, origin geom.Point, btn Button) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.source == nil {
		return ErrNoImage
	}
	if btn == ButtonMiddle {
		if s.draft != nil {
			return ErrGestureActive
		}
		pan := s.view.StartPan(client)
		s.panning = &pan
		return nil
	}
	if s.draft != nil || s.panning != nil {
		return ErrGestureActive
	}

	p := s.view.ToImage(client, origin)
	s.draft = &draft{tool: s.tool, mode: s.mode, start: p, cur: p}
	if s.tool == ToolLasso {
		s.draft.points = []geom.Point{p}
	}
	return nil
}

// PointerMove updates the pan offset or the shape being drawn.
func (s *Session) PointerMove(client, origin geom.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.panning != nil {
		s.view = s.panning.Move(s.view, client)
		return
	}
	if s.draft == nil {
		return
	}
	p := s.view.ToImage(client, origin)
	s.draft.cur = p
	if s.draft.tool == ToolLasso {
		s.draft.points = append(s.draft.points, p)
	}
}

// PointerUp ends panning, or commits the drawn shape and rebuilds the
// selection. It reports whether a shape was committed.
func (s *Session) PointerUp(client, origin geom.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.panning != nil {
		s.panning = nil
		return false
	}
	if s.draft == nil {
		return false
	}

	d := s.draft
	s.draft = nil
	if d.tool != ToolLasso {
		d.cur = s.view.ToImage(client, origin)
	}
	s.ops = append(s.ops, d.op())
	s.recompile()
	return true
}

// Preview returns the shape currently being drawn, if any.
func (s *Session) Preview() (mask.Op, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return mask.Op{}, false
	}
	return s.draft.op(), true
}

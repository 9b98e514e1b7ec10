package mask

import "image"

// State distinguishes "nothing drawn" from "drawn but nothing left selected".
type State int

const (
	// NoSelection means the shape sequence is empty.
	NoSelection State = iota
	// EmptySelection means shapes exist but no pixel ended up selected.
	EmptySelection
	// Active means at least one pixel is selected.
	Active
)

func (s State) String() string {
	switch s {
	case EmptySelection:
		return "empty"
	case Active:
		return "active"
	default:
		return "none"
	}
}

// Selection is the result of compiling a shape sequence.
type Selection struct {
	state State
	mask  *Mask
}

// State returns which of the three selection states applies.
func (s Selection) State() State { return s.state }

// Mask returns the compiled mask. It is nil for NoSelection.
func (s Selection) Mask() *Mask { return s.mask }

// Selected reports whether pixel (x, y) is selected. It is false everywhere
// for NoSelection and EmptySelection.
func (s Selection) Selected(x, y int) bool {
	return s.state == Active && s.mask.At(x, y)
}

// BoundingBox returns the bounding box of the selected pixels, or an empty
// rectangle unless the selection is Active.
func (s Selection) BoundingBox() image.Rectangle {
	if s.state != Active {
		return image.Rectangle{}
	}
	return s.mask.BoundingBox()
}

// Compile folds ops, in order, into a width x height mask. Each op sets the
// pixels it covers to true (Add) or false (Remove), so later ops win where
// shapes overlap. The mask is always rebuilt from scratch.
func Compile(ops []Op, width, height int) Selection {
	if len(ops) == 0 {
		return Selection{state: NoSelection}
	}

	m := New(width, height)
	for _, op := range ops {
		if op.Shape == nil {
			continue
		}
		m.apply(op)
	}

	state := EmptySelection
	for _, b := range m.bits {
		if b {
			state = Active
			break
		}
	}
	return Selection{state: state, mask: m}
}

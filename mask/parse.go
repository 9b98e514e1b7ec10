package mask

import (
	"fmt"
	"strconv"
	"strings"

	"pixelart/geom"
)

// ParseOp reads an op written as "mode:shape:args".
//
//	add:rect:x,y,w,h
//	remove:circle:x,y,w,h
//	add:ellipse:x,y,w,h
//	add:lasso:x,y;x,y;x,y
func ParseOp(s string) (Op, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return Op{}, fmt.Errorf("invalid selection %q, should be mode:shape:args", s)
	}

	var op Op
	switch parts[0] {
	case "add":
		op.Mode = Add
	case "remove":
		op.Mode = Remove
	default:
		return Op{}, fmt.Errorf("invalid selection mode %q in %q", parts[0], s)
	}

	switch parts[1] {
	case "rect", "circle", "ellipse":
		v, err := parseFloats(parts[2], ",")
		if err != nil {
			return Op{}, fmt.Errorf("invalid %s in %q: %w", parts[1], s, err)
		} else if len(v) != 4 {
			return Op{}, fmt.Errorf("%s needs x,y,w,h in %q, got %d values", parts[1], s, len(v))
		}

		switch parts[1] {
		case "rect":
			op.Shape = geom.Rect{X: v[0], Y: v[1], W: v[2], H: v[3]}
		case "circle":
			op.Shape = geom.Circle{X: v[0], Y: v[1], W: v[2], H: v[3]}
		default:
			op.Shape = geom.Ellipse{X: v[0], Y: v[1], W: v[2], H: v[3]}
		}
	case "lasso":
		var pts []geom.Point
		for i, pair := range strings.Split(parts[2], ";") {
			v, err := parseFloats(pair, ",")
			if err != nil {
				return Op{}, fmt.Errorf("invalid lasso point %d in %q: %w", i, s, err)
			} else if len(v) != 2 {
				return Op{}, fmt.Errorf("lasso point %d in %q should be x,y", i, s)
			}
			pts = append(pts, geom.Point{X: v[0], Y: v[1]})
		}
		op.Shape = geom.Lasso{Points: pts}
	default:
		return Op{}, fmt.Errorf("unsupported shape %q in %q", parts[1], s)
	}

	return op, nil
}

func parseFloats(s, sep string) ([]float64, error) {
	fields := strings.Split(s, sep)
	res := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

package geometry

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// XY is a point on the drawing surface. Y grows downward.
type XY struct {
	X, Y float64
}

// Add returns the point offset by d along heading rad.
func (xy XY) Add(rad, d float64) XY {
	return XY{
		X: xy.X + math.Cos(rad)*d,
		Y: xy.Y + math.Sin(rad)*d,
	}
}

func (xy XY) Finite() bool {
	return !math.IsNaN(xy.X) && !math.IsInf(xy.X, 0) &&
		!math.IsNaN(xy.Y) && !math.IsInf(xy.Y, 0)
}

// A Segment is one branch of a tree, ready to be stroked.
type Segment struct {
	From, To XY

	Color     colorful.Color
	Thickness float64

	// Depth is the remaining recursion budget the segment was generated at.
	Depth int
}

func (s Segment) Length() float64 {
	return math.Hypot(s.To.X-s.From.X, s.To.Y-s.From.Y)
}

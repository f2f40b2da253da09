package tree

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/willbeason/fractal-tree/pkg/geometry"
)

const (
	// StartHeading points straight up on a canvas whose y axis grows downward.
	StartHeading = -90.0

	DefaultLengthUnit   = 10.0
	DefaultMinThickness = 1.0
)

var (
	Brown       = mustHex("#a52a2a")
	ForestGreen = mustHex("#228b22")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Parameters describe one generation pass. They are copied into every pass,
// so changing a caller's Parameters never affects a pass already in flight.
type Parameters struct {
	// BranchAngle is how far, in degrees, each child deviates from its parent's heading.
	// The left child turns by -BranchAngle and the right child by +BranchAngle.
	BranchAngle float64

	// MaxDepth is the depth a root branch is drawn at. Color and thickness
	// are scaled by depth/MaxDepth.
	MaxDepth int

	// MaxThickness is added to MinThickness at the root.
	MaxThickness float64

	// LengthUnit is the length of a branch per unit of remaining depth.
	LengthUnit float64

	// MinThickness is the thickness approached at the tips.
	MinThickness float64

	// Trunk is the color at the root and Leaf the color approached at the tips.
	Trunk, Leaf colorful.Color
}

// NewParameters returns Parameters with the default scale constants and colors.
func NewParameters(angle float64, maxDepth int, maxThickness float64) Parameters {
	return Parameters{
		BranchAngle:  angle,
		MaxDepth:     maxDepth,
		MaxThickness: maxThickness,
		LengthUnit:   DefaultLengthUnit,
		MinThickness: DefaultMinThickness,
		Trunk:        Brown,
		Leaf:         ForestGreen,
	}
}

func (p Parameters) finite() bool {
	for _, f := range []float64{p.BranchAngle, p.MaxThickness, p.LengthUnit, p.MinThickness} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Color returns the color of a branch drawn at depth.
func (p Parameters) Color(depth int) colorful.Color {
	t := float64(depth) / float64(p.MaxDepth)
	return p.Trunk.BlendRgb(p.Leaf, 1.0-t)
}

// Thickness returns the stroke width of a branch drawn at depth.
func (p Parameters) Thickness(depth int) float64 {
	t := float64(depth) / float64(p.MaxDepth)
	return t*p.MaxThickness + p.MinThickness
}

// A DrawRequest is the entry point of one full pass.
type DrawRequest struct {
	Origin geometry.XY
	Depth  int
}

// A Sink receives segments in generation order.
type Sink func(geometry.Segment)

// Generate emits every branch of the tree described by req and p to sink.
//
// Invalid input never panics: depth <= 0, MaxDepth <= 0 or non-finite values
// produce no segments.
func Generate(req DrawRequest, p Parameters, sink Sink) {
	if req.Depth <= 0 || p.MaxDepth <= 0 || !p.finite() || !req.Origin.Finite() {
		return
	}

	branch(req.Origin, StartHeading, req.Depth, p, sink)
}

func branch(from geometry.XY, heading float64, depth int, p Parameters, sink Sink) {
	if depth == 0 {
		return
	}

	rad := heading * math.Pi / 180.0
	to := from.Add(rad, float64(depth)*p.LengthUnit)

	sink(geometry.Segment{
		From:      from,
		To:        to,
		Color:     p.Color(depth),
		Thickness: p.Thickness(depth),
		Depth:     depth,
	})

	branch(to, heading-p.BranchAngle, depth-1, p, sink)
	branch(to, heading+p.BranchAngle, depth-1, p, sink)
}

// Segments collects the output of Generate.
func Segments(req DrawRequest, p Parameters) []geometry.Segment {
	var result []geometry.Segment
	if n := Count(req.Depth); n > 0 && n < 1<<22 {
		result = make([]geometry.Segment, 0, n)
	}

	Generate(req, p, func(s geometry.Segment) {
		result = append(result, s)
	})

	return result
}

// Count is the number of segments a pass at depth produces.
func Count(depth int) int {
	if depth <= 0 {
		return 0
	}
	if depth >= 62 {
		return math.MaxInt
	}
	return 1<<depth - 1
}

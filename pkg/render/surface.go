package render

import (
	"github.com/willbeason/fractal-tree/pkg/geometry"
	"github.com/willbeason/fractal-tree/pkg/tree"
)

// A Surface is somewhere segments can be stroked.
type Surface interface {
	// Clear erases everything drawn since the last Clear.
	Clear()
	// Stroke draws a single segment.
	Stroke(geometry.Segment)
}

// A Flusher is a Surface that needs to be told when a frame is complete.
type Flusher interface {
	Flush() error
}

// Redraw clears s and draws one full pass onto it, returning the number of
// segments drawn.
func Redraw(s Surface, req tree.DrawRequest, p tree.Parameters) (int, error) {
	s.Clear()

	n := 0
	tree.Generate(req, p, func(segment geometry.Segment) {
		s.Stroke(segment)
		n++
	})

	if f, ok := s.(Flusher); ok {
		return n, f.Flush()
	}
	return n, nil
}

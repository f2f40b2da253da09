// Package session connects user input to a drawing surface. It owns the
// surface, so manual draws and growth ticks never write to it at the same time.
package session

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/willbeason/fractal-tree/pkg/geometry"
	"github.com/willbeason/fractal-tree/pkg/growth"
	"github.com/willbeason/fractal-tree/pkg/render"
	"github.com/willbeason/fractal-tree/pkg/tree"
)

// A Template turns an angle and depth into the Parameters for one pass.
type Template func(angle float64, maxDepth int) tree.Parameters

type Session struct {
	origin   geometry.XY
	template Template
	log      logrus.FieldLogger

	mu      sync.Mutex
	surface render.Surface
	depth   int
	angle   float64
	drawn   int
	lastErr error

	growth *growth.Controller
}

type Options struct {
	Origin   geometry.XY
	Template Template
	Log      logrus.FieldLogger

	// GrowthOptions configure the growth Controller, for example its interval.
	GrowthOptions []growth.Option
}

func New(surface render.Surface, opts Options) *Session {
	s := &Session{
		origin:   opts.Origin,
		template: opts.Template,
		log:      opts.Log,
		surface:  surface,
	}
	if s.template == nil {
		s.template = func(angle float64, maxDepth int) tree.Parameters {
			return tree.NewParameters(angle, maxDepth, 0)
		}
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}

	growthOpts := append([]growth.Option{growth.WithLogger(s.log)}, opts.GrowthOptions...)
	s.growth = growth.NewController(growth.PainterFunc(s.paint), growthOpts...)

	return s
}

// DrawOnce draws a full tree at depth, stopping any growth animation first.
// Invalid input leaves the surface and any animation untouched.
func (s *Session) DrawOnce(depth int, angle float64) error {
	err := tree.ValidateDepth(depth)
	if err == nil {
		err = tree.ValidateAngle(angle)
	}
	if err != nil {
		s.reject(err)
		return err
	}

	s.growth.Stop()
	s.paint(depth, s.template(angle, depth))
	return s.Err()
}

// AnimateGrowth starts growing a tree from depth 1 to target, replacing any
// animation already running.
func (s *Session) AnimateGrowth(target int, angle float64) error {
	err := s.growth.Start(target, s.template(angle, target))
	if err != nil {
		s.reject(err)
		return err
	}
	return nil
}

// Stop cancels a running growth animation.
func (s *Session) Stop() {
	s.growth.Stop()
}

func (s *Session) Growth() *growth.Controller {
	return s.growth
}

// Do calls fn with exclusive access to the surface.
func (s *Session) Do(fn func(render.Surface)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.surface)
}

// Status describes the most recent frame.
type Status struct {
	Depth    int
	Angle    float64
	Segments int
	Growth   growth.State

	// Target is the depth the most recent growth run grows toward.
	Target int
}

func (s *Session) Status() Status {
	state, target := s.growth.State(), s.growth.TargetDepth()

	s.mu.Lock()
	defer s.mu.Unlock()

	return Status{Depth: s.depth, Angle: s.angle, Segments: s.drawn, Growth: state, Target: target}
}

// Err returns the error from the most recent frame, if the surface failed to flush it.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastErr
}

func (s *Session) paint(depth int, p tree.Parameters) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := render.Redraw(s.surface, tree.DrawRequest{Origin: s.origin, Depth: depth}, p)
	s.depth, s.angle, s.drawn, s.lastErr = depth, p.BranchAngle, n, err
	if err != nil {
		s.log.WithError(err).Error("flushing frame")
		return
	}

	s.log.WithFields(logrus.Fields{
		"depth":    depth,
		"angle":    p.BranchAngle,
		"segments": n,
	}).Debug("drew tree")
}

func (s *Session) reject(err error) {
	if errors.Is(err, tree.ErrInvalidParameter) {
		s.log.WithError(err).Warn("rejected parameters")
	}
}

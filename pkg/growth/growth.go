package growth

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/willbeason/fractal-tree/pkg/tree"
)

// DefaultInterval is the time between growth ticks.
const DefaultInterval = 200 * time.Millisecond

type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	}
	return "unknown"
}

// A Painter clears its surface and draws a full tree at depth.
type Painter interface {
	Paint(depth int, params tree.Parameters)
}

// PainterFunc adapts a function to a Painter.
type PainterFunc func(depth int, params tree.Parameters)

func (f PainterFunc) Paint(depth int, params tree.Parameters) {
	f(depth, params)
}

// A Controller animates a tree by redrawing it at depths 1 through a target depth.
//
// At most one run is active. Start and Stop invalidate the previous run, after
// which none of its ticks reach the Painter.
type Controller struct {
	painter  Painter
	interval time.Duration
	log      logrus.FieldLogger

	mu      sync.Mutex
	state   State
	run     uint64
	target  int
	current int
	params  tree.Parameters
	cancel  context.CancelFunc
	done    chan struct{}
}

type Option func(*Controller)

// WithInterval makes the Controller tick itself every d. With d <= 0 the
// caller drives the Controller through Tick.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		c.interval = d
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

func NewController(painter Painter, opts ...Option) *Controller {
	c := &Controller{
		painter: painter,
		log:     logrus.StandardLogger(),
		done:    closed(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins a new run toward target, cancelling any run in progress.
// Invalid parameters leave the current run untouched.
func (c *Controller) Start(target int, params tree.Parameters) error {
	if target < 1 {
		return errors.Wrapf(tree.ErrInvalidParameter, "target depth must be at least 1, got %d", target)
	}
	err := tree.ValidateGrowthAngle(params.BranchAngle)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()

	c.run++
	c.state = Running
	c.target = target
	c.current = 1
	c.params = params
	c.done = make(chan struct{})

	c.log.WithFields(logrus.Fields{
		"run":    c.run,
		"target": target,
		"angle":  params.BranchAngle,
	}).Info("growth started")

	if c.interval > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		c.cancel = cancel
		go c.drive(ctx, c.run)
	}

	return nil
}

// Tick advances the current run by one step. It reports whether the
// Controller is still running afterwards.
func (c *Controller) Tick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.tickLocked(c.run)
}

// Stop cancels the current run, if any.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Running {
		c.log.WithField("run", c.run).Info("growth stopped")
	}
	c.stopLocked()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// CurrentDepth is the depth the next tick will draw.
func (c *Controller) CurrentDepth() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.current
}

func (c *Controller) TargetDepth() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.target
}

// Done is closed when the current run completes or is cancelled.
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.done
}

// Wait blocks until the current run ends or ctx is done.
func (c *Controller) Wait(ctx context.Context) error {
	select {
	case <-c.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Controller) drive(ctx context.Context, run uint64) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !c.tick(run) {
				return
			}
		}
	}
}

func (c *Controller) tick(run uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.tickLocked(run)
}

func (c *Controller) tickLocked(run uint64) bool {
	// A ticker from a cancelled run may still deliver once.
	if run != c.run || c.state != Running {
		return false
	}

	if c.current > c.target {
		c.log.WithField("run", c.run).Info("growth complete")
		c.stopLocked()
		return false
	}

	c.log.WithFields(logrus.Fields{
		"run":   c.run,
		"depth": c.current,
	}).Debug("growth tick")
	c.painter.Paint(c.current, c.params)
	c.current++

	return true
}

func (c *Controller) stopLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.state == Running {
		close(c.done)
	}
	c.state = Idle
}

func closed() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

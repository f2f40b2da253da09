package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/willbeason/fractal-tree/pkg/config"
	"github.com/willbeason/fractal-tree/pkg/growth"
	"github.com/willbeason/fractal-tree/pkg/render"
	"github.com/willbeason/fractal-tree/pkg/session"
)

const terminalHelp = "[tab] field [arrows] depth/angle [enter|d] draw [F2|a] grow [esc|s] stop [q] quit"

// statusTerminal redraws the status row with every frame.
type statusTerminal struct {
	*render.Terminal

	mu   sync.Mutex
	line string
}

func (t *statusTerminal) SetLine(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.line = line
}

func (t *statusTerminal) Flush() error {
	t.mu.Lock()
	line := t.line
	t.mu.Unlock()

	t.Status(line)
	return t.Terminal.Flush()
}

// controls applies key presses to the form and session.
type controls struct {
	session *session.Session
	form    *session.Form
	message string
}

func (c *controls) submit(action func(int, float64) error) {
	depth, angle, err := c.form.Values()
	if err == nil {
		err = action(depth, angle)
	}
	c.message = terminalHelp
	if err != nil {
		c.message = err.Error()
	}
}

// key handles ev and reports whether the user asked to quit.
func (c *controls) key(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyEscape:
		c.session.Stop()
		c.message = terminalHelp
	case tcell.KeyTab:
		c.form.Next()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		c.form.Backspace()
	case tcell.KeyUp:
		c.form.Adjust(1, 0)
	case tcell.KeyDown:
		c.form.Adjust(-1, 0)
	case tcell.KeyRight:
		c.form.Adjust(0, 1)
	case tcell.KeyLeft:
		c.form.Adjust(0, -1)
	case tcell.KeyEnter:
		c.submit(c.session.DrawOnce)
	case tcell.KeyF2:
		c.submit(c.session.AnimateGrowth)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'd':
			c.submit(c.session.DrawOnce)
		case 'a':
			c.submit(c.session.AnimateGrowth)
		case 's':
			c.session.Stop()
			c.message = terminalHelp
		default:
			c.form.Type(ev.Rune())
		}
	}
	return false
}

func (c *controls) String() string {
	return fmt.Sprintf("%s | %s", c.form, c.message)
}

func runTerminal(ctx context.Context, cfg config.Config, log logrus.FieldLogger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "opening terminal")
	}
	err = screen.Init()
	if err != nil {
		return errors.Wrap(err, "initializing terminal")
	}
	defer screen.Fini()

	return terminalLoop(ctx, screen, cfg, log)
}

func terminalLoop(ctx context.Context, screen tcell.Screen, cfg config.Config, log logrus.FieldLogger) error {
	term := &statusTerminal{Terminal: render.NewTerminal(screen, float64(cfg.Width), float64(cfg.Height))}

	s := newSession(cfg, term, log, growth.WithInterval(cfg.Interval))
	defer s.Stop()

	c := &controls{session: s, form: session.NewForm(cfg.Depth, cfg.Angle), message: terminalHelp}
	refresh := func(render.Surface) {
		term.SetLine(c.String())
		_ = term.Flush()
	}

	err := start(s, cfg)
	if err != nil {
		c.message = err.Error()
	}
	s.Do(refresh)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
			if st := s.Status(); st.Growth == growth.Idle && st.Depth > 0 {
				_ = s.DrawOnce(st.Depth, st.Angle)
			}
		case *tcell.EventKey:
			if c.key(ev) {
				return nil
			}
		}

		s.Do(refresh)
	}
}

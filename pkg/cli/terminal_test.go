package cli

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willbeason/fractal-tree/pkg/config"
	"github.com/willbeason/fractal-tree/pkg/growth"
	"github.com/willbeason/fractal-tree/pkg/session"
)

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func smallConfig(t *testing.T) config.Config {
	t.Helper()
	isolate(t)

	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)
	cfg.Width, cfg.Height = 80, 60
	cfg.Depth = 3
	return cfg
}

func press(c *controls, keys ...*tcell.EventKey) bool {
	quit := false
	for _, k := range keys {
		quit = c.key(k)
	}
	return quit
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestControls(t *testing.T) {
	cfg := smallConfig(t)
	s := newSession(cfg, newRaster(cfg), quietLogger())
	c := &controls{session: s, form: session.NewForm(3, 30), message: terminalHelp}

	assert.False(t, press(c, key(tcell.KeyUp), runeKey('d')))
	assert.Equal(t, "4", c.form.Depth)
	assert.Equal(t, session.Status{Depth: 4, Angle: 30, Segments: 15, Growth: growth.Idle}, s.Status())

	press(c, key(tcell.KeyRight), key(tcell.KeyRight), runeKey('a'))
	assert.Equal(t, "40", c.form.Angle)
	st := s.Status()
	assert.Equal(t, growth.Running, st.Growth)
	assert.Equal(t, 4, st.Target)

	press(c, runeKey('s'))
	assert.Equal(t, growth.Idle, s.Status().Growth)

	press(c, key(tcell.KeyDown), key(tcell.KeyLeft), key(tcell.KeyEnter))
	assert.Equal(t, 3, s.Status().Depth)
	assert.Equal(t, 35.0, s.Status().Angle)

	press(c, key(tcell.KeyTab), runeKey('1'))
	assert.Equal(t, "351", c.form.Angle)
	press(c, key(tcell.KeyF2))
	assert.Contains(t, c.message, "between 0 and 90")
	assert.Equal(t, growth.Idle, s.Status().Growth)

	for range c.form.Angle {
		press(c, key(tcell.KeyBackspace2))
	}
	press(c, runeKey('d'))
	assert.Contains(t, c.message, "please enter a number")
	assert.Equal(t, 3, s.Status().Depth, "the last frame is kept")

	press(c, key(tcell.KeyEscape))
	assert.Equal(t, terminalHelp, c.message)

	assert.True(t, press(c, runeKey('q')))
	assert.True(t, press(c, key(tcell.KeyCtrlC)))
}

func TestTerminalLoop(t *testing.T) {
	cfg := smallConfig(t)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(120, 30)

	screen.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'd', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	require.NoError(t, terminalLoop(context.Background(), screen, cfg, quietLogger()))

	var status strings.Builder
	for x := 0; x < 120; x++ {
		mainc, _, _, _ := screen.GetContent(x, 29)
		status.WriteRune(mainc)
	}
	assert.Contains(t, status.String(), "Depth: 4")
	assert.Contains(t, status.String(), "[q] quit")
}

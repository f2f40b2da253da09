package window

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/willbeason/fractal-tree/pkg/growth"
	"github.com/willbeason/fractal-tree/pkg/render"
	"github.com/willbeason/fractal-tree/pkg/session"
)

const help = "[tab] field  [arrows] depth/angle  [enter|d] draw  [F2|a] grow  [esc|s] stop  [q] quit"

// Run opens a desktop window showing raster and blocks until it closes.
// The session must draw onto raster.
func Run(title string, s *session.Session, raster *render.Raster, form *session.Form) error {
	b := raster.Bounds()

	g := &game{
		session: s,
		raster:  raster,
		form:    form,
		message: help,
	}

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(b.Dx(), b.Dy())
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type game struct {
	session *session.Session
	raster  *render.Raster
	form    *session.Form
	message string

	frame *ebiten.Image
	chars []rune
}

func (g *game) Update() error {
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		g.form.Type(r)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.form.Next()
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		g.form.Backspace()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.form.Adjust(1, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		g.form.Adjust(-1, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.form.Adjust(0, 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.form.Adjust(0, -1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.submit(g.session.DrawOnce)
	case inpututil.IsKeyJustPressed(ebiten.KeyF2), inpututil.IsKeyJustPressed(ebiten.KeyA):
		g.submit(g.session.AnimateGrowth)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.session.Stop()
		g.message = help
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	}

	return nil
}

// submit reports errors on the status line; the current frame is kept.
func (g *game) submit(action func(int, float64) error) {
	depth, angle, err := g.form.Values()
	if err == nil {
		err = action(depth, angle)
	}
	if err != nil {
		g.message = err.Error()
		return
	}
	g.message = help
}

func (g *game) Draw(screen *ebiten.Image) {
	b := g.raster.Bounds()
	if g.frame == nil {
		g.frame = ebiten.NewImage(b.Dx(), b.Dy())
	}

	g.session.Do(func(render.Surface) {
		g.frame.WritePixels(g.raster.Image().Pix)
	})
	screen.DrawImage(g.frame, nil)

	st := g.session.Status()
	progress := fmt.Sprintf("depth %d", st.Depth)
	if st.Growth == growth.Running {
		progress = fmt.Sprintf("depth %d of %d", st.Depth, st.Target)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s\n%s\ndrawn: %s, %d branches (%s)",
		g.form, g.message, progress, st.Segments, st.Growth))
}

func (g *game) Layout(_, _ int) (int, int) {
	b := g.raster.Bounds()
	return b.Dx(), b.Dy()
}

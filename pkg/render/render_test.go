package render

import (
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willbeason/fractal-tree/pkg/geometry"
	"github.com/willbeason/fractal-tree/pkg/tree"
)

var white = colorful.Color{R: 1, G: 1, B: 1}

// recorder keeps the segments of the most recent frame.
type recorder struct {
	Segments []geometry.Segment
	Clears   int
}

func (r *recorder) Clear() {
	r.Segments = r.Segments[:0]
	r.Clears++
}

func (r *recorder) Stroke(s geometry.Segment) {
	r.Segments = append(r.Segments, s)
}

func bottomCenter(width, height int, depth int) tree.DrawRequest {
	return tree.DrawRequest{
		Origin: geometry.XY{X: float64(width) / 2, Y: float64(height)},
		Depth:  depth,
	}
}

func TestRedraw_Recorder(t *testing.T) {
	r := &recorder{}

	n, err := Redraw(r, bottomCenter(100, 100, 4), tree.NewParameters(30, 4, 5))
	require.NoError(t, err)
	assert.Equal(t, 15, n)
	assert.Len(t, r.Segments, 15)

	n, err = Redraw(r, bottomCenter(100, 100, 2), tree.NewParameters(30, 2, 5))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Len(t, r.Segments, 3, "redraw does not accumulate")
	assert.Equal(t, 2, r.Clears)
}

func TestRaster_Stroke(t *testing.T) {
	r := NewRaster(100, 100, white)

	_, err := Redraw(r, bottomCenter(100, 100, 3), tree.NewParameters(30, 3, 6))
	require.NoError(t, err)

	// The trunk runs from (50, 100) to (50, 70).
	assert.Equal(t, RGBA(tree.Brown), r.Image().RGBAAt(50, 85))
	assert.Equal(t, RGBA(white), r.Image().RGBAAt(5, 5))

	r.Clear()
	assert.Equal(t, RGBA(white), r.Image().RGBAAt(50, 85))
}

func TestRaster_ZeroThickness(t *testing.T) {
	r := NewRaster(20, 20, white)
	before := append([]uint8(nil), r.Image().Pix...)

	r.Stroke(geometry.Segment{From: geometry.XY{X: 1, Y: 1}, To: geometry.XY{X: 19, Y: 19}, Color: tree.Brown})
	assert.Equal(t, before, r.Image().Pix)
}

func TestRaster_WritePNG(t *testing.T) {
	r := NewRaster(64, 48, white)
	_, err := Redraw(r, bottomCenter(64, 48, 3), tree.NewParameters(30, 3, 2))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "tree.png")
	require.NoError(t, r.WritePNG(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestAnimation_WriteGIF(t *testing.T) {
	a := NewAnimation(NewRaster(40, 40, white), 200*time.Millisecond)
	path := filepath.Join(t.TempDir(), "tree.gif")

	assert.Error(t, a.WriteGIF(path))

	for depth := 1; depth <= 3; depth++ {
		_, err := Redraw(a, bottomCenter(40, 40, depth), tree.NewParameters(30, 3, 2))
		require.NoError(t, err)
	}
	assert.Equal(t, 3, a.Frames())

	require.NoError(t, a.WriteGIF(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, decoded.Image, 3)
	assert.Equal(t, []int{20, 20, 120}, decoded.Delay)
}

func TestTerminal_Stroke(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 21)

	term := NewTerminal(screen, 400, 200)
	_, err := Redraw(term, bottomCenter(400, 200, 1), tree.NewParameters(30, 1, 10))
	require.NoError(t, err)

	// A single trunk of length 10 covers the bottom drawable row in column 20.
	mainc, _, style, _ := screen.GetContent(20, 19)
	assert.Equal(t, Glyph(11), mainc)

	fg, _, _ := style.Decompose()
	c := RGBA(tree.Brown)
	assert.Equal(t, tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)), fg)

	mainc, _, _, _ = screen.GetContent(0, 0)
	assert.Equal(t, ' ', mainc)

	term.Status("depth 1")
	mainc, _, _, _ = screen.GetContent(0, 20)
	assert.Equal(t, 'd', mainc)
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, '░', Glyph(1))
	assert.Equal(t, '▒', Glyph(2))
	assert.Equal(t, '▓', Glyph(4))
	assert.Equal(t, '█', Glyph(11))
}

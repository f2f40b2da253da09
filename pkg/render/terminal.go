package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/willbeason/fractal-tree/pkg/geometry"
)

// Terminal strokes segments onto a tcell screen, scaling canvas
// coordinates down to character cells.
type Terminal struct {
	Screen tcell.Screen

	// Width and Height are the canvas dimensions mapped onto the screen.
	Width, Height float64

	// Reserved is the number of rows left free at the bottom of the screen.
	Reserved int
}

func NewTerminal(screen tcell.Screen, width, height float64) *Terminal {
	return &Terminal{Screen: screen, Width: width, Height: height, Reserved: 1}
}

func (t *Terminal) Clear() {
	t.Screen.Clear()
}

func (t *Terminal) scale() (float64, float64) {
	cols, rows := t.Screen.Size()
	rows -= t.Reserved
	if cols <= 0 || rows <= 0 || t.Width <= 0 || t.Height <= 0 {
		return 0, 0
	}
	return float64(cols) / t.Width, float64(rows) / t.Height
}

// Cell returns the screen cell containing canvas point xy.
func (t *Terminal) Cell(xy geometry.XY) (int, int) {
	sx, sy := t.scale()
	col := int(math.Floor(xy.X * sx))
	row := int(math.Floor(xy.Y * sy))

	// The bottom edge of the canvas belongs to the last row.
	_, rows := t.Screen.Size()
	if last := rows - t.Reserved - 1; row > last && xy.Y <= t.Height {
		row = last
	}
	return col, row
}

// Glyph picks a block by stroke width.
func Glyph(thickness float64) rune {
	switch {
	case thickness >= 6:
		return '█'
	case thickness >= 3:
		return '▓'
	case thickness >= 1.5:
		return '▒'
	default:
		return '░'
	}
}

func (t *Terminal) Stroke(s geometry.Segment) {
	sx, _ := t.scale()
	if sx == 0 {
		return
	}

	c := RGBA(s.Color)
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	glyph := Glyph(s.Thickness)

	x0, y0 := t.Cell(s.From)
	x1, y1 := t.Cell(s.To)
	steps := max(abs(x1-x0), abs(y1-y0))

	cols, rows := t.Screen.Size()
	rows -= t.Reserved
	for i := 0; i <= steps; i++ {
		x, y := x0, y0
		if steps > 0 {
			f := float64(i) / float64(steps)
			x = x0 + int(math.Round(f*float64(x1-x0)))
			y = y0 + int(math.Round(f*float64(y1-y0)))
		}
		if x < 0 || y < 0 || x >= cols || y >= rows {
			continue
		}
		t.Screen.SetContent(x, y, glyph, nil, style)
	}
}

// Status writes msg on the reserved bottom row.
func (t *Terminal) Status(msg string) {
	if t.Reserved < 1 {
		return
	}

	cols, rows := t.Screen.Size()
	y := rows - 1
	style := tcell.StyleDefault.Reverse(true)
	runes := []rune(msg)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		t.Screen.SetContent(x, y, r, nil, style)
	}
}

func (t *Terminal) Flush() error {
	t.Screen.Show()
	return nil
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

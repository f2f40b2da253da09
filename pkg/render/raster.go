package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"github.com/willbeason/fractal-tree/pkg/geometry"
	"golang.org/x/image/vector"
)

// Raster strokes segments onto an in-memory RGBA image.
type Raster struct {
	Background color.Color

	img *image.RGBA
	z   *vector.Rasterizer
}

func NewRaster(width, height int, background colorful.Color) *Raster {
	r := &Raster{
		Background: RGBA(background),
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		z:          vector.NewRasterizer(width, height),
	}
	r.Clear()
	return r
}

// RGBA converts c to an opaque 8-bit color.
func RGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func (r *Raster) Image() *image.RGBA {
	return r.img
}

func (r *Raster) Bounds() image.Rectangle {
	return r.img.Bounds()
}

func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.Background), image.Point{}, draw.Src)
}

// Stroke fills the rectangle covering s at its thickness. The ends are
// extended by half the thickness so that consecutive branches join.
func (r *Raster) Stroke(s geometry.Segment) {
	half := s.Thickness / 2
	if !(half > 0) {
		return
	}

	ux, uy := 1.0, 0.0
	if length := s.Length(); length > 0 {
		ux, uy = (s.To.X-s.From.X)/length, (s.To.Y-s.From.Y)/length
	}

	// Along-segment and perpendicular offsets.
	ax, ay := ux*half, uy*half
	px, py := -uy*half, ux*half

	x0, y0 := s.From.X-ax, s.From.Y-ay
	x1, y1 := s.To.X+ax, s.To.Y+ay

	b := r.img.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
	r.z.DrawOp = draw.Over
	r.z.MoveTo(float32(x0+px), float32(y0+py))
	r.z.LineTo(float32(x1+px), float32(y1+py))
	r.z.LineTo(float32(x1-px), float32(y1-py))
	r.z.LineTo(float32(x0-px), float32(y0-py))
	r.z.ClosePath()
	r.z.Draw(r.img, b, image.NewUniform(RGBA(s.Color)), image.Point{})
}

// WritePNG writes the current frame to path.
func (r *Raster) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}

	err = png.Encode(f, r.img)
	if err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "encoding %s", path)
	}

	return f.Close()
}

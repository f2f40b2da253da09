package render

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Animation records a frame of its Raster every time a redraw completes.
type Animation struct {
	*Raster

	// Delay is how long each frame is shown.
	Delay time.Duration

	frames []*image.Paletted
}

func NewAnimation(r *Raster, delay time.Duration) *Animation {
	return &Animation{Raster: r, Delay: delay}
}

func (a *Animation) Flush() error {
	b := a.Raster.Bounds()
	frame := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(frame, b, a.Raster.Image(), b.Min)
	a.frames = append(a.frames, frame)
	return nil
}

func (a *Animation) Frames() int {
	return len(a.frames)
}

// WriteGIF writes every recorded frame to path. The last frame is held
// for a second before the animation loops.
func (a *Animation) WriteGIF(path string) error {
	if len(a.frames) == 0 {
		return errors.Errorf("no frames recorded for %s", path)
	}

	delay := int(a.Delay / (10 * time.Millisecond))
	anim := &gif.GIF{}
	for i, frame := range a.frames {
		d := delay
		if i == len(a.frames)-1 {
			d += 100
		}
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, d)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}

	err = gif.EncodeAll(f, anim)
	if err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "encoding %s", path)
	}

	return f.Close()
}

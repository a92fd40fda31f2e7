package render

import (
	"fmt"
	"image"
	"image/color/palette"
	stddraw "image/draw"
	"image/gif"
	"os"

	"github.com/zeu5/rl-replay/rl"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// GIF renders the ordered frame sequence of a rollout into an animated
// gif at the given path. Every state must implement Frame.
func GIF(path string, frames []rl.State, opts Options) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to render")
	}
	delay := opts.DelayMS / 10 // gif delays are in 100ths of a second
	if delay < 1 {
		delay = 1
	}

	anim := &gif.GIF{
		Image: make([]*image.Paletted, 0, len(frames)),
		Delay: make([]int, 0, len(frames)),
	}
	for i, state := range frames {
		img, err := rasterize(state, opts)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		paletted := image.NewPaletted(img.Bounds(), palette.Plan9)
		stddraw.FloydSteinberg.Draw(paletted, img.Bounds(), img, image.Point{})
		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, anim); err != nil {
		return fmt.Errorf("encoding gif: %w", err)
	}
	return nil
}

// rasterize draws a single state onto a fresh image canvas
func rasterize(state rl.State, opts Options) (image.Image, error) {
	frame, ok := state.(Frame)
	if !ok {
		return nil, fmt.Errorf("state %s is not renderable", state.Hash())
	}
	c := vgimg.New(opts.Width, opts.Height)
	frame.Draw(draw.New(c))
	return c.Image(), nil
}

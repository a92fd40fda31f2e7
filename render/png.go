package render

import (
	"fmt"
	"os"

	"github.com/zeu5/rl-replay/rl"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// PNG renders a single state, typically the final frame of a rollout,
// as a static image at the given path
func PNG(path string, state rl.State, opts Options) error {
	frame, ok := state.(Frame)
	if !ok {
		return fmt.Errorf("state %s is not renderable", state.Hash())
	}
	c := vgimg.New(opts.Width, opts.Height)
	frame.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("writing png: %w", err)
	}
	return nil
}

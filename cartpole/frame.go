package cartpole

import (
	"image/color"
	"math"

	"github.com/zeu5/rl-replay/render"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	trackColor = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	cartColor  = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	poleColor  = color.RGBA{R: 200, G: 120, B: 40, A: 255}
)

var _ render.Frame = &State{}

// Draw renders the track, the cart and the pole
func (s *State) Draw(dc draw.Canvas) {
	size := dc.Size()
	trackY := dc.Min.Y + size.Y/4
	cartW := size.X / 10
	cartH := size.Y / 20
	poleLen := size.Y / 3

	// cart position scaled so the track spans [-xThreshold, xThreshold]
	cartX := dc.Min.X + size.X/2 + vg.Length(s.X/xThreshold)*size.X/2

	dc.SetLineWidth(vg.Points(2))
	dc.SetColor(trackColor)
	render.StrokeLine(dc,
		vg.Point{X: dc.Min.X, Y: trackY},
		vg.Point{X: dc.Min.X + size.X, Y: trackY})

	dc.SetColor(cartColor)
	render.FillRect(dc,
		vg.Point{X: cartX - cartW/2, Y: trackY - cartH/2},
		vg.Point{X: cartX + cartW/2, Y: trackY + cartH/2})

	tipX := cartX + vg.Length(math.Sin(s.Theta))*poleLen
	tipY := trackY + vg.Length(math.Cos(s.Theta))*poleLen
	dc.SetLineWidth(vg.Points(3))
	dc.SetColor(poleColor)
	render.StrokeLine(dc, vg.Point{X: cartX, Y: trackY}, vg.Point{X: tipX, Y: tipY})
}

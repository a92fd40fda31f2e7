package gridworld

import (
	"image/color"

	"github.com/zeu5/rl-replay/render"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	gridColor  = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	doorColor  = color.RGBA{R: 70, G: 130, B: 220, A: 255}
	goalColor  = color.RGBA{R: 60, G: 180, B: 90, A: 255}
	agentColor = color.RGBA{R: 220, G: 60, B: 60, A: 255}
)

var _ render.Frame = &Position{}

// Draw renders the room the agent is currently in: grid lines, door
// cells, the goal when present in this room, and the agent itself
func (p *Position) Draw(dc draw.Canvas) {
	if p.layout == nil {
		return
	}
	l := p.layout
	size := dc.Size()
	cellW := size.X / vg.Length(l.width)
	cellH := size.Y / vg.Length(l.height)

	cellMin := func(c Coord) vg.Point {
		return vg.Point{
			X: dc.Min.X + vg.Length(c.J)*cellW,
			Y: dc.Min.Y + vg.Length(c.I)*cellH,
		}
	}
	fillCell := func(c Coord, col color.Color) {
		min := cellMin(c)
		dc.SetColor(col)
		render.FillRect(dc, min, vg.Point{X: min.X + cellW, Y: min.Y + cellH})
	}

	dc.SetColor(gridColor)
	dc.SetLineWidth(vg.Points(0.5))
	for i := 0; i <= l.height; i++ {
		y := dc.Min.Y + vg.Length(i)*cellH
		render.StrokeLine(dc, vg.Point{X: dc.Min.X, Y: y}, vg.Point{X: dc.Min.X + size.X, Y: y})
	}
	for j := 0; j <= l.width; j++ {
		x := dc.Min.X + vg.Length(j)*cellW
		render.StrokeLine(dc, vg.Point{X: x, Y: dc.Min.Y}, vg.Point{X: x, Y: dc.Min.Y + size.Y})
	}

	for _, d := range l.doors {
		if d.From.K == p.K {
			fillCell(d.From, doorColor)
		}
	}
	if l.goal.K == p.K {
		fillCell(l.goal, goalColor)
	}
	fillCell(p.Coord(), agentColor)
}

package render

import (
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Frame is a state that can draw itself onto a canvas.
// Environment states implement this to be renderable.
type Frame interface {
	Draw(dc draw.Canvas)
}

// Options for rendering rollout frames
type Options struct {
	// canvas size
	Width  vg.Length
	Height vg.Length
	// delay between animation frames in milliseconds
	DelayMS int
}

func DefaultOptions() Options {
	return Options{
		Width:   4 * vg.Inch,
		Height:  4 * vg.Inch,
		DelayMS: 80,
	}
}

// FillRect fills an axis-aligned rectangle on the canvas
func FillRect(dc draw.Canvas, min, max vg.Point) {
	var p vg.Path
	p.Move(min)
	p.Line(vg.Point{X: max.X, Y: min.Y})
	p.Line(max)
	p.Line(vg.Point{X: min.X, Y: max.Y})
	p.Close()
	dc.Fill(p)
}

// StrokeLine strokes a straight segment on the canvas
func StrokeLine(dc draw.Canvas, from, to vg.Point) {
	var p vg.Path
	p.Move(from)
	p.Line(to)
	dc.Stroke(p)
}

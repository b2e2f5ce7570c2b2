package viz

import (
	"image/color"

	"github.com/san-kum/bounce/internal/dynamo"
)

// CanvasRenderer draws simulator frames onto a braille Canvas, scaling world
// coordinates to the canvas's sub-pixel grid per axis.
type CanvasRenderer struct {
	canvas *Canvas
	world  dynamo.Bounds
	frames int
}

func NewCanvasRenderer(c *Canvas, world dynamo.Bounds) *CanvasRenderer {
	return &CanvasRenderer{canvas: c, world: world}
}

func (r *CanvasRenderer) Canvas() *Canvas { return r.canvas }

func (r *CanvasRenderer) SetWorld(b dynamo.Bounds) {
	if b.Valid() {
		r.world = b
	}
}

// Frames counts presented frames.
func (r *CanvasRenderer) Frames() int { return r.frames }

func (r *CanvasRenderer) Clear() {
	r.canvas.Clear()
	r.canvas.SetPen("")
	r.drawBorder()
}

func (r *CanvasRenderer) DrawCircle(center dynamo.Vec2, radius float64, c color.RGBA) {
	sx, sy := r.scale()
	r.canvas.SetPen(hexOf(c))
	r.canvas.FillEllipse(center.X*sx, center.Y*sy, radius*sx, radius*sy)
	r.canvas.SetPen("")
}

func (r *CanvasRenderer) Present() { r.frames++ }

func (r *CanvasRenderer) scale() (float64, float64) {
	if !r.world.Valid() {
		return 1, 1
	}
	return float64(r.canvas.SubWidth()) / r.world.W, float64(r.canvas.SubHeight()) / r.world.H
}

func (r *CanvasRenderer) drawBorder() {
	w, h := r.canvas.SubWidth()-1, r.canvas.SubHeight()-1
	r.canvas.DrawLine(0, h, w, h)
}

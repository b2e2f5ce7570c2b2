package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/bounce/internal/metrics"
	"github.com/san-kum/bounce/internal/physics"
)

// HUD shows the frame rate, body count and a strip chart of total energy.
// It is both a sim.Observer (to sample) and an Overlay (to draw).
type HUD struct {
	Visible bool

	telemetry  []float64
	maxSamples int
	bodies     int
	wallHits   int
	pairHits   int
	collision  string
}

func NewHUD(maxSamples int) *HUD {
	return &HUD{
		Visible:    true,
		telemetry:  make([]float64, 0, maxSamples),
		maxSamples: maxSamples,
	}
}

func (h *HUD) OnFrame(frame int, t float64, w *physics.World, rep physics.StepReport) {
	h.bodies = w.Len()
	h.wallHits += rep.WallHits
	h.pairHits += rep.PairHits
	h.collision = w.Params().Collision.String()

	h.telemetry = append(h.telemetry, metrics.TotalEnergy(w))
	if len(h.telemetry) > h.maxSamples {
		h.telemetry = h.telemetry[1:]
	}
}

func (h *HUD) Draw(width, height int) {
	if rl.IsKeyPressed(rl.KeyH) {
		h.Visible = !h.Visible
	}
	if !h.Visible {
		return
	}

	rl.DrawFPS(10, 10)
	rl.DrawText(fmt.Sprintf("%d bodies  %s", h.bodies, h.collision), 10, 34, 14, ColText)
	rl.DrawText(fmt.Sprintf("walls %d  pairs %d", h.wallHits, h.pairHits), 10, 52, 14, ColText)
	rl.DrawText("[H] HUD  [Q] QUIT", int32(width)-150, int32(height)-24, 14, ColTextDim)

	h.drawTelemetry(10, height-90, 300, 60)
}

func (h *HUD) drawTelemetry(x, y, width, height int) {
	if len(h.telemetry) < 2 {
		return
	}

	minVal, maxVal := h.telemetry[0], h.telemetry[0]
	for _, v := range h.telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(h.telemetry))
	for i, val := range h.telemetry {
		px := float32(x) + (float32(i)/float32(len(h.telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(y+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	rl.DrawText(fmt.Sprintf("E: %.2e", h.telemetry[len(h.telemetry)-1]), int32(x+width+10), int32(y+height-10), 14, ColText)
}

package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/sim"
)

var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

// Overlay is drawn on top of the bodies just before a frame is presented.
type Overlay interface {
	Draw(w, h int)
}

// Window adapts a raylib window to sim.Window. Only one may be open per
// process; raylib keeps the window as global state.
type Window struct {
	overlays []Overlay
	drawing  bool
}

// Open creates the native window. SetExitKey(0) leaves ESC to the overlay
// key handling; closing goes through the title bar or Q.
func Open(width, height int, title string) *Window {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(width), int32(height), title)
	rl.SetExitKey(0)
	return &Window{}
}

func (w *Window) Close() {
	rl.CloseWindow()
}

func (w *Window) AddOverlay(o Overlay) {
	w.overlays = append(w.overlays, o)
}

func (w *Window) SetFrameLimit(fps int) {
	rl.SetTargetFPS(int32(fps))
}

func (w *Window) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

func (w *Window) PollEvents() []sim.Event {
	// Input is polled in EndDrawing, so this sees the previous frame's events.
	if rl.WindowShouldClose() || rl.IsKeyPressed(rl.KeyQ) {
		return []sim.Event{{Kind: sim.EventClosed}}
	}
	return nil
}

func (w *Window) Clear() {
	rl.BeginDrawing()
	w.drawing = true
	rl.ClearBackground(ColBg)
}

func (w *Window) DrawCircle(center dynamo.Vec2, radius float64, c color.RGBA) {
	rl.DrawCircleV(rl.NewVector2(float32(center.X), float32(center.Y)), float32(radius), c)
}

// Present finishes the frame. EndDrawing waits out the rest of the frame
// budget set by SetFrameLimit.
func (w *Window) Present() {
	if !w.drawing {
		return
	}
	width, height := w.Size()
	for _, o := range w.overlays {
		o.Draw(width, height)
	}
	rl.EndDrawing()
	w.drawing = false
}

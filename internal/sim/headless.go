package sim

import (
	"image/color"

	"github.com/san-kum/bounce/internal/dynamo"
)

// Circle records one DrawCircle call.
type Circle struct {
	Center dynamo.Vec2
	Radius float64
	Color  color.RGBA
}

// HeadlessWindow is an in-memory Window. It never blocks and reports a close
// event once CloseAfter frames have been presented (0 means never).
type HeadlessWindow struct {
	Width, Height int
	CloseAfter    int

	FrameLimit int
	Presented  int
	Clears     int
	// Last holds the circles of the most recently presented frame.
	Last    []Circle
	pending []Circle
	queued  []Event
}

func NewHeadlessWindow(w, h, closeAfter int) *HeadlessWindow {
	return &HeadlessWindow{Width: w, Height: h, CloseAfter: closeAfter}
}

func (h *HeadlessWindow) Size() (int, int) { return h.Width, h.Height }

func (h *HeadlessWindow) SetFrameLimit(fps int) { h.FrameLimit = fps }

// Push queues an event for the next PollEvents.
func (h *HeadlessWindow) Push(e Event) { h.queued = append(h.queued, e) }

func (h *HeadlessWindow) PollEvents() []Event {
	events := h.queued
	h.queued = nil
	if h.CloseAfter > 0 && h.Presented >= h.CloseAfter {
		events = append(events, Event{Kind: EventClosed})
	}
	return events
}

func (h *HeadlessWindow) Clear() {
	h.Clears++
	h.pending = h.pending[:0]
}

func (h *HeadlessWindow) DrawCircle(center dynamo.Vec2, radius float64, c color.RGBA) {
	h.pending = append(h.pending, Circle{Center: center, Radius: radius, Color: c})
}

func (h *HeadlessWindow) Present() {
	h.Last = append(h.Last[:0], h.pending...)
	h.Presented++
}

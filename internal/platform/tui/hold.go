package tui

import "github.com/vovakirdan/tui-asteroids/internal/core"

// tracked actions go through the hold window. Continuous ones act on every
// tick they are held; the rest act once per press, on the rising edge.
var tracked = map[core.Action]bool{
	core.ActionRotateLeft:  true,
	core.ActionRotateRight: true,
	core.ActionThrust:      true,
	core.ActionFire:        false,
	core.ActionPause:       false,
}

// IsContinuous reports whether a is applied every tick while held.
func IsContinuous(a core.Action) bool {
	return tracked[a]
}

// IsTracked reports whether a is subject to hold emulation.
func IsTracked(a core.Action) bool {
	_, ok := tracked[a]
	return ok
}

// HoldTracker turns key messages into per-tick input frames.
//
// Terminals deliver key presses and auto-repeats but never releases, so a
// tracked action counts as held until holdTicks ticks pass without a message
// for it. Its rising edge is the first tick it is held after a gap, and
// auto-repeats inside the window never produce another edge.
// Untracked actions are taps: pressed on the next frame, then forgotten.
type HoldTracker struct {
	holdTicks int
	tick      int
	lastSeen  map[core.Action]int
	wasHeld   map[core.Action]bool
	taps      map[core.Action]bool
}

// NewHoldTracker creates a tracker. holdTicks below 1 is treated as 1, which
// holds an action only on the tick its key message arrived.
func NewHoldTracker(holdTicks int) *HoldTracker {
	if holdTicks < 1 {
		holdTicks = 1
	}
	return &HoldTracker{
		holdTicks: holdTicks,
		lastSeen:  make(map[core.Action]int),
		wasHeld:   make(map[core.Action]bool),
		taps:      make(map[core.Action]bool),
	}
}

// Observe records a key message for a.
func (h *HoldTracker) Observe(a core.Action) {
	if a == core.ActionNone {
		return
	}
	if IsTracked(a) {
		h.lastSeen[a] = h.tick
		return
	}
	h.taps[a] = true
}

// Frame builds the input frame for the current tick and advances the clock.
func (h *HoldTracker) Frame() core.InputFrame {
	frame := core.NewInputFrame()

	for a := range tracked {
		seen, ok := h.lastSeen[a]
		held := ok && h.tick-seen < h.holdTicks
		switch {
		case held && !h.wasHeld[a]:
			frame.Set(a)
		case held:
			frame.Hold(a)
		case ok:
			delete(h.lastSeen, a)
		}
		h.wasHeld[a] = held
	}

	for a := range h.taps {
		frame.Set(a)
		delete(h.taps, a)
	}

	h.tick++
	return frame
}

// Reset forgets every pending and held action.
func (h *HoldTracker) Reset() {
	clear(h.lastSeen)
	clear(h.wasHeld)
	clear(h.taps)
}

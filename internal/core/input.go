package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionRotateLeft         // Left arrow, A - turn counter-clockwise
	ActionRotateRight        // Right arrow, D - turn clockwise
	ActionThrust             // Up arrow, W - accelerate along heading
	ActionFire               // Space - fire a bullet (single shot per press)
	ActionConfirm            // Enter - confirm selection in menu
	ActionBack               // B - go back to menu
	ActionRestart            // R key - restart game after game over
	ActionQuit               // Q, Ctrl+C - exit game/session
	ActionPause              // P, Escape - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionRotateLeft:
		return "RotateLeft"
	case ActionRotateRight:
		return "RotateRight"
	case ActionThrust:
		return "Thrust"
	case ActionFire:
		return "Fire"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single player during one simulation tick.
//
// Two views are kept per action:
//   - Actions: the rising edge, true only on the tick the action went from
//     released to held (fire, pause toggle).
//   - Holding: true on every tick the action is held (rotation, thrust).
//
// A pressed action is always also held.
type InputFrame struct {
	Actions map[Action]bool
	Holding map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Holding: make(map[Action]bool),
	}
}

// Set marks an action as pressed (rising edge) for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
	f.Hold(a)
}

// Hold marks an action as held for this frame without a rising edge.
func (f *InputFrame) Hold(a Action) {
	if f.Holding == nil {
		f.Holding = make(map[Action]bool)
	}
	f.Holding[a] = true
}

// Has returns true if the given action was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Pressed is an alias of Has, named for rising-edge queries.
func (f InputFrame) Pressed(a Action) bool {
	return f.Has(a)
}

// Held returns true if the given action is held this frame.
func (f InputFrame) Held(a Action) bool {
	if f.Holding == nil {
		return false
	}
	return f.Holding[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	for k := range f.Holding {
		delete(f.Holding, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	for k, v := range f.Holding {
		clone.Holding[k] = v
	}
	return clone
}

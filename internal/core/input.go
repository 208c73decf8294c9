package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, W, Up - flap
	ActionConfirm        // Enter, R - start from menu, restart after game over
	ActionCancel         // Esc, B - back to menu after game over
	ActionQuit           // Q, Ctrl+C - exit the program
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	case ActionCancel:
		return "Cancel"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the input events polled during one simulation step,
// in the order they arrived. A frame may be empty or hold repeats.
type InputFrame struct {
	Events []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	f := InputFrame{Events: make([]Action, 0, 4)}
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set appends an action to this frame. ActionNone is dropped.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Events = append(f.Events, a)
}

// Len returns the number of events in the frame.
func (f InputFrame) Len() int {
	return len(f.Events)
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.Events = f.Events[:0]
}

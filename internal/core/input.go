package core

// PlayerID identifies one of the (at most two) players of a game.
type PlayerID int

const (
	NoPlayer PlayerID = 0
	Player1  PlayerID = 1
	Player2  PlayerID = 2
)

// String returns a short label for the player.
func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "P1"
	case Player2:
		return "P2"
	default:
		return "-"
	}
}

// Action is a semantic input, abstracted from physical keys. The simulation
// only ever sees directional actions; the rest are consumed by views.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionHelp
	ActionQuit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsDirectional reports whether the action is one of the four moves.
func (a Action) IsDirectional() bool {
	return a >= ActionUp && a <= ActionRight
}

// InputEvent is one discrete input for one player. Each accepted
// directional event moves the player at most one tile.
type InputEvent struct {
	Player PlayerID
	Action Action
}

// InputFrame collects the input events of one simulation tick in arrival
// order. Order matters: two presses in one tick are two moves.
type InputFrame struct {
	Events []InputEvent
}

// NewInputFrame creates an empty input frame with room for n events.
func NewInputFrame(n int) InputFrame {
	return InputFrame{Events: make([]InputEvent, 0, n)}
}

// Add appends an event to the frame.
func (f *InputFrame) Add(player PlayerID, a Action) {
	f.Events = append(f.Events, InputEvent{Player: player, Action: a})
}

// For returns the actions of one player, in order.
func (f InputFrame) For(player PlayerID) []Action {
	var out []Action
	for _, e := range f.Events {
		if e.Player == player {
			out = append(out, e.Action)
		}
	}
	return out
}

// Clear resets the frame for reuse.
func (f *InputFrame) Clear() {
	f.Events = f.Events[:0]
}

// Len returns the number of events.
func (f InputFrame) Len() int {
	return len(f.Events)
}

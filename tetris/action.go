package tetris

// Action is a player input the engine accepts.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveLeft
	ActionMoveRight
	ActionRotate
	// ActionDrop moves the piece down a single row, exactly like a tick.
	ActionDrop
)

func (a Action) String() string {
	switch a {
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionRotate:
		return "Rotate"
	case ActionDrop:
		return "Drop"
	default:
		return "None"
	}
}

// State is the lifecycle stage of a Game.
type State uint8

const (
	// StateIdle is the state before the first StartGame.
	StateIdle State = iota
	StatePlaying
	// StateGameOver is entered when a newly handed-off piece overlaps the
	// settled pieces. Only StartGame leaves it.
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game over"
	default:
		return "idle"
	}
}

package engine

import "fmt"

// SquareKind identifies who owns an occupied square
type SquareKind string

const (
	SquareSnake SquareKind = "snake"
	SquareFood  SquareKind = "food"

	// Validation constants
	MinBoardSize = 3
	MaxBoardSize = 200
	MaxFoodLimit = 100
)

// Cell is a (row, col) board position. It is comparable and used directly as a map key.
type Cell struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// String renders the cell as (row,col)
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// OccupiedSquare is a cell claimed by the snake or by a food item.
// Food squares carry a unique ID so expiry can tell items on the same cell apart.
type OccupiedSquare struct {
	ID   string     `json:"id,omitempty"`
	Cell Cell       `json:"cell"`
	Kind SquareKind `json:"kind"`
}

// ExtendOutcome is the result category of Snake.Extend
type ExtendOutcome int

const (
	Collision ExtendOutcome = iota
	GrewOntoFood
	MovedOntoEmpty
)

func (o ExtendOutcome) String() string {
	switch o {
	case Collision:
		return "collision"
	case GrewOntoFood:
		return "grew_onto_food"
	case MovedOntoEmpty:
		return "moved_onto_empty"
	default:
		return "unknown"
	}
}

// ExtendResult describes what happened when the snake was extended onto a cell.
// Square holds the eaten food square for GrewOntoFood and the new head for MovedOntoEmpty.
type ExtendResult struct {
	Outcome ExtendOutcome
	Square  OccupiedSquare
}

// GameOverReason says why a game reached its terminal state
type GameOverReason string

const (
	ReasonBoundary      GameOverReason = "boundary"
	ReasonSelfCollision GameOverReason = "self_collision"
	ReasonEnded         GameOverReason = "ended"
)

// Outcome summarizes a finished game
type Outcome struct {
	Reason GameOverReason `json:"reason"`
	Length int            `json:"length"`
	Ticks  int            `json:"ticks"`
}

// FoodItem is a food square with its remaining lifetime
type FoodItem struct {
	ID          string `json:"id"`
	Cell        Cell   `json:"cell"`
	ExpiresInMs int64  `json:"expires_in_ms"`
}

// Snapshot is a point-in-time copy of a game's observable state
type Snapshot struct {
	Rows       int        `json:"rows"`
	Cols       int        `json:"cols"`
	Snake      []Cell     `json:"snake"` // head first
	Food       []FoodItem `json:"food"`
	Direction  string     `json:"direction"`
	Length     int        `json:"length"`
	Started    bool       `json:"started"`
	Paused     bool       `json:"paused"`
	GameOver   bool       `json:"game_over"`
	Outcome    *Outcome   `json:"outcome,omitempty"`
	IntervalMs int64      `json:"interval_ms"`
	Ticks      int        `json:"ticks"`
	ConfigName string     `json:"config_name"`
}

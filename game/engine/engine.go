package engine

import "errors"

var (
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidCommand   = errors.New("invalid command")
	ErrAlreadyStarted   = errors.New("game already started")
	ErrNotStarted       = errors.New("game not started")
	ErrGameOver         = errors.New("game is over")
)

// Engine provides the main interface for game operations
type Engine interface {
	// Lifecycle
	Start() error
	Pause() error
	Resume() error
	EndGame()
	Done() <-chan struct{}

	// Input
	SetDirection(d Direction) error
	HandleCommand(cmd Command) error

	// State
	State() *Snapshot
	Config() *GameConfig
	Board() Board
	Len() int
	IsOver() bool
	IsPaused() bool
	Outcome() (Outcome, bool)
}

var _ Engine = (*Game)(nil)

package engine

import (
	"fmt"
	"strings"
)

// Renderer receives board changes. Calls are made while the game holds its lock,
// so implementations must return quickly and must not call back into the game.
type Renderer interface {
	OnSquareAdded(c Cell, kind SquareKind)
	OnSquareRemoved(c Cell)
	// OnFoodExpiring signals an uneaten food item timed out; the renderer
	// plays its fade and clears the cell.
	OnFoodExpiring(c Cell)
}

// GameOverObserver is implemented by renderers that want the terminal transition
type GameOverObserver interface {
	OnGameOver(outcome Outcome)
}

// NopRenderer ignores every event
type NopRenderer struct{}

func (NopRenderer) OnSquareAdded(Cell, SquareKind) {}
func (NopRenderer) OnSquareRemoved(Cell)           {}
func (NopRenderer) OnFoodExpiring(Cell)            {}

// MultiRenderer fans events out to several renderers in order
type MultiRenderer []Renderer

func (m MultiRenderer) OnSquareAdded(c Cell, kind SquareKind) {
	for _, r := range m {
		r.OnSquareAdded(c, kind)
	}
}

func (m MultiRenderer) OnSquareRemoved(c Cell) {
	for _, r := range m {
		r.OnSquareRemoved(c)
	}
}

func (m MultiRenderer) OnFoodExpiring(c Cell) {
	for _, r := range m {
		r.OnFoodExpiring(c)
	}
}

func (m MultiRenderer) OnGameOver(outcome Outcome) {
	for _, r := range m {
		if obs, ok := r.(GameOverObserver); ok {
			obs.OnGameOver(outcome)
		}
	}
}

// CommandKind enumerates the input commands a game accepts
type CommandKind string

const (
	CommandDirection CommandKind = "direction"
	CommandPause     CommandKind = "pause"
	CommandResume    CommandKind = "resume"
)

// Command is produced by an input source and applied with Game.HandleCommand
type Command struct {
	Kind      CommandKind `json:"type"`
	Direction Direction   `json:"direction"`
}

// DirectionCommand builds a direction change command
func DirectionCommand(d Direction) Command {
	return Command{Kind: CommandDirection, Direction: d}
}

// ParseCommand builds a command from its wire form ("pause", "resume", or a direction name)
func ParseCommand(kind, direction string) (Command, error) {
	switch CommandKind(strings.ToLower(kind)) {
	case CommandPause:
		return Command{Kind: CommandPause}, nil
	case CommandResume:
		return Command{Kind: CommandResume}, nil
	case CommandDirection:
		d, err := ParseDirection(direction)
		if err != nil {
			return Command{}, err
		}
		return DirectionCommand(d), nil
	}
	if d, err := ParseDirection(kind); err == nil {
		return DirectionCommand(d), nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrInvalidCommand, kind)
}

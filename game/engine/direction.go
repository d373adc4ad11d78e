package engine

import (
	"fmt"
	"strings"
)

// Direction is one of the four travel directions
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in a stable order
var Directions = []Direction{Up, Down, Left, Right}

var directionNames = [...]string{
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
}

func (d Direction) String() string {
	if !d.Valid() {
		return "unknown"
	}
	return directionNames[d]
}

// Valid reports whether d is one of the four directions
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Opposite returns the reverse direction
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// ParseDirection converts "up", "down", "left" or "right" (any case) into a Direction
func ParseDirection(s string) (Direction, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d, n := range directionNames {
		if n == name {
			return Direction(d), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// MarshalText implements encoding.TextMarshaler
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Left returns the cell to the left of c, or false at column 0
func (b Board) Left(c Cell) (Cell, bool) {
	if c.Col <= 0 {
		return Cell{}, false
	}
	return Cell{Row: c.Row, Col: c.Col - 1}, true
}

// Right returns the cell to the right of c, or false at the last column
func (b Board) Right(c Cell) (Cell, bool) {
	if c.Col >= b.Cols-1 {
		return Cell{}, false
	}
	return Cell{Row: c.Row, Col: c.Col + 1}, true
}

// Up returns the cell above c, or false at row 0
func (b Board) Up(c Cell) (Cell, bool) {
	if c.Row <= 0 {
		return Cell{}, false
	}
	return Cell{Row: c.Row - 1, Col: c.Col}, true
}

// Down returns the cell below c, or false at the last row
func (b Board) Down(c Cell) (Cell, bool) {
	if c.Row >= b.Rows-1 {
		return Cell{}, false
	}
	return Cell{Row: c.Row + 1, Col: c.Col}, true
}

// stepTable maps each direction to its neighbor function
var stepTable = [...]func(Board, Cell) (Cell, bool){
	Up:    Board.Up,
	Down:  Board.Down,
	Left:  Board.Left,
	Right: Board.Right,
}

// Step applies a direction to a cell. A false result means the move leaves the board.
func (b Board) Step(c Cell, d Direction) (Cell, bool) {
	if !d.Valid() {
		return Cell{}, false
	}
	return stepTable[d](b, c)
}

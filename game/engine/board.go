package engine

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Board is a fixed-size rectangular grid of Rows x Cols cells
type Board struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// NewBoard creates a board after checking its dimensions
func NewBoard(rows, cols int) (Board, error) {
	if rows < MinBoardSize || rows > MaxBoardSize {
		return Board{}, fmt.Errorf("%w: rows must be between %d and %d, got %d", ErrInvalidConfig, MinBoardSize, MaxBoardSize, rows)
	}
	if cols < MinBoardSize || cols > MaxBoardSize {
		return Board{}, fmt.Errorf("%w: cols must be between %d and %d, got %d", ErrInvalidConfig, MinBoardSize, MaxBoardSize, cols)
	}
	return Board{Rows: rows, Cols: cols}, nil
}

// Contains reports whether the cell lies inside [0,Rows) x [0,Cols)
func (b Board) Contains(c Cell) bool {
	return c.Row >= 0 && c.Row < b.Rows && c.Col >= 0 && c.Col < b.Cols
}

// Center returns the starting cell for a new snake
func (b Board) Center() Cell {
	return Cell{Row: b.Rows / 2, Col: b.Cols / 2}
}

// Size returns the number of cells on the board
func (b Board) Size() int {
	return b.Rows * b.Cols
}

// Index packs a cell into a single integer key (row*Cols + col)
func (b Board) Index(c Cell) int {
	return c.Row*b.Cols + c.Col
}

// CellAt is the inverse of Index
func (b Board) CellAt(index int) Cell {
	return Cell{Row: index / b.Cols, Col: index % b.Cols}
}

// RandomCell picks a cell uniformly over the whole board
func (b Board) RandomCell(rng *rand.Rand) Cell {
	return b.CellAt(rng.Intn(b.Size()))
}

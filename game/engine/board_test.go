package engine

import (
	"errors"
	"testing"

	"golang.org/x/exp/rand"
)

func TestNewBoard(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		wantErr    bool
	}{
		{"default size", 15, 11, false},
		{"minimum", MinBoardSize, MinBoardSize, false},
		{"maximum", MaxBoardSize, MaxBoardSize, false},
		{"too few rows", 2, 11, true},
		{"too few cols", 15, 0, true},
		{"too many rows", MaxBoardSize + 1, 11, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := NewBoard(tt.rows, tt.cols)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("Expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if board.Rows != tt.rows || board.Cols != tt.cols {
				t.Errorf("Expected %dx%d, got %dx%d", tt.rows, tt.cols, board.Rows, board.Cols)
			}
		})
	}
}

func TestBoard_Center(t *testing.T) {
	board := Board{Rows: 15, Cols: 11}
	if got := board.Center(); got != (Cell{Row: 7, Col: 5}) {
		t.Errorf("Expected center (7,5), got %v", got)
	}
}

func TestBoard_Contains(t *testing.T) {
	board := Board{Rows: 15, Cols: 11}
	tests := []struct {
		cell     Cell
		expected bool
	}{
		{Cell{0, 0}, true},
		{Cell{14, 10}, true},
		{Cell{-1, 0}, false},
		{Cell{0, -1}, false},
		{Cell{15, 0}, false},
		{Cell{0, 11}, false},
	}

	for _, tt := range tests {
		if got := board.Contains(tt.cell); got != tt.expected {
			t.Errorf("Contains(%v): expected %v, got %v", tt.cell, tt.expected, got)
		}
	}
}

func TestBoard_IndexRoundTrip(t *testing.T) {
	board := Board{Rows: 4, Cols: 3}
	seen := make(map[int]bool)
	for row := 0; row < board.Rows; row++ {
		for col := 0; col < board.Cols; col++ {
			c := Cell{Row: row, Col: col}
			idx := board.Index(c)
			if seen[idx] {
				t.Fatalf("Index %d produced twice", idx)
			}
			seen[idx] = true
			if back := board.CellAt(idx); back != c {
				t.Errorf("CellAt(Index(%v)) = %v", c, back)
			}
		}
	}
	if len(seen) != board.Size() {
		t.Errorf("Expected %d indexes, got %d", board.Size(), len(seen))
	}
}

func TestBoard_RandomCellStaysOnBoard(t *testing.T) {
	board := Board{Rows: 5, Cols: 7}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		if c := board.RandomCell(rng); !board.Contains(c) {
			t.Fatalf("RandomCell returned off-board cell %v", c)
		}
	}
}

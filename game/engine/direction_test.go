package engine

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input    string
		expected Direction
		wantErr  bool
	}{
		{"up", Up, false},
		{"DOWN", Down, false},
		{" Left ", Left, false},
		{"right", Right, false},
		{"north", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidDirection) {
				t.Errorf("ParseDirection(%q): expected ErrInvalidDirection, got %v", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDirection(%q): unexpected error %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseDirection(%q): expected %v, got %v", tt.input, tt.expected, got)
		}
	}
}

func TestDirection_Opposite(t *testing.T) {
	for _, d := range Directions {
		if d.Opposite().Opposite() != d {
			t.Errorf("Opposite of opposite of %v is not itself", d)
		}
		if d.Opposite() == d {
			t.Errorf("%v is its own opposite", d)
		}
	}
}

func TestDirection_InvalidString(t *testing.T) {
	if Direction(9).Valid() {
		t.Error("Expected Direction(9) to be invalid")
	}
	if Direction(9).String() != "unknown" {
		t.Errorf("Expected unknown, got %s", Direction(9).String())
	}
}

func TestDirection_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		D Direction `json:"d"`
	}{D: Left})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"d":"left"}` {
		t.Errorf("Expected {\"d\":\"left\"}, got %s", data)
	}

	var out struct {
		D Direction `json:"d"`
	}
	if err := json.Unmarshal([]byte(`{"d":"down"}`), &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if out.D != Down {
		t.Errorf("Expected down, got %v", out.D)
	}
	if err := json.Unmarshal([]byte(`{"d":"sideways"}`), &out); err == nil {
		t.Error("Expected error for unknown direction")
	}
}

func TestBoard_NeighborFunctions(t *testing.T) {
	board := Board{Rows: 15, Cols: 11}
	c := Cell{Row: 7, Col: 5}

	tests := []struct {
		name     string
		fn       func(Cell) (Cell, bool)
		expected Cell
	}{
		{"left", board.Left, Cell{7, 4}},
		{"right", board.Right, Cell{7, 6}},
		{"up", board.Up, Cell{6, 5}},
		{"down", board.Down, Cell{8, 5}},
	}

	for _, tt := range tests {
		got, ok := tt.fn(c)
		if !ok {
			t.Errorf("%s: expected a cell", tt.name)
			continue
		}
		if got != tt.expected {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.expected, got)
		}
	}
}

func TestBoard_NeighborsAtEdges(t *testing.T) {
	board := Board{Rows: 15, Cols: 11}

	if _, ok := board.Left(Cell{3, 0}); ok {
		t.Error("Expected left of column 0 to be off-board")
	}
	if _, ok := board.Right(Cell{3, 10}); ok {
		t.Error("Expected right of the last column to be off-board")
	}
	if _, ok := board.Up(Cell{0, 3}); ok {
		t.Error("Expected up from row 0 to be off-board")
	}
	if _, ok := board.Down(Cell{14, 3}); ok {
		t.Error("Expected down from the last row to be off-board")
	}
}

// Every non-null step result must be on the board
func TestBoard_StepNeverLeavesBoard(t *testing.T) {
	board := Board{Rows: 4, Cols: 6}
	for row := 0; row < board.Rows; row++ {
		for col := 0; col < board.Cols; col++ {
			for _, d := range Directions {
				next, ok := board.Step(Cell{row, col}, d)
				if ok && !board.Contains(next) {
					t.Errorf("Step(%v, %v) = %v is off-board", Cell{row, col}, d, next)
				}
			}
		}
	}
	if _, ok := board.Step(Cell{1, 1}, Direction(-1)); ok {
		t.Error("Expected invalid direction to produce no cell")
	}
}

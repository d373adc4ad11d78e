package engine

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"golang.org/x/exp/rand"
)

// fakeFood is a FoodLookup backed by a plain set
type fakeFood map[Cell]bool

func (f fakeFood) At(c Cell) (OccupiedSquare, bool) {
	if f[c] {
		return OccupiedSquare{ID: "food-" + c.String(), Cell: c, Kind: SquareFood}, true
	}
	return OccupiedSquare{}, false
}

func newTestRegistry(board Board, maxFood int) (*FoodRegistry, *Scheduler, *ManualClock) {
	clock := NewManualClock(time.Unix(0, 0))
	sched := NewScheduler(clock, &sync.Mutex{})
	rng := rand.New(rand.NewSource(7))
	return NewFoodRegistry(board, maxFood, Range{Min: 5000, Max: 5000}, rng, sched), sched, clock
}

func TestNewSnake(t *testing.T) {
	s := NewSnake(Cell{7, 5}, nil)
	if s.Len() != 1 {
		t.Errorf("Expected length 1, got %d", s.Len())
	}
	if s.Head().Cell != (Cell{7, 5}) || s.Tail().Cell != (Cell{7, 5}) {
		t.Error("Expected head and tail at (7,5)")
	}
	if s.Head().Kind != SquareSnake {
		t.Errorf("Expected snake square, got %s", s.Head().Kind)
	}
	if !s.Occupies(Cell{7, 5}) {
		t.Error("Expected (7,5) to be occupied")
	}
}

func TestSnake_MoveOntoEmpty(t *testing.T) {
	s := NewSnake(Cell{7, 5}, fakeFood{})

	result := s.Extend(Cell{7, 6})
	if result.Outcome != MovedOntoEmpty {
		t.Fatalf("Expected MovedOntoEmpty, got %v", result.Outcome)
	}
	if result.Square.Cell != (Cell{7, 6}) {
		t.Errorf("Expected new square at (7,6), got %v", result.Square.Cell)
	}

	tail, ok := s.Shrink()
	if !ok || tail.Cell != (Cell{7, 5}) {
		t.Errorf("Expected to remove tail (7,5), got %v %v", tail.Cell, ok)
	}
	if s.Len() != 1 {
		t.Errorf("Expected length 1, got %d", s.Len())
	}
	if s.Head().Cell != (Cell{7, 6}) {
		t.Errorf("Expected head (7,6), got %v", s.Head().Cell)
	}
	if s.Occupies(Cell{7, 5}) {
		t.Error("Expected (7,5) to be vacated")
	}
}

func TestSnake_GrowOntoFood(t *testing.T) {
	board := Board{Rows: 15, Cols: 11}
	food, _, _ := newTestRegistry(board, 5)
	s := NewSnake(Cell{7, 6}, food)
	food.SetOccupancy(s)

	target := Cell{7, 7}
	if _, ok := food.TrySpawn(&target); !ok {
		t.Fatal("Expected food to spawn at (7,7)")
	}

	result := s.Extend(target)
	if result.Outcome != GrewOntoFood {
		t.Fatalf("Expected GrewOntoFood, got %v", result.Outcome)
	}
	if result.Square.Kind != SquareFood || result.Square.Cell != target {
		t.Errorf("Expected the food square to be returned, got %+v", result.Square)
	}
	if !food.Consume(target) {
		t.Error("Expected Consume((7,7)) to return true")
	}
	if s.Len() != 2 {
		t.Errorf("Expected length 2, got %d", s.Len())
	}
}

func TestSnake_SelfCollision(t *testing.T) {
	// Head first: (5,5), (5,6), (5,7)
	s := NewSnake(Cell{5, 7}, nil)
	s.Extend(Cell{5, 6})
	s.Extend(Cell{5, 5})

	want := []Cell{{5, 5}, {5, 6}, {5, 7}}
	if got := s.Cells(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}

	t.Run("moving left succeeds", func(t *testing.T) {
		clone := NewSnake(Cell{5, 7}, nil)
		clone.Extend(Cell{5, 6})
		clone.Extend(Cell{5, 5})
		if r := clone.Extend(Cell{5, 4}); r.Outcome != MovedOntoEmpty {
			t.Errorf("Expected MovedOntoEmpty, got %v", r.Outcome)
		}
	})

	t.Run("moving right collides", func(t *testing.T) {
		if r := s.Extend(Cell{5, 6}); r.Outcome != Collision {
			t.Errorf("Expected Collision, got %v", r.Outcome)
		}
		if s.Len() != 3 {
			t.Errorf("Expected collision to leave length 3, got %d", s.Len())
		}
	})
}

func TestSnake_SelfOccupancyBeatsFood(t *testing.T) {
	s := NewSnake(Cell{2, 2}, fakeFood{{2, 2}: true})
	if r := s.Extend(Cell{2, 2}); r.Outcome != Collision {
		t.Errorf("Expected Collision even with food on the cell, got %v", r.Outcome)
	}
}

func TestSnake_ShrinkKeepsLastSquare(t *testing.T) {
	s := NewSnake(Cell{1, 1}, nil)
	if _, ok := s.Shrink(); ok {
		t.Error("Expected Shrink on a length-1 snake to do nothing")
	}
	if s.Len() != 1 || !s.Occupies(Cell{1, 1}) {
		t.Error("Expected the single square to remain")
	}
}

func TestSnake_OccupancyMatchesBody(t *testing.T) {
	board := Board{Rows: 20, Cols: 20}

	// Boustrophedon path: never revisits a cell
	var path []Cell
	for row := 0; row < board.Rows; row++ {
		for i := 0; i < board.Cols; i++ {
			col := i
			if row%2 == 1 {
				col = board.Cols - 1 - i
			}
			path = append(path, Cell{row, col})
		}
	}

	s := NewSnake(path[0], nil)
	for step, next := range path[1:300] {
		if r := s.Extend(next); r.Outcome == Collision {
			t.Fatalf("Unexpected collision at step %d on %v", step, next)
		}
		if step%3 != 0 {
			s.Shrink()
		}

		cells := s.Cells()
		if len(cells) != s.Len() {
			t.Fatalf("Cells length %d != Len %d", len(cells), s.Len())
		}
		if len(s.occupied) != s.Len() {
			t.Fatalf("Occupancy set size %d != Len %d", len(s.occupied), s.Len())
		}
		for _, c := range cells {
			if !s.Occupies(c) {
				t.Fatalf("Body cell %v missing from occupancy set", c)
			}
		}
		if cells[0] != s.Head().Cell || cells[len(cells)-1] != s.Tail().Cell {
			t.Fatal("Cells must be ordered head first")
		}
	}
}

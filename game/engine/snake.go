package engine

// compactThreshold bounds how many vacated slots Shrink leaves before the body slice is compacted
const compactThreshold = 64

// Occupancy answers whether a cell is covered by the snake
type Occupancy interface {
	Occupies(c Cell) bool
}

// FoodLookup answers whether a cell holds pending food
type FoodLookup interface {
	At(c Cell) (OccupiedSquare, bool)
}

// Snake is the ordered body of occupied squares plus a set of the same cells.
// The body is stored tail-first from start so both ends are amortized O(1).
type Snake struct {
	body     []OccupiedSquare
	start    int
	occupied map[Cell]struct{}
	food     FoodLookup
}

// NewSnake creates a one-square snake at head. food may be nil.
func NewSnake(head Cell, food FoodLookup) *Snake {
	sq := OccupiedSquare{Cell: head, Kind: SquareSnake}
	return &Snake{
		body:     []OccupiedSquare{sq},
		occupied: map[Cell]struct{}{head: {}},
		food:     food,
	}
}

// Extend adds cell as the new head.
// Self-occupancy is checked before food so it always wins.
func (s *Snake) Extend(cell Cell) ExtendResult {
	if s.Occupies(cell) {
		return ExtendResult{Outcome: Collision}
	}

	head := OccupiedSquare{Cell: cell, Kind: SquareSnake}
	s.body = append(s.body, head)
	s.occupied[cell] = struct{}{}

	if s.food != nil {
		if food, ok := s.food.At(cell); ok {
			return ExtendResult{Outcome: GrewOntoFood, Square: food}
		}
	}
	return ExtendResult{Outcome: MovedOntoEmpty, Square: head}
}

// Shrink removes the tail square. The last square is never removed.
func (s *Snake) Shrink() (OccupiedSquare, bool) {
	if s.Len() <= 1 {
		return OccupiedSquare{}, false
	}

	tail := s.body[s.start]
	s.body[s.start] = OccupiedSquare{}
	s.start++
	delete(s.occupied, tail.Cell)

	if s.start >= compactThreshold && s.start*2 >= len(s.body) {
		n := copy(s.body, s.body[s.start:])
		s.body = s.body[:n]
		s.start = 0
	}
	return tail, true
}

// Len returns the number of squares in the snake
func (s *Snake) Len() int {
	return len(s.body) - s.start
}

// Head returns the head square
func (s *Snake) Head() OccupiedSquare {
	return s.body[len(s.body)-1]
}

// Tail returns the tail square
func (s *Snake) Tail() OccupiedSquare {
	return s.body[s.start]
}

// Occupies reports whether the snake covers c
func (s *Snake) Occupies(c Cell) bool {
	_, ok := s.occupied[c]
	return ok
}

// Cells returns the body cells head first
func (s *Snake) Cells() []Cell {
	cells := make([]Cell, 0, s.Len())
	for i := len(s.body) - 1; i >= s.start; i-- {
		cells = append(cells, s.body[i].Cell)
	}
	return cells
}

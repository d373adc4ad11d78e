package engine

import (
	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

type foodEntry struct {
	square OccupiedSquare
	expiry TaskID
}

// FoodRegistry maps cells to pending food items, capped at maxFood entries.
// Each item expires on its own schedule.
type FoodRegistry struct {
	board     Board
	maxFood   int
	lifetime  Range
	rng       *rand.Rand
	sched     *Scheduler
	occupancy Occupancy
	onExpire  func(OccupiedSquare)
	entries   map[Cell]*foodEntry
}

// NewFoodRegistry creates an empty registry. Expiry timers run on sched.
func NewFoodRegistry(board Board, maxFood int, lifetime Range, rng *rand.Rand, sched *Scheduler) *FoodRegistry {
	return &FoodRegistry{
		board:    board,
		maxFood:  maxFood,
		lifetime: lifetime,
		rng:      rng,
		sched:    sched,
		entries:  make(map[Cell]*foodEntry),
	}
}

// SetOccupancy sets the snake occupancy consulted before placing food
func (r *FoodRegistry) SetOccupancy(o Occupancy) {
	r.occupancy = o
}

// OnExpire sets the callback run when an uneaten item times out
func (r *FoodRegistry) OnExpire(fn func(OccupiedSquare)) {
	r.onExpire = fn
}

// TrySpawn places a food item on requested, or on a random cell when requested is nil.
// A random pick that lands on an occupied cell is rejected, not remapped.
// It fails without error when the cap is reached or the cell holds snake or food.
func (r *FoodRegistry) TrySpawn(requested *Cell) (OccupiedSquare, bool) {
	if len(r.entries) >= r.maxFood {
		return OccupiedSquare{}, false
	}

	var cell Cell
	if requested != nil {
		cell = *requested
	} else {
		cell = r.board.RandomCell(r.rng)
	}

	if !r.board.Contains(cell) {
		return OccupiedSquare{}, false
	}
	if r.occupancy != nil && r.occupancy.Occupies(cell) {
		return OccupiedSquare{}, false
	}
	if _, exists := r.entries[cell]; exists {
		return OccupiedSquare{}, false
	}

	sq := OccupiedSquare{ID: uuid.NewString(), Cell: cell, Kind: SquareFood}
	entry := &foodEntry{square: sq}
	entry.expiry = r.sched.After(r.lifetime.Pick(r.rng), func() { r.expire(sq) })
	r.entries[cell] = entry

	return sq, true
}

// Consume removes the food at cell and reports whether there was any
func (r *FoodRegistry) Consume(cell Cell) bool {
	entry, ok := r.entries[cell]
	if !ok {
		return false
	}
	delete(r.entries, cell)
	r.sched.Cancel(entry.expiry)
	return true
}

// expire removes the item if it is still on the board. Eaten or replaced items are left alone.
func (r *FoodRegistry) expire(sq OccupiedSquare) {
	entry, ok := r.entries[sq.Cell]
	if !ok || entry.square.ID != sq.ID {
		return
	}
	delete(r.entries, sq.Cell)
	if r.onExpire != nil {
		r.onExpire(sq)
	}
}

// At returns the food square on cell
func (r *FoodRegistry) At(cell Cell) (OccupiedSquare, bool) {
	entry, ok := r.entries[cell]
	if !ok {
		return OccupiedSquare{}, false
	}
	return entry.square, true
}

// Len returns the number of pending food items
func (r *FoodRegistry) Len() int {
	return len(r.entries)
}

// MaxFood returns the concurrent food cap
func (r *FoodRegistry) MaxFood() int {
	return r.maxFood
}

// Items lists pending food with remaining lifetimes, ordered by board index
func (r *FoodRegistry) Items() []FoodItem {
	items := make([]FoodItem, 0, len(r.entries))
	for i := 0; i < r.board.Size() && len(items) < len(r.entries); i++ {
		entry, ok := r.entries[r.board.CellAt(i)]
		if !ok {
			continue
		}
		left, _ := r.sched.Remaining(entry.expiry)
		items = append(items, FoodItem{
			ID:          entry.square.ID,
			Cell:        entry.square.Cell,
			ExpiresInMs: left.Milliseconds(),
		})
	}
	return items
}

package autopilot

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jharris119/snake/game/engine"
)

// Plan picks the next direction for a snake whose head is at head.
// It walks a shortest path to the nearest food over cells that are not blocked,
// and when no food is reachable takes the safe step with the most open space.
// If every step is fatal it keeps the current direction.
func Plan(board engine.Board, blocked func(engine.Cell) bool, food []engine.Cell, head engine.Cell, current engine.Direction) engine.Direction {
	order := searchOrder(current)

	if len(food) > 0 {
		if d, ok := nearestFood(board, blocked, food, head, order); ok {
			return d
		}
	}

	best, bestSpace := current, -1
	for _, d := range order {
		next, ok := board.Step(head, d)
		if !ok || blocked(next) {
			continue
		}
		if space := openSpace(board, blocked, next); space > bestSpace {
			best, bestSpace = d, space
		}
	}
	return best
}

// searchOrder tries the current direction first so paths stay straight
func searchOrder(current engine.Direction) []engine.Direction {
	order := make([]engine.Direction, 0, len(engine.Directions))
	if current.Valid() {
		order = append(order, current)
	}
	for _, d := range engine.Directions {
		if d != current {
			order = append(order, d)
		}
	}
	return order
}

// nearestFood runs a breadth-first search from head and returns the first step
// of the shortest path to any food cell
func nearestFood(board engine.Board, blocked func(engine.Cell) bool, food []engine.Cell, head engine.Cell, order []engine.Direction) (engine.Direction, bool) {
	targets := make(map[engine.Cell]bool, len(food))
	for _, c := range food {
		targets[c] = true
	}

	// first[c] is the step out of head that reached c
	first := map[engine.Cell]engine.Direction{}
	queue := make([]engine.Cell, 0, board.Size())

	for _, d := range order {
		next, ok := board.Step(head, d)
		if !ok || blocked(next) {
			continue
		}
		if targets[next] {
			return d, true
		}
		if _, seen := first[next]; !seen {
			first[next] = d
			queue = append(queue, next)
		}
	}

	for len(queue) > 0 {
		cell := queue[0]
		queue = queue[1:]
		for _, d := range order {
			next, ok := board.Step(cell, d)
			if !ok || next == head || blocked(next) {
				continue
			}
			if _, seen := first[next]; seen {
				continue
			}
			first[next] = first[cell]
			if targets[next] {
				return first[next], true
			}
			queue = append(queue, next)
		}
	}
	return 0, false
}

// openSpace counts the free cells reachable from start
func openSpace(board engine.Board, blocked func(engine.Cell) bool, start engine.Cell) int {
	seen := map[engine.Cell]bool{start: true}
	stack := []engine.Cell{start}
	for len(stack) > 0 {
		cell := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range engine.Directions {
			next, ok := board.Step(cell, d)
			if !ok || seen[next] || blocked(next) {
				continue
			}
			seen[next] = true
			stack = append(stack, next)
		}
	}
	return len(seen)
}

// Decide plans the next direction from the game's live state
func Decide(game *engine.Game) engine.Direction {
	var next engine.Direction
	board := game.Board()
	game.View(func(snake *engine.Snake, food *engine.FoodRegistry, current engine.Direction) {
		items := food.Items()
		cells := make([]engine.Cell, len(items))
		for i, item := range items {
			cells[i] = item.Cell
		}
		next = Plan(board, snake.Occupies, cells, snake.Head().Cell, current)
	})
	return next
}

// Pilot steers a game. It is also an engine.Renderer: every head move wakes it
// up to plan the following tick.
type Pilot struct {
	moved chan struct{}
}

// New creates a pilot. Attach it to the game with engine.WithRenderer, usually
// inside an engine.MultiRenderer.
func New() *Pilot {
	return &Pilot{moved: make(chan struct{}, 1)}
}

func (p *Pilot) OnSquareAdded(c engine.Cell, kind engine.SquareKind) {
	if kind != engine.SquareSnake {
		return
	}
	select {
	case p.moved <- struct{}{}:
	default:
	}
}

func (p *Pilot) OnSquareRemoved(engine.Cell) {}
func (p *Pilot) OnFoodExpiring(engine.Cell)  {}

// Run issues a direction command after every move until the game ends or ctx is cancelled.
// It also re-plans every poll interval so newly spawned food is noticed between moves.
func (p *Pilot) Run(ctx context.Context, game *engine.Game, poll time.Duration) error {
	if poll <= 0 {
		poll = 20 * time.Millisecond
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	steer := func() error {
		d := Decide(game)
		if d == game.Direction() {
			return nil
		}
		err := game.HandleCommand(engine.DirectionCommand(d))
		if errors.Is(err, engine.ErrGameOver) {
			return nil
		}
		return err
	}

	if err := steer(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-game.Done():
			if outcome, over := game.Outcome(); over {
				log.Printf("[AUTOPILOT] finished reason=%s len=%d ticks=%d", outcome.Reason, outcome.Length, outcome.Ticks)
			}
			return nil
		case <-p.moved:
		case <-ticker.C:
		}
		if err := steer(); err != nil {
			return err
		}
	}
}

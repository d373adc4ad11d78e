package engine

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

// Game is one self-contained snake game: its own board, snake, food, timers and state.
// All mutation happens under mu, either from a public method or a scheduled tick.
type Game struct {
	mu sync.Mutex

	config   *GameConfig
	board    Board
	clock    Clock
	rng      *rand.Rand
	sched    *Scheduler
	snake    *Snake
	food     *FoodRegistry
	renderer Renderer

	direction Direction
	started   bool
	over      bool
	outcome   Outcome
	ticks     int

	moveTask  TaskID
	spawnTask TaskID
	done      chan struct{}
}

// Option customizes a Game at construction
type Option func(*Game)

// WithClock replaces the wall clock, typically with a ManualClock in tests
func WithClock(clock Clock) Option {
	return func(g *Game) {
		g.clock = clock
	}
}

// WithRenderer attaches the renderer that receives board changes
func WithRenderer(r Renderer) Option {
	return func(g *Game) {
		if r != nil {
			g.renderer = r
		}
	}
}

// WithRand replaces the random source
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) {
		g.rng = rng
	}
}

// NewGame creates a game with the provided configuration. A nil config uses the defaults.
// The snake starts as a single square at the board center.
func NewGame(config *GameConfig, opts ...Option) (*Game, error) {
	if config == nil {
		config = DefaultGameConfig()
	}
	config = config.WithDefaults()
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	board, err := NewBoard(config.Rows, config.Cols)
	if err != nil {
		return nil, err
	}
	direction, err := ParseDirection(config.InitialDirection)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	g := &Game{
		config:    config,
		board:     board,
		clock:     NewRealClock(),
		renderer:  NopRenderer{},
		direction: direction,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		seed := config.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		g.rng = rand.New(rand.NewSource(seed))
	}

	g.sched = NewScheduler(g.clock, &g.mu)
	g.food = NewFoodRegistry(board, config.MaxFood, config.FoodLifetimeMs, g.rng, g.sched)
	g.snake = NewSnake(board.Center(), g.food)
	g.food.SetOccupancy(g.snake)
	g.food.OnExpire(g.handleFoodExpired)

	g.renderer.OnSquareAdded(g.snake.Head().Cell, SquareSnake)
	return g, nil
}

// Start begins the move tick loop and schedules the first food spawn after a random delay
func (g *Game) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.over {
		return ErrGameOver
	}
	if g.started {
		return ErrAlreadyStarted
	}
	g.started = true

	g.scheduleMove()
	g.spawnTask = g.sched.After(g.config.SpawnDelayMs.Pick(g.rng), g.spawnTick)
	return nil
}

// Pause suspends every pending timer until Resume. Pausing twice is a no-op.
func (g *Game) Pause() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkLive(); err != nil {
		return err
	}
	g.sched.Pause()
	return nil
}

// Resume re-arms the timers suspended by Pause
func (g *Game) Resume() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkLive(); err != nil {
		return err
	}
	g.sched.Resume()
	return nil
}

// EndGame forces the terminal state and cancels the move and spawn timers.
// Calling it on a finished game changes nothing.
func (g *Game) EndGame() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.finish(ReasonEnded)
}

// Done is closed when the game reaches its terminal state
func (g *Game) Done() <-chan struct{} {
	return g.done
}

// SetDirection sets the pending direction, applied on the next move tick.
// Reversing into the snake's own neck is accepted.
func (g *Game) SetDirection(d Direction) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.over {
		return ErrGameOver
	}
	g.direction = d
	return nil
}

// HandleCommand applies a command from an input source
func (g *Game) HandleCommand(cmd Command) error {
	switch cmd.Kind {
	case CommandDirection:
		return g.SetDirection(cmd.Direction)
	case CommandPause:
		return g.Pause()
	case CommandResume:
		return g.Resume()
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCommand, cmd.Kind)
	}
}

// State returns a snapshot of the game
func (g *Game) State() *Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := &Snapshot{
		Rows:       g.board.Rows,
		Cols:       g.board.Cols,
		Snake:      g.snake.Cells(),
		Food:       g.food.Items(),
		Direction:  g.direction.String(),
		Length:     g.snake.Len(),
		Started:    g.started,
		Paused:     g.sched.Paused() && !g.over,
		GameOver:   g.over,
		IntervalMs: g.config.TickInterval(g.snake.Len()).Milliseconds(),
		Ticks:      g.ticks,
		ConfigName: g.config.Name,
	}
	if g.over {
		outcome := g.outcome
		s.Outcome = &outcome
	}
	return s
}

// Config returns the game configuration
func (g *Game) Config() *GameConfig {
	return g.config
}

// Board returns the board dimensions
func (g *Game) Board() Board {
	return g.board
}

// Len returns the snake length
func (g *Game) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snake.Len()
}

// Direction returns the pending direction
func (g *Game) Direction() Direction {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.direction
}

// IsOver returns whether the game is over
func (g *Game) IsOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.over
}

// IsPaused returns whether the timers are suspended
func (g *Game) IsPaused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sched.Paused() && !g.over
}

// Outcome returns how the game ended, if it has
func (g *Game) Outcome() (Outcome, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.outcome, g.over
}

// PlaceFood places food on a specific cell, subject to the usual occupancy and cap rules
func (g *Game) PlaceFood(c Cell) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.over {
		return false
	}
	return g.placeFood(&c)
}

// View calls fn with the live snake and food registry under the game lock.
// fn must not retain either value.
func (g *Game) View(fn func(snake *Snake, food *FoodRegistry, direction Direction)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.snake, g.food, g.direction)
}

func (g *Game) checkLive() error {
	if g.over {
		return ErrGameOver
	}
	if !g.started {
		return ErrNotStarted
	}
	return nil
}

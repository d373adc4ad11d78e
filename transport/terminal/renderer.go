package terminal

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/jharris119/snake/game/engine"
)

const (
	snakeRune = '█'
	foodRune  = '●'

	// How long an expired food item stays on screen while it fades
	fadeDuration = 600 * time.Millisecond
)

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	headStyle   = tcell.StyleDefault.Foreground(tcell.ColorLime)
	bodyStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	foodStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	overStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// Renderer draws a game on a tcell screen. Engine callbacks only record the
// change; Draw paints the recorded board, so callbacks never touch the terminal.
type Renderer struct {
	screen tcell.Screen
	board  engine.Board
	now    func() time.Time

	mu      sync.Mutex
	squares map[engine.Cell]engine.SquareKind
	head    engine.Cell
	fading  map[engine.Cell]time.Time
	status  string
	outcome *engine.Outcome
}

// NewRenderer creates a renderer for a board. The board is drawn inside a
// one-cell border starting at the top-left corner of the screen.
func NewRenderer(screen tcell.Screen, board engine.Board) *Renderer {
	return &Renderer{
		screen:  screen,
		board:   board,
		now:     time.Now,
		squares: make(map[engine.Cell]engine.SquareKind),
		fading:  make(map[engine.Cell]time.Time),
	}
}

func (r *Renderer) OnSquareAdded(c engine.Cell, kind engine.SquareKind) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.squares[c] = kind
	delete(r.fading, c)
	if kind == engine.SquareSnake {
		r.head = c
	}
}

func (r *Renderer) OnSquareRemoved(c engine.Cell) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.squares, c)
}

func (r *Renderer) OnFoodExpiring(c engine.Cell) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.squares[c] == engine.SquareFood {
		delete(r.squares, c)
	}
	r.fading[c] = r.now()
}

func (r *Renderer) OnGameOver(outcome engine.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.outcome = &outcome
}

// SetStatus replaces the line printed under the board
func (r *Renderer) SetStatus(status string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.status = status
}

// screenPos maps a board cell to screen coordinates inside the border
func screenPos(c engine.Cell) (x, y int) {
	return c.Col + 1, c.Row + 1
}

// fadeStyle dims expiring food from red toward black
func fadeStyle(progress float64) tcell.Style {
	level := int32(255 * (1 - progress))
	if level < 0 {
		level = 0
	}
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(level, 0, 0))
}

// Draw paints the board, the status line and the game over banner
func (r *Renderer) Draw() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.screen.Clear()
	r.drawBorder()

	for cell, kind := range r.squares {
		x, y := screenPos(cell)
		switch {
		case kind == engine.SquareFood:
			r.screen.SetContent(x, y, foodRune, nil, foodStyle)
		case cell == r.head:
			r.screen.SetContent(x, y, snakeRune, nil, headStyle)
		default:
			r.screen.SetContent(x, y, snakeRune, nil, bodyStyle)
		}
	}

	now := r.now()
	for cell, start := range r.fading {
		progress := float64(now.Sub(start)) / float64(fadeDuration)
		if progress >= 1 {
			delete(r.fading, cell)
			continue
		}
		x, y := screenPos(cell)
		r.screen.SetContent(x, y, foodRune, nil, fadeStyle(progress))
	}

	r.drawText(0, r.board.Rows+2, r.status, statusStyle)
	if r.outcome != nil {
		banner := fmt.Sprintf("GAME OVER (%s) length %d after %d ticks, q to quit",
			r.outcome.Reason, r.outcome.Length, r.outcome.Ticks)
		r.drawText(0, r.board.Rows+3, banner, overStyle)
	}

	r.screen.Show()
}

func (r *Renderer) drawBorder() {
	right, bottom := r.board.Cols+1, r.board.Rows+1
	for x := 1; x < right; x++ {
		r.screen.SetContent(x, 0, '─', nil, borderStyle)
		r.screen.SetContent(x, bottom, '─', nil, borderStyle)
	}
	for y := 1; y < bottom; y++ {
		r.screen.SetContent(0, y, '│', nil, borderStyle)
		r.screen.SetContent(right, y, '│', nil, borderStyle)
	}
	r.screen.SetContent(0, 0, '┌', nil, borderStyle)
	r.screen.SetContent(right, 0, '┐', nil, borderStyle)
	r.screen.SetContent(0, bottom, '└', nil, borderStyle)
	r.screen.SetContent(right, bottom, '┘', nil, borderStyle)
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

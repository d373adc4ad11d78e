package terminal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/jharris119/snake/game/engine"
)

// KeyAction is what a key press asks for
type KeyAction int

const (
	KeyIgnored KeyAction = iota
	KeyCommand
	KeyQuit
)

var runeDirections = map[rune]engine.Direction{
	'w': engine.Up, 'k': engine.Up,
	's': engine.Down, 'j': engine.Down,
	'a': engine.Left, 'h': engine.Left,
	'd': engine.Right, 'l': engine.Right,
}

var keyDirections = map[tcell.Key]engine.Direction{
	tcell.KeyUp:    engine.Up,
	tcell.KeyDown:  engine.Down,
	tcell.KeyLeft:  engine.Left,
	tcell.KeyRight: engine.Right,
}

// MapKey turns a key press into a game command. Arrows, WASD and hjkl steer,
// p or space toggles pause, q, Esc and Ctrl-C quit.
func MapKey(key tcell.Key, ch rune, paused bool) (engine.Command, KeyAction) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return engine.Command{}, KeyQuit
	case tcell.KeyRune:
		switch ch {
		case 'q', 'Q':
			return engine.Command{}, KeyQuit
		case 'p', 'P', ' ':
			if paused {
				return engine.Command{Kind: engine.CommandResume}, KeyCommand
			}
			return engine.Command{Kind: engine.CommandPause}, KeyCommand
		}
		if d, ok := runeDirections[ch]; ok {
			return engine.DirectionCommand(d), KeyCommand
		}
	default:
		if d, ok := keyDirections[key]; ok {
			return engine.DirectionCommand(d), KeyCommand
		}
	}
	return engine.Command{}, KeyIgnored
}

// Player runs one local game: it forwards keys to the game and redraws every frame
type Player struct {
	screen   tcell.Screen
	game     *engine.Game
	renderer *Renderer
	frame    time.Duration
}

// NewPlayer creates a player. The renderer must be the one attached to game.
func NewPlayer(screen tcell.Screen, game *engine.Game, renderer *Renderer) *Player {
	return &Player{
		screen:   screen,
		game:     game,
		renderer: renderer,
		frame:    33 * time.Millisecond,
	}
}

// NewScreen opens the terminal
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.HideCursor()
	return screen, nil
}

// HandleKey applies one key press. It returns false when the player asked to quit.
func (p *Player) HandleKey(key tcell.Key, ch rune) bool {
	cmd, action := MapKey(key, ch, p.game.IsPaused())
	switch action {
	case KeyQuit:
		return false
	case KeyCommand:
		p.apply(cmd)
	}
	return true
}

// apply forwards a command. Keys pressed before the start or after game over are
// expected and dropped quietly; anything else is logged.
func (p *Player) apply(cmd engine.Command) {
	err := p.game.HandleCommand(cmd)
	if err == nil || errors.Is(err, engine.ErrNotStarted) || errors.Is(err, engine.ErrGameOver) {
		return
	}
	log.Printf("Warning: command %s rejected: %v", cmd.Kind, err)
}

func (p *Player) status() string {
	state := p.game.State()
	label := "running"
	switch {
	case state.GameOver:
		label = "over"
	case state.Paused:
		label = "paused"
	}
	return fmt.Sprintf("%s  length %d  %dms/move  %s  [p]ause [q]uit",
		state.ConfigName, state.Length, state.IntervalMs, label)
}

// Run starts the game and plays until the player quits or ctx is cancelled
func (p *Player) Run(ctx context.Context) error {
	if err := p.game.Start(); err != nil && !errors.Is(err, engine.ErrAlreadyStarted) {
		return err
	}

	stop := make(chan struct{})
	defer close(stop)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	ticker := time.NewTicker(p.frame)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !p.HandleKey(ev.Key(), ev.Rune()) {
					p.game.EndGame()
					return nil
				}
			case *tcell.EventResize:
				p.screen.Sync()
			}

		case <-ticker.C:
			p.renderer.SetStatus(p.status())
			p.renderer.Draw()
		}
	}
}

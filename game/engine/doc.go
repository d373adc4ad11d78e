// Package engine provides the core game logic for the snake game.
//
// The engine package implements the game mechanics including:
//   - Board and cell model with bounds checks
//   - Direction lookup table producing neighbor cells
//   - The snake body with its occupancy set (extend / shrink)
//   - The food registry with per-item expiry and a concurrent cap
//   - A pausable scheduler driving move ticks and food spawn ticks
//   - Configuration loading (JSON or YAML) and validation
//
// Core Types:
//
// Game owns one board, snake, food registry and scheduler, and implements the
// Engine interface. Renderer receives board changes; Command carries input
// from whatever drives the game (WebSocket clients, a terminal, the autopilot).
//
// Usage:
//
//	config, err := engine.LoadGameConfig("configs/classic.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	game, err := engine.NewGame(config, engine.WithRenderer(renderer))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	game.Start()
//	game.SetDirection(engine.Left)
//	<-game.Done()
//
// Game Rules:
//
// Every move tick the head advances one cell in the pending direction. Leaving
// the board or running into the snake's own body ends the game. Landing on food
// grows the snake by one; otherwise the tail follows. The move interval is
// max(min_interval, turn_interval - speedup*(length-1)), so the snake speeds up
// as it grows. Food appears at random cells once per turn interval after a
// random startup delay, up to max_food at a time, and vanishes when its
// lifetime runs out.
//
// Concurrency:
//
// Each Game serializes its own state behind a mutex. Timer callbacks take the
// same mutex, so ticks never interleave. Tests drive time with ManualClock.
package engine

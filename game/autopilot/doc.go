// Package autopilot steers a snake without a human at the keyboard.
//
// Plan is a pure function over the board: a breadth-first search from the head
// to the nearest food through free cells, and when no food can be reached, the
// safe step that leaves the most open space. Pilot wraps Plan in a loop that
// re-plans after every move and applies the result as a direction command.
//
//	pilot := autopilot.New()
//	game, _ := engine.NewGame(config, engine.WithRenderer(engine.MultiRenderer{screen, pilot}))
//	go pilot.Run(ctx, game, 0)
//	game.Start()
package autopilot

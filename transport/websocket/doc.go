// Package websocket streams snake games to browser clients.
//
// A central Hub owns every connection, grouped by session ID. Clients connect
// with /ws?session=<id>, receive the session's board changes as they happen,
// and send command frames back:
//
//	{"type":"direction","direction":"left"}
//	{"type":"pause"}
//	{"type":"resume"}
//
// Outgoing messages carry an event name: square_added, square_removed,
// food_expiring, game_over, state_update or error. With a StateProvider set,
// the first message a client gets is a state_update with the whole board.
//
// Usage:
//
//	hub := websocket.NewHub()
//	hub.SetCommandHandler(func(id string, cmd engine.Command) error {
//		_, err := gameService.HandleCommand(ctx, id, cmd)
//		return err
//	})
//	hub.SetStateProvider(func(id string) *engine.Snapshot {
//		state, _ := gameService.GetGameState(ctx, id)
//		return state
//	})
//	go hub.Run()
//
//	sessions := session.NewManager(session.WithRendererFactory(hub.RendererFor))
//
// Concurrency:
//
// The session map is only touched by the Run loop. Renderers run under a
// game's lock, so they hand messages to a buffered queue and never block;
// when the queue is full the message is dropped and logged.
package websocket

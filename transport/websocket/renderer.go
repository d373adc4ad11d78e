package websocket

import "github.com/jharris119/snake/game/engine"

// sessionRenderer turns engine renderer events into session broadcasts
type sessionRenderer struct {
	hub       *Hub
	sessionID string
}

// RendererFor returns a renderer that pushes a session's board changes to its clients.
// It matches service.RendererFactory.
func (h *Hub) RendererFor(sessionID string) engine.Renderer {
	return &sessionRenderer{hub: h, sessionID: sessionID}
}

func (r *sessionRenderer) OnSquareAdded(c engine.Cell, kind engine.SquareKind) {
	r.hub.enqueue(&Message{SessionID: r.sessionID, Event: EventSquareAdded, Cell: &c, Kind: kind})
}

func (r *sessionRenderer) OnSquareRemoved(c engine.Cell) {
	r.hub.enqueue(&Message{SessionID: r.sessionID, Event: EventSquareRemoved, Cell: &c})
}

func (r *sessionRenderer) OnFoodExpiring(c engine.Cell) {
	r.hub.enqueue(&Message{SessionID: r.sessionID, Event: EventFoodExpiring, Cell: &c, Kind: engine.SquareFood})
}

func (r *sessionRenderer) OnGameOver(outcome engine.Outcome) {
	r.hub.enqueue(&Message{SessionID: r.sessionID, Event: EventGameOver, Outcome: &outcome})
}

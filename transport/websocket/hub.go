package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jharris119/snake/game/engine"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Outbound messages queued per client before it is dropped
	clientBufferSize = 256

	// Messages queued for the hub loop. Renderer calls never block on it.
	broadcastBufferSize = 4096
)

// Event names carried in Message.Event
const (
	EventSquareAdded   = "square_added"
	EventSquareRemoved = "square_removed"
	EventFoodExpiring  = "food_expiring"
	EventGameOver      = "game_over"
	EventStateUpdate   = "state_update"
	EventError         = "error"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		return true
	},
}

// Message represents a WebSocket message sent to clients
type Message struct {
	SessionID string            `json:"session_id"`
	Event     string            `json:"event"`
	Cell      *engine.Cell      `json:"cell,omitempty"`
	Kind      engine.SquareKind `json:"kind,omitempty"`
	GameState *engine.Snapshot  `json:"game_state,omitempty"`
	Outcome   *engine.Outcome   `json:"outcome,omitempty"`
	Data      interface{}       `json:"data,omitempty"`
}

// ClientMessage is a command frame sent by a client:
// {"type":"direction","direction":"left"}, {"type":"pause"}, {"type":"resume"}
type ClientMessage struct {
	Type      string `json:"type"`
	Direction string `json:"direction,omitempty"`
}

// CommandHandler applies a client command to a session's game
type CommandHandler func(sessionID string, cmd engine.Command) error

// StateProvider returns a session's current snapshot, or nil if it has none.
// It is called from the hub loop and must not wait on the hub.
type StateProvider func(sessionID string) *engine.Snapshot

// Client represents a WebSocket client
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

type directMessage struct {
	client *Client
	data   []byte
}

// Hub maintains the set of active clients and broadcasts messages.
// The sessions map is only touched by the Run loop.
type Hub struct {
	// Registered clients by session ID
	sessions map[string]map[*Client]bool

	// Outbound messages for every client of a session
	broadcast chan *Message

	// Replies for a single client
	direct chan *directMessage

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	commands CommandHandler
	states   StateProvider
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, broadcastBufferSize),
		direct:     make(chan *directMessage, clientBufferSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// SetCommandHandler installs the handler for client command frames. Call before Run.
func (h *Hub) SetCommandHandler(handler CommandHandler) {
	h.commands = handler
}

// SetStateProvider installs the source of the snapshot each new client receives
// before any deltas. Call before Run.
func (h *Hub) SetStateProvider(provider StateProvider) {
	h.states = provider
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)

		case reply := <-h.direct:
			h.sendDirect(reply)
		}
	}
}

// ServeWS handles WebSocket requests from clients
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, clientBufferSize),
		sessionID: sessionID,
	}

	client.hub.register <- client

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}

// BroadcastToSession sends a game state update to all clients in a session
func (h *Hub) BroadcastToSession(sessionID string, state *engine.Snapshot) {
	h.enqueue(&Message{
		SessionID: sessionID,
		GameState: state,
		Event:     EventStateUpdate,
	})
}

// BroadcastEvent sends a custom event to all clients in a session
func (h *Hub) BroadcastEvent(sessionID string, event string, data interface{}) {
	h.enqueue(&Message{
		SessionID: sessionID,
		Event:     event,
		Data:      data,
	})
}

// enqueue hands a message to the Run loop without blocking. A full queue drops the message.
func (h *Hub) enqueue(message *Message) {
	select {
	case h.broadcast <- message:
	default:
		log.Printf("Warning: broadcast queue full, dropping %s for session %s", message.Event, message.SessionID)
	}
}

// registerClient adds a client to a session
func (h *Hub) registerClient(client *Client) {
	if h.sessions[client.sessionID] == nil {
		h.sessions[client.sessionID] = make(map[*Client]bool)
	}
	h.sessions[client.sessionID][client] = true

	log.Printf("Client registered for session %s (total clients: %d)",
		client.sessionID, len(h.sessions[client.sessionID]))

	h.sendBaseline(client)
}

// sendBaseline queues the session's full state so the client can draw the board
// before applying deltas. Deltas queued after the snapshot was taken follow it.
func (h *Hub) sendBaseline(client *Client) {
	if h.states == nil {
		return
	}
	state := h.states(client.sessionID)
	if state == nil {
		return
	}

	data, err := json.Marshal(&Message{
		SessionID: client.sessionID,
		Event:     EventStateUpdate,
		GameState: state,
	})
	if err != nil {
		log.Printf("Failed to marshal baseline state: %v", err)
		return
	}
	select {
	case client.send <- data:
	default:
		h.unregisterClient(client)
	}
}

// unregisterClient removes a client from a session
func (h *Hub) unregisterClient(client *Client) {
	if clients, ok := h.sessions[client.sessionID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)

			// Clean up empty sessions
			if len(clients) == 0 {
				delete(h.sessions, client.sessionID)
			}

			log.Printf("Client unregistered from session %s (remaining clients: %d)",
				client.sessionID, len(clients))
		}
	}
}

// broadcastMessage sends a message to all clients in a session
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal broadcast message: %v", err)
		return
	}

	if clients, ok := h.sessions[message.SessionID]; ok {
		for client := range clients {
			select {
			case client.send <- data:
			default:
				h.unregisterClient(client)
			}
		}
	}
}

// sendDirect delivers a reply to one client if it is still registered
func (h *Hub) sendDirect(reply *directMessage) {
	clients, ok := h.sessions[reply.client.sessionID]
	if !ok || !clients[reply.client] {
		return
	}
	select {
	case reply.client.send <- reply.data:
	default:
		h.unregisterClient(reply.client)
	}
}

// reply queues an error or acknowledgement for a single client
func (c *Client) reply(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal reply: %v", err)
		return
	}
	select {
	case c.hub.direct <- &directMessage{client: c, data: data}:
	default:
	}
}

// handleFrame parses one client frame and forwards it as a command
func (c *Client) handleFrame(frame []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(frame, &msg); err != nil {
		c.reply(&Message{SessionID: c.sessionID, Event: EventError, Data: "invalid message"})
		return
	}

	cmd, err := engine.ParseCommand(msg.Type, msg.Direction)
	if err != nil {
		c.reply(&Message{SessionID: c.sessionID, Event: EventError, Data: err.Error()})
		return
	}

	if c.hub.commands == nil {
		return
	}
	if err := c.hub.commands(c.sessionID, cmd); err != nil {
		c.reply(&Message{SessionID: c.sessionID, Event: EventError, Data: err.Error()})
	}
}

// readPump pumps command frames from the WebSocket connection to the command handler
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
		c.handleFrame(frame)
	}
}

// writePump pumps messages from the hub to the WebSocket connection.
// Each message is its own text frame.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

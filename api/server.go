package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/jharris119/snake/game/engine"
	"github.com/jharris119/snake/game/service"
	"github.com/jharris119/snake/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server. hub may be nil.
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	// Unified view of several sessions (must be before {id} pattern)
	api.HandleFunc("/sessions/unified", s.handleUnifiedSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Game operations
	api.HandleFunc("/sessions/{id}/state", s.handleGetGameState).Methods("GET")
	api.HandleFunc("/sessions/{id}/start", s.handleAction(s.startGame)).Methods("POST")
	api.HandleFunc("/sessions/{id}/pause", s.handleAction(s.pauseGame)).Methods("POST")
	api.HandleFunc("/sessions/{id}/resume", s.handleAction(s.resumeGame)).Methods("POST")
	api.HandleFunc("/sessions/{id}/end", s.handleAction(s.endGame)).Methods("POST")
	api.HandleFunc("/sessions/{id}/direction", s.handleAction(s.changeDirection)).Methods("POST")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// Router exposes the mux so callers can mount extra handlers such as /mcp
func (s *Server) Router() *mux.Router {
	return s.router
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{"error": message, "code": status})
}

// statusFor maps service and engine errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrConfigNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidDirection),
		errors.Is(err, engine.ErrInvalidCommand),
		errors.Is(err, engine.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrGameOver),
		errors.Is(err, engine.ErrAlreadyStarted),
		errors.Is(err, engine.ErrNotStarted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, statusFor(err), err.Error())
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID   string `json:"config_id,omitempty"`
		ConfigName string `json:"config_name,omitempty"` // Deprecated, use config_id
		AutoStart  bool   `json:"auto_start,omitempty"`
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	configID := req.ConfigID
	if configID == "" && req.ConfigName != "" {
		configID = req.ConfigName
	}

	session, err := s.service.CreateSession(r.Context(), configID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if req.AutoStart {
		result, err := s.service.StartGame(r.Context(), session.ID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		session.GameState = result.GameState
	}

	if state := session.GameState; state != nil {
		fmt.Printf("[GAME] session=%s created config=%s board=%dx%d\n",
			session.ID, session.ConfigName, state.Rows, state.Cols)
	}

	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	total := len(sessions)

	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of sessions to return

	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.Slice(sessions, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		} else {
			ti, tj = sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	limit := len(sessions)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(sessions) {
			limit = l
		}
	}
	sessions = sessions[:limit]

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"total":    total,
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	session, err := s.service.GetSession(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		respondServiceError(w, err)
		return
	}

	fmt.Printf("[GAME] session=%s deleted\n", sessionID)

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Game Operation Handlers

func (s *Server) handleGetGameState(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	state, err := s.service.GetGameState(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

// handleAction runs a lifecycle or input operation, broadcasts the new state and logs one line
func (s *Server) handleAction(action func(r *http.Request, sessionID string) (*service.ActionResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := mux.Vars(r)["id"]

		result, err := action(r, sessionID)
		if err != nil {
			fmt.Printf("[GAME] session=%s error=%q\n", sessionID, err.Error())
			respondServiceError(w, err)
			return
		}

		if s.hub != nil && result.GameState != nil {
			s.hub.BroadcastToSession(sessionID, result.GameState)
		}

		if state := result.GameState; state != nil {
			status := "RUNNING"
			switch {
			case state.GameOver:
				status = "OVER"
			case state.Paused:
				status = "PAUSED"
			case !state.Started:
				status = "READY"
			}
			fmt.Printf("[GAME] session=%s %s dir=%s len=%d interval=%dms status=%s\n",
				sessionID, result.Action, state.Direction, state.Length, state.IntervalMs, status)
		}

		respondJSON(w, http.StatusOK, result)
	}
}

func (s *Server) startGame(r *http.Request, id string) (*service.ActionResult, error) {
	return s.service.StartGame(r.Context(), id)
}

func (s *Server) pauseGame(r *http.Request, id string) (*service.ActionResult, error) {
	return s.service.PauseGame(r.Context(), id)
}

func (s *Server) resumeGame(r *http.Request, id string) (*service.ActionResult, error) {
	return s.service.ResumeGame(r.Context(), id)
}

func (s *Server) endGame(r *http.Request, id string) (*service.ActionResult, error) {
	return s.service.EndGame(r.Context(), id)
}

func (s *Server) changeDirection(r *http.Request, id string) (*service.ActionResult, error) {
	var req struct {
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: invalid request body", engine.ErrInvalidCommand)
	}
	return s.service.ChangeDirection(r.Context(), id, req.Direction)
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	configName := mux.Vars(r)["name"]

	for _, ext := range engine.ConfigExtensions {
		configName = strings.TrimSuffix(configName, ext)
	}

	config, err := s.service.LoadConfig(r.Context(), configName)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, config)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	var gameConfig engine.GameConfig

	if err := json.NewDecoder(r.Body).Decode(&gameConfig); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if gameConfig.Name == "" {
		respondError(w, http.StatusBadRequest, "Config name is required")
		return
	}

	if err := s.service.SaveConfig(r.Context(), gameConfig.Name, &gameConfig); err != nil {
		respondError(w, statusFor(err), fmt.Sprintf("Failed to save config: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Configuration saved successfully",
		"config_id": gameConfig.Name,
	})
}

// Unified Sessions Handler

func (s *Server) handleUnifiedSessions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var sessions []*service.SessionInfo

	if sessionIDs := query.Get("sessionIds"); sessionIDs != "" {
		ids := strings.Split(sessionIDs, ",")
		sessions = make([]*service.SessionInfo, 0, len(ids))
		for _, id := range ids {
			id = strings.TrimSpace(id)
			if id != "" {
				session, err := s.service.GetSession(r.Context(), id)
				if err == nil {
					sessions = append(sessions, session)
				}
			}
		}
	} else {
		allSessions, err := s.service.ListSessions(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		configName := query.Get("configName")
		sessions = make([]*service.SessionInfo, 0, len(allSessions))
		for _, session := range allSessions {
			if configName == "" || session.ConfigName == configName {
				sessions = append(sessions, session)
			}
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ID < sessions[j].ID
	})

	// Leaderboard numbers across the selected sessions
	longest, running := 0, 0
	entries := make([]map[string]interface{}, 0, len(sessions))
	for _, session := range sessions {
		if state := session.GameState; state != nil {
			if state.Length > longest {
				longest = state.Length
			}
			if state.Started && !state.GameOver {
				running++
			}
		}
		entries = append(entries, map[string]interface{}{
			"session_id":    session.ID,
			"config_name":   session.ConfigName,
			"game_state":    session.GameState,
			"created_at":    session.CreatedAt,
			"last_accessed": session.LastAccessedAt,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":          len(entries),
		"running":        running,
		"longest_length": longest,
		"sessions":       entries,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}
	if s.hub == nil {
		http.Error(w, "WebSocket not available", http.StatusServiceUnavailable)
		return
	}

	session, err := s.service.GetSession(r.Context(), sessionID)
	if err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	// Clients share the canonical ID so broadcasts reach them whatever case they used
	s.hub.ServeWS(w, r, session.ID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

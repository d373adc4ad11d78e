package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/jharris119/snake/game/engine"
	"github.com/jharris119/snake/game/service"
)

var (
	ErrSessionNotFound      = service.ErrSessionNotFound
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

// maxIDAttempts bounds retries when a generated ID is already taken
const maxIDAttempts = 16

// Manager handles game session lifecycle
type Manager struct {
	sessions  map[string]*service.Session
	renderers service.RendererFactory
	gameOpts  []engine.Option
	mu        sync.RWMutex
}

// Option configures a Manager
type Option func(*Manager)

// WithRendererFactory attaches a renderer to every game the manager creates
func WithRendererFactory(factory service.RendererFactory) Option {
	return func(m *Manager) {
		m.renderers = factory
	}
}

// WithGameOptions passes extra engine options (a shared clock in tests) to every new game
func WithGameOptions(opts ...engine.Option) Option {
	return func(m *Manager) {
		m.gameOpts = append(m.gameOpts, opts...)
	}
}

// NewManager creates a new session manager
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*service.Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create creates a new session with the given ID and configuration.
// An empty ID gets a random 4-character one.
func (m *Manager) Create(id string, config *engine.GameConfig) (*service.Session, error) {
	if strings.TrimSpace(id) != id {
		return nil, ErrInvalidSessionID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		for attempt := 0; attempt < maxIDAttempts; attempt++ {
			candidate := m.generateSessionID()
			if !m.sessionExists(candidate) {
				id = candidate
				break
			}
		}
		if id == "" {
			return nil, fmt.Errorf("%w: could not generate a free ID", ErrSessionAlreadyExists)
		}
	}

	// Check if session already exists (case-insensitive)
	if m.sessionExists(id) {
		return nil, ErrSessionAlreadyExists
	}

	opts := append([]engine.Option{}, m.gameOpts...)
	if m.renderers != nil {
		opts = append(opts, engine.WithRenderer(m.renderers(id)))
	}

	game, err := engine.NewGame(config, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	now := time.Now()
	session := &service.Session{
		ID:             id,
		Game:           game,
		Config:         game.Config(),
		CreatedAt:      now,
		LastAccessedAt: now,
	}

	m.sessions[strings.ToLower(id)] = session
	return session, nil
}

// Get retrieves a session by ID (case-insensitive)
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// GetOrCreate gets an existing session or creates a new one
func (m *Manager) GetOrCreate(id string, config *engine.GameConfig) (*service.Session, error) {
	session, err := m.Get(id)
	if err == nil {
		return session, nil
	}

	if errors.Is(err, ErrSessionNotFound) {
		return m.Create(id, config)
	}

	return nil, err
}

// List returns all active sessions
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}

	return result
}

// Delete removes a session and ends its game so no timers outlive it
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	lowerID := strings.ToLower(id)
	session, exists := m.sessions[lowerID]
	if exists {
		delete(m.sessions, lowerID)
	}
	m.mu.Unlock()

	if !exists {
		return ErrSessionNotFound
	}

	session.Game.EndGame()
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return ErrSessionNotFound
	}

	session.Touch(time.Now())
	return nil
}

// CleanupExpiredSessions removes sessions that haven't been accessed in the given duration
// and ends their games
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	cutoff := time.Now().Add(-maxAge)
	var expired []*service.Session

	for id, session := range m.sessions {
		if session.LastAccessed().Before(cutoff) {
			delete(m.sessions, id)
			expired = append(expired, session)
		}
	}
	m.mu.Unlock()

	for _, session := range expired {
		session.Game.EndGame()
	}
	return len(expired)
}

// StartJanitor runs CleanupExpiredSessions every interval until stop is closed
func (m *Manager) StartJanitor(interval, maxAge time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if removed := m.CleanupExpiredSessions(maxAge); removed > 0 {
					log.Printf("Cleaned up %d idle sessions", removed)
				}
			case <-stop:
				return
			}
		}
	}()
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// generateSessionID generates a random 4-character session ID
func (m *Manager) generateSessionID() string {
	// Generate 2 random bytes (4 hex characters)
	bytes := make([]byte, 2)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// sessionExists checks if a session exists (case-insensitive)
func (m *Manager) sessionExists(id string) bool {
	_, exists := m.sessions[strings.ToLower(id)]
	return exists
}

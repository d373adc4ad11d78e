package service

import (
	"context"
	"sync"
	"time"

	"github.com/jharris119/snake/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Lifecycle
	StartGame(ctx context.Context, sessionID string) (*ActionResult, error)
	PauseGame(ctx context.Context, sessionID string) (*ActionResult, error)
	ResumeGame(ctx context.Context, sessionID string) (*ActionResult, error)
	EndGame(ctx context.Context, sessionID string) (*ActionResult, error)

	// Input
	ChangeDirection(ctx context.Context, sessionID, direction string) (*ActionResult, error)
	HandleCommand(ctx context.Context, sessionID string, cmd engine.Command) (*ActionResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.Snapshot, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.GameConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// RendererFactory builds the renderer a new session's game reports to
type RendererFactory func(sessionID string) engine.Renderer

// Session represents an active game session.
// LastAccessedAt may be set at construction; afterwards use Touch and LastAccessed.
type Session struct {
	ID             string
	Game           *engine.Game
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time

	accessMu sync.Mutex
}

// Touch records an access at t
func (s *Session) Touch(t time.Time) {
	s.accessMu.Lock()
	defer s.accessMu.Unlock()
	s.LastAccessedAt = t
}

// LastAccessed returns the time of the most recent access
func (s *Session) LastAccessed() time.Time {
	s.accessMu.Lock()
	defer s.accessMu.Unlock()
	return s.LastAccessedAt
}

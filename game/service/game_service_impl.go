package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jharris119/snake/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.ConfigID == configName {
				return cfg.ConfigID
			}
		}
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new game session. The game is created idle; StartGame begins the ticks.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v: %w", configName, configIDs, err)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations: %w", configName, err)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessed(),
		GameState:      session.Game.State(),
		GameConfig:     session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	return s.sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session and ends its game
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// StartGame begins the move and spawn ticks
func (s *gameServiceImpl) StartGame(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.act(sessionID, "start", "Game started", func(g *engine.Game) error {
		return g.Start()
	})
}

// PauseGame suspends every timer of the game
func (s *gameServiceImpl) PauseGame(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.act(sessionID, "pause", "Game paused", func(g *engine.Game) error {
		return g.Pause()
	})
}

// ResumeGame re-arms the timers suspended by PauseGame
func (s *gameServiceImpl) ResumeGame(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.act(sessionID, "resume", "Game resumed", func(g *engine.Game) error {
		return g.Resume()
	})
}

// EndGame forces the game into its terminal state. Ending a finished game succeeds.
func (s *gameServiceImpl) EndGame(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.act(sessionID, "end", "Game ended", func(g *engine.Game) error {
		g.EndGame()
		return nil
	})
}

// ChangeDirection sets the pending direction applied on the next move tick
func (s *gameServiceImpl) ChangeDirection(ctx context.Context, sessionID, direction string) (*ActionResult, error) {
	d, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, err
	}
	return s.HandleCommand(ctx, sessionID, engine.DirectionCommand(d))
}

// HandleCommand applies an input command to the session's game
func (s *gameServiceImpl) HandleCommand(ctx context.Context, sessionID string, cmd engine.Command) (*ActionResult, error) {
	action := string(cmd.Kind)
	message := fmt.Sprintf("Command %s applied", cmd.Kind)
	if cmd.Kind == engine.CommandDirection {
		message = fmt.Sprintf("Direction set to %s", cmd.Direction)
	}
	return s.act(sessionID, action, message, func(g *engine.Game) error {
		return g.HandleCommand(cmd)
	})
}

// GetGameState returns the current game snapshot
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	return session.Game.State(), nil
}

// ListConfigs returns available configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a configuration
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	name := strings.TrimSpace(configName)
	if name == "" {
		return fmt.Errorf("%w: config name is required", engine.ErrInvalidConfig)
	}
	return s.configs.SaveConfig(name, config)
}

// act runs fn against the session's game and wraps the resulting snapshot
func (s *gameServiceImpl) act(sessionID, action, message string, fn func(g *engine.Game) error) (*ActionResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	if err := fn(session.Game); err != nil {
		return nil, fmt.Errorf("%s failed: %w", action, err)
	}

	return &ActionResult{
		Success:   true,
		Action:    action,
		Message:   message,
		GameState: session.Game.State(),
	}, nil
}

// lookup fetches a session and refreshes its access time
func (s *gameServiceImpl) lookup(sessionID string) (*Session, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return session, nil
}

func (s *gameServiceImpl) sessionInfo(session *Session) *SessionInfo {
	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessed(),
		GameState:      session.Game.State(),
		GameConfig:     session.Config,
	}
}

package service

import (
	"time"

	"github.com/jharris119/snake/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.Snapshot   `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// ActionResult is returned by the lifecycle and input operations
type ActionResult struct {
	Success   bool             `json:"success"`
	Action    string           `json:"action"`
	Message   string           `json:"message"`
	GameState *engine.Snapshot `json:"game_state"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename       string `json:"filename"`
	ConfigID       string `json:"config_id"` // The identifier to use for session creation
	Name           string `json:"name"`      // Display name
	Description    string `json:"description"`
	Rows           int    `json:"rows"`
	Cols           int    `json:"cols"`
	TurnIntervalMs int    `json:"turn_interval_ms"`
	MinIntervalMs  int    `json:"min_interval_ms"`
	MaxFood        int    `json:"max_food"`
}

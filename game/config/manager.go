package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jharris119/snake/game/engine"
	"github.com/jharris119/snake/game/service"
)

var (
	ErrConfigNotFound = service.ErrConfigNotFound
	ErrInvalidConfig  = engine.ErrInvalidConfig
)

// DefaultConfigID is loaded as the default when present
const DefaultConfigID = "classic"

// Manager handles game configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.GameConfig
	configs       map[string]*engine.GameConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	// Ensure config directory exists
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.GameConfig),
	}

	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// configID strips a known extension from a config file name
func configID(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	for _, known := range engine.ConfigExtensions {
		if ext == known {
			return strings.TrimSuffix(name, filepath.Ext(name))
		}
	}
	return name
}

// LoadConfig loads a configuration by ID, with or without its .json/.yaml extension
func (m *Manager) LoadConfig(name string) (*engine.GameConfig, error) {
	id := configID(name)

	m.mu.RLock()
	if config, exists := m.configs[id]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[id]; exists {
		return config, nil
	}

	config, err := m.readConfig(name)
	if err != nil {
		return nil, err
	}

	m.configs[id] = config
	return config, nil
}

// readConfig resolves and decodes a config file without touching the cache
func (m *Manager) readConfig(name string) (*engine.GameConfig, error) {
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, fmt.Errorf("%w: %q", ErrConfigNotFound, name)
	}

	configPath, err := engine.ResolveConfigPath(m.configDir, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigNotFound, err)
	}

	config, err := engine.LoadGameConfig(configPath)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidConfig) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return config, nil
}

// ListConfigs returns information about all available configurations, sorted by ID
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id := configID(entry.Name())
		if id == entry.Name() {
			continue
		}

		config, err := m.LoadConfig(entry.Name())
		if err != nil {
			// Skip invalid configs
			fmt.Printf("Warning: Skipping config %s: %v\n", entry.Name(), err)
			continue
		}

		configs = append(configs, &service.ConfigInfo{
			Filename:       entry.Name(),
			ConfigID:       id,
			Name:           config.Name,
			Description:    config.Description,
			Rows:           config.Rows,
			Cols:           config.Cols,
			TurnIntervalMs: config.TurnIntervalMs,
			MinIntervalMs:  config.MinIntervalMs,
			MaxFood:        config.MaxFood,
		})
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].ConfigID < configs[j].ConfigID
	})
	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.GameConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// ReloadConfig re-reads one configuration from disk, replacing the cached copy
func (m *Manager) ReloadConfig(name string) error {
	config, err := m.readConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.configs[configID(name)] = config
	return nil
}

// RefreshCache drops every cached configuration and reloads the default
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*engine.GameConfig)
	m.mu.Unlock()

	return m.loadDefaultConfig()
}

// ValidateConfig checks a configuration without saving it
func (m *Manager) ValidateConfig(config *engine.GameConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if strings.TrimSpace(config.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	return engine.ValidateGameConfig(config.WithDefaults())
}

// Count returns the number of cached configurations
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.configs)
}

// loadDefaultConfig loads the default configuration
func (m *Manager) loadDefaultConfig() error {
	config, err := m.LoadConfig(DefaultConfigID)
	if err != nil {
		// Try to load the first available config
		configs, listErr := m.ListConfigs()
		if listErr != nil || len(configs) == 0 {
			m.setDefault(engine.DefaultGameConfig())
			return nil
		}

		config, err = m.LoadConfig(configs[0].Filename)
		if err != nil {
			m.setDefault(engine.DefaultGameConfig())
			return nil
		}
	}

	m.setDefault(config)
	return nil
}

func (m *Manager) setDefault(config *engine.GameConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
}

// SaveConfig saves a configuration to disk. A .yaml or .yml name is written as YAML, anything else as JSON.
func (m *Manager) SaveConfig(name string, config *engine.GameConfig) error {
	if err := m.ValidateConfig(config); err != nil {
		return err
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: invalid config name %q", ErrInvalidConfig, name)
	}

	full := config.WithDefaults()

	filename := name
	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(full)
	case ".json":
		data, err = json.MarshalIndent(full, "", "  ")
	default:
		filename = name + ".json"
		data, err = json.MarshalIndent(full, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(m.configDir, filename)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[configID(name)] = full
	m.mu.Unlock()

	return nil
}

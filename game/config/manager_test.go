package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/jharris119/snake/game/engine"
)

func createValidConfig() *engine.GameConfig {
	config := engine.DefaultGameConfig()
	config.Name = "Test Config"
	config.Description = "Test configuration"
	return config
}

func writeConfigFile(t *testing.T, dir, name string, config *engine.GameConfig) {
	t.Helper()

	filename := name
	if filepath.Ext(filename) == "" {
		filename = name + ".json"
	}

	var data []byte
	var err error
	if ext := filepath.Ext(filename); ext == ".yaml" || ext == ".yml" {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		dir := t.TempDir()
		classic := createValidConfig()
		classic.Name = "Classic"
		writeConfigFile(t, dir, "classic", classic)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "Classic" {
			t.Errorf("Expected classic to be the default, got %s", manager.GetDefault().Name)
		}
	})

	t.Run("non-existent directory", func(t *testing.T) {
		if _, err := NewManager("/non/existent/path"); err == nil {
			t.Error("Expected error for non-existent directory")
		}
	})

	t.Run("falls back to first config", func(t *testing.T) {
		dir := t.TempDir()
		other := createValidConfig()
		other.Name = "Other"
		writeConfigFile(t, dir, "other.yaml", other)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "Other" {
			t.Errorf("Expected the only config to become the default, got %s", manager.GetDefault().Name)
		}
	})

	t.Run("missing default config", func(t *testing.T) {
		manager, err := NewManager(t.TempDir())
		if err != nil {
			t.Fatalf("NewManager should succeed even without config files, got error: %v", err)
		}
		defaultConfig := manager.GetDefault()
		if defaultConfig == nil || defaultConfig.Rows != engine.DefaultRows {
			t.Errorf("Expected the built-in default config, got %+v", defaultConfig)
		}
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	jsonConfig := createValidConfig()
	jsonConfig.Name = "Json"
	writeConfigFile(t, dir, "json_config", jsonConfig)

	yamlConfig := createValidConfig()
	yamlConfig.Name = "Yaml"
	yamlConfig.Rows = 30
	writeConfigFile(t, dir, "yaml_config.yaml", yamlConfig)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	tests := []struct {
		name     string
		id       string
		expected string
		wantErr  error
	}{
		{"json without extension", "json_config", "Json", nil},
		{"json with extension", "json_config.json", "Json", nil},
		{"yaml without extension", "yaml_config", "Yaml", nil},
		{"yaml with extension", "yaml_config.yaml", "Yaml", nil},
		{"missing", "missing", "", ErrConfigNotFound},
		{"path traversal", "../etc/passwd", "", ErrConfigNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := manager.LoadConfig(tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			if config.Name != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, config.Name)
			}
		})
	}

	yamlLoaded, _ := manager.LoadConfig("yaml_config")
	if yamlLoaded.Rows != 30 {
		t.Errorf("Expected YAML rows 30, got %d", yamlLoaded.Rows)
	}
}

func TestManager_LoadInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"rows": 1}`), 0644)

	manager, _ := NewManager(dir)
	if _, err := manager.LoadConfig("broken"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	configs := []struct {
		file string
		name string
		rows int
	}{
		{"classic.json", "Classic", 15},
		{"big.yaml", "Big", 40},
		{"tiny.yml", "Tiny", 5},
	}
	for _, cfg := range configs {
		config := createValidConfig()
		config.Name = cfg.name
		config.Rows = cfg.rows
		config.MaxFood = 3
		writeConfigFile(t, dir, cfg.file, config)
	}
	os.WriteFile(filepath.Join(dir, "README.md"), []byte("not a config"), 0644)
	os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	list, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("Expected 3 configs, got %d", len(list))
	}

	expectedOrder := []string{"big", "classic", "tiny"}
	for i, info := range list {
		if info.ConfigID != expectedOrder[i] {
			t.Errorf("Position %d: expected %s, got %s", i, expectedOrder[i], info.ConfigID)
		}
		if info.MaxFood != 3 {
			t.Errorf("%s: expected max food 3, got %d", info.ConfigID, info.MaxFood)
		}
	}
	if list[0].Rows != 40 || list[0].Filename != "big.yaml" {
		t.Errorf("Unexpected info for big: %+v", list[0])
	}
}

func TestManager_ReloadConfig(t *testing.T) {
	dir := t.TempDir()
	config := createValidConfig()
	config.Name = "Changeable"
	config.MaxFood = 4
	writeConfigFile(t, dir, "changeable", config)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	loaded, _ := manager.LoadConfig("changeable")
	if loaded.MaxFood != 4 {
		t.Errorf("Expected initial max food 4, got %d", loaded.MaxFood)
	}

	config.MaxFood = 8
	writeConfigFile(t, dir, "changeable", config)

	// Cached until reloaded
	if cached, _ := manager.LoadConfig("changeable"); cached.MaxFood != 4 {
		t.Errorf("Expected cached max food 4, got %d", cached.MaxFood)
	}

	if err := manager.ReloadConfig("changeable"); err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}
	reloaded, _ := manager.LoadConfig("changeable")
	if reloaded.MaxFood != 8 {
		t.Errorf("Expected reloaded max food 8, got %d", reloaded.MaxFood)
	}

	if err := manager.RefreshCache(); err != nil {
		t.Fatalf("RefreshCache failed: %v", err)
	}
}

func TestManager_ValidateConfig(t *testing.T) {
	manager, _ := NewManager(t.TempDir())

	t.Run("valid config", func(t *testing.T) {
		if err := manager.ValidateConfig(createValidConfig()); err != nil {
			t.Errorf("Expected valid config to pass validation: %v", err)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		config := createValidConfig()
		config.Name = ""
		if err := manager.ValidateConfig(config); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("invalid board size", func(t *testing.T) {
		config := createValidConfig()
		config.Cols = 2
		if err := manager.ValidateConfig(config); err == nil {
			t.Error("Expected error for invalid board size")
		}
	})

	t.Run("nil", func(t *testing.T) {
		if err := manager.ValidateConfig(nil); err == nil {
			t.Error("Expected error for nil config")
		}
	})
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	manager, _ := NewManager(dir)

	config := createValidConfig()
	config.Name = "Saved"
	config.Cols = 21
	if err := manager.SaveConfig("saved", config); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "saved.json")); err != nil {
		t.Errorf("Expected saved.json on disk: %v", err)
	}

	if err := manager.SaveConfig("saved_yaml.yaml", config); err != nil {
		t.Fatalf("SaveConfig YAML failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "saved_yaml.yaml"))
	if err != nil {
		t.Fatalf("Expected saved_yaml.yaml on disk: %v", err)
	}
	var decoded engine.GameConfig
	if err := yaml.Unmarshal(data, &decoded); err != nil || decoded.Cols != 21 {
		t.Errorf("Expected YAML round trip with 21 cols, got %+v err=%v", decoded, err)
	}

	// A fresh manager sees both files
	fresh, _ := NewManager(dir)
	list, _ := fresh.ListConfigs()
	if len(list) != 2 {
		t.Errorf("Expected 2 saved configs, got %d", len(list))
	}

	bad := createValidConfig()
	bad.Rows = 0
	bad.Cols = 1
	if err := manager.SaveConfig("bad", bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if err := manager.SaveConfig("../escape", config); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for path name, got %v", err)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 5; i++ {
		config := createValidConfig()
		config.Name = fmt.Sprintf("Config%d", i)
		writeConfigFile(t, dir, fmt.Sprintf("config%d", i), config)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if _, err := manager.LoadConfig(fmt.Sprintf("config%d", id%5+1)); err != nil {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}
	if manager.Count() < 5 {
		t.Errorf("Expected at least 5 configs in cache, got %d", manager.Count())
	}
}

func TestManager_CachingBehavior(t *testing.T) {
	dir := t.TempDir()
	testConfig := createValidConfig()
	testConfig.Name = "Test"
	writeConfigFile(t, dir, "test", testConfig)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	first, err := manager.LoadConfig("test")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		config, _ := manager.LoadConfig("test.json")
		if config != first {
			t.Fatal("Expected the cached pointer to be returned")
		}
	}
}

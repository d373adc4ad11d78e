// Package config provides configuration management for the snake game.
//
// The config package handles:
//   - Loading game configurations from JSON or YAML files
//   - Configuration validation
//   - Default configuration management
//   - Configuration discovery, listing and saving
//
// Configuration Format:
//
// Game configurations live in the configs directory as .json, .yaml or .yml
// files. Each configuration defines:
//   - Board size (rows, cols)
//   - Turn interval, minimum interval and the per-segment speedup
//   - Maximum concurrent food, food lifetime range and spawn delay range
//   - Initial direction and an optional random seed
//
// Missing fields take the classic defaults (15x11 board, 1000ms turns, 40ms
// speedup per segment, 50ms floor, 5 food).
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("fast")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
package config

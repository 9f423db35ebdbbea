// Package config provides configuration management for the snake game server.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Validation through engine.ValidateGameConfig
//   - Default configuration selection
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory. The
// file name without extension is the config ID used to create sessions. Any
// field left out of a file keeps the value from engine.DefaultConfig.
//
// Available Configurations:
//   - classic: 40x20 grid with ten obstacles
//   - easy: open 30x15 grid, slower ticks and longer-lived items
//   - maze: crowded 40x20 grid with frequent special items
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("easy")
//	configs, err := manager.ListConfigs()
package config

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/snakeysnake/game/engine"
)

// writeConfig writes content to a temp json file and returns its path
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test_config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func hasMessage(messages []string, substr string) bool {
	for _, m := range messages {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func TestValidateConfig_ValidConfig(t *testing.T) {
	path := writeConfig(t, `{
		"name": "Test Config",
		"description": "Test configuration",
		"grid_width": 20,
		"grid_height": 10,
		"obstacle_count": 5
	}`)

	result := validateConfig(path)
	if !result.Valid {
		t.Errorf("Expected valid config, but got errors: %v", result.Errors)
	}
	if result.File != "test_config.json" {
		t.Errorf("Expected file name test_config.json, got %s", result.File)
	}
	if !hasMessage(result.Errors, "Grid: 20x10") {
		t.Errorf("Expected grid summary, got %v", result.Errors)
	}
}

func TestValidateConfig_Failures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"invalid json", `{"name": "test", invalid json}`, "Invalid JSON"},
		{"unknown field", `{"name": "test", "grid_size": 5}`, "Unknown field: grid_size"},
		{"missing name", `{"name": ""}`, "name is required"},
		{"grid too small", `{"name": "tiny", "grid_width": 2}`, "grid_width"},
		{"bad probability", `{"name": "p", "regular_chance": 1.5}`, "regular_chance"},
		{"too fast", `{"name": "fast", "tick_interval_ms": 5}`, "too fast"},
		{"margin too wide", `{"name": "m", "grid_width": 10, "grid_height": 10, "special_margin": 5}`, "special_margin"},
		{"crowded", `{"name": "c", "grid_width": 10, "grid_height": 10, "obstacle_count": 40}`, "quarter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateConfig(writeConfig(t, tt.content))
			if result.Valid {
				t.Fatal("Expected invalid config")
			}
			if !hasMessage(result.Errors, tt.want) {
				t.Errorf("Expected an error containing %q, got %v", tt.want, result.Errors)
			}
		})
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig("/non/existent/file.json")
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
	if !hasMessage(result.Errors, "Failed to read file") {
		t.Errorf("Expected read error, got %v", result.Errors)
	}
}

func TestValidateConfig_SeededBoard(t *testing.T) {
	path := writeConfig(t, `{"name": "seeded", "grid_width": 20, "grid_height": 10, "obstacle_count": 0, "seed": 3}`)

	result := validateConfig(path)
	if !result.Valid {
		t.Fatalf("Expected valid config, got %v", result.Errors)
	}
	if !hasMessage(result.Errors, "all 200 free cells reachable") {
		t.Errorf("Expected connectivity summary, got %v", result.Errors)
	}
}

func TestValidateConnectivity_OpenGrid(t *testing.T) {
	result := validateConnectivity(5, 5, nil, engine.Cell{X: 2, Y: 2})
	if !result.Valid {
		t.Errorf("Expected open grid to be connected, got %v", result.Errors)
	}
}

func TestValidateConnectivity_EnclosedCorner(t *testing.T) {
	// Wall off (0,0)
	obstacles := []engine.Cell{{X: 1, Y: 0}, {X: 0, Y: 1}}
	result := validateConnectivity(5, 5, obstacles, engine.Cell{X: 2, Y: 2})

	if result.Valid {
		t.Fatal("Expected enclosed corner to fail connectivity")
	}
	if !hasMessage(result.Errors, "1 free cells unreachable") {
		t.Errorf("Expected one unreachable cell, got %v", result.Errors)
	}
	if !hasMessage(result.Errors, "Unreachable: (0,0)") {
		t.Errorf("Expected (0,0) listed, got %v", result.Errors)
	}
}

func TestValidateConnectivity_BlockedStart(t *testing.T) {
	start := engine.Cell{X: 1, Y: 1}
	result := validateConnectivity(5, 5, []engine.Cell{start}, start)
	if result.Valid {
		t.Error("Expected blocked start to be invalid")
	}
}

func TestValidateConnectivity_EmptyGrid(t *testing.T) {
	result := validateConnectivity(0, 0, nil, engine.Cell{})
	if result.Valid {
		t.Error("Expected empty grid to be invalid")
	}
}

func TestShippedConfigs(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "configs", "*.json"))
	if err != nil || len(files) == 0 {
		t.Skip("Skipping test - configs directory not found")
	}
	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			if result := validateConfig(file); !result.Valid {
				t.Errorf("Expected %s to be valid, got %v", file, result.Errors)
			}
		})
	}
}

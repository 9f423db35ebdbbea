package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/snakeysnake/game/engine"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestAnalyzeConfig(t *testing.T) {
	path := writeConfig(t, `{
		"name": "Open",
		"grid_width": 20,
		"grid_height": 10,
		"obstacle_count": 0,
		"regular_chance": 0.5,
		"bonus_share": 0.5,
		"seed": 42
	}`)

	a, err := analyzeConfig(path)
	if err != nil {
		t.Fatalf("Failed to analyze: %v", err)
	}

	if a.File != "test.json" {
		t.Errorf("Expected file test.json, got %s", a.File)
	}
	if a.Density != 0 {
		t.Errorf("Expected density 0, got %f", a.Density)
	}
	if a.BonusOdds != 0.25 || a.PenaltyOdds != 0.25 {
		t.Errorf("Expected bonus and penalty odds 0.25, got %f and %f", a.BonusOdds, a.PenaltyOdds)
	}
	if a.CrossingMs != 20*engine.DefaultTickIntervalMs {
		t.Errorf("Expected crossing %d, got %d", 20*engine.DefaultTickIntervalMs, a.CrossingMs)
	}
	if len(a.Board) != 10 || len(a.Board[0]) != 20 {
		t.Errorf("Expected a 20x10 board, got %d rows", len(a.Board))
	}
	if a.BlockedBy != "boundary" {
		t.Errorf("Expected an open board to end at the boundary, got %s", a.BlockedBy)
	}
	if a.AppleDist < 0 {
		t.Error("Expected a visible first apple")
	}
	if got := engine.ManhattanDistance(a.Start, a.Apple); got != a.AppleDist {
		t.Errorf("Expected apple distance %d, got %d", got, a.AppleDist)
	}
}

func TestAnalyzeConfig_Errors(t *testing.T) {
	if _, err := analyzeConfig("/non/existent.json"); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := analyzeConfig(writeConfig(t, `{"name": ""}`)); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestClearAhead(t *testing.T) {
	snap := engine.Snapshot{
		Width:    10,
		Height:   5,
		Segments: []engine.Cell{{X: 2, Y: 2}},
		Heading:  engine.Right,
	}

	n, by := clearAhead(snap)
	if n != 7 || by != "boundary" {
		t.Errorf("Expected 7 cells to the boundary, got %d to %s", n, by)
	}

	snap.Obstacles = []engine.Cell{{X: 4, Y: 2}}
	n, by = clearAhead(snap)
	if n != 1 || by != "obstacle" {
		t.Errorf("Expected 1 cell to an obstacle, got %d to %s", n, by)
	}
}

func TestPrintAnalysis(t *testing.T) {
	a := &Analysis{
		Config:     engine.DefaultConfig(),
		Board:      []string{"@.."},
		Start:      engine.Cell{X: 0, Y: 0},
		Apple:      engine.Cell{X: 2, Y: 0},
		AppleDist:  2,
		ClearAhead: 1,
		BlockedBy:  "obstacle",
	}

	var buf bytes.Buffer
	printAnalysis(&buf, a)
	out := buf.String()

	for _, want := range []string{"Name: classic", "@..", "2 steps away", "WARNING"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestShippedConfigs(t *testing.T) {
	files, _ := filepath.Glob(filepath.Join("..", "..", "configs", "*.json"))
	if len(files) == 0 {
		t.Skip("Skipping test - configs directory not found")
	}
	for _, file := range files {
		if _, err := analyzeConfig(file); err != nil {
			t.Errorf("Failed to analyze %s: %v", file, err)
		}
	}
}

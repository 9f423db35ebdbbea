package main

import (
	"testing"

	"github.com/wricardo/snakeysnake/game/engine"
)

func openConfig() *engine.GameConfig {
	config := engine.DefaultConfig()
	config.GridWidth = 20
	config.GridHeight = 10
	config.ObstacleCount = 0
	config.Seed = 3
	return config
}

func TestPlayLocal(t *testing.T) {
	eng, err := engine.NewEngine(openConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	result := playLocal(eng, &Strategy{}, 500)
	if result.Ticks == 0 {
		t.Fatal("Expected the game to run")
	}
	if result.Score < 1 {
		t.Errorf("Expected the autopilot to eat at least one apple, got %d", result.Score)
	}
	if result.Cause == engine.CauseNone && result.Ticks != 500 {
		t.Errorf("Expected a surviving game to hit the tick limit, got %d ticks", result.Ticks)
	}
}

func TestSimulate(t *testing.T) {
	summary, err := simulate(openConfig(), 3, 300, &Strategy{})
	if err != nil {
		t.Fatalf("Simulation failed: %v", err)
	}

	if summary.Games != 3 {
		t.Errorf("Expected 3 games, got %d", summary.Games)
	}
	died := 0
	for _, n := range summary.Causes {
		died += n
	}
	if died+summary.Survived != 3 {
		t.Errorf("Expected every game to die or survive, got %d died and %d survived", died, summary.Survived)
	}
	if summary.Average > float64(summary.Best) {
		t.Errorf("Expected average %.1f to be at most best %d", summary.Average, summary.Best)
	}
	if summary.HighScore > summary.Best {
		t.Errorf("Expected high score %d to be at most best %d", summary.HighScore, summary.Best)
	}

	again, err := simulate(openConfig(), 3, 300, &Strategy{})
	if err != nil {
		t.Fatalf("Simulation failed: %v", err)
	}
	if again.Best != summary.Best || again.Average != summary.Average {
		t.Errorf("Expected seeded runs to repeat, got %+v and %+v", summary, again)
	}
}

func TestSimulate_InvalidConfig(t *testing.T) {
	config := openConfig()
	config.GridWidth = 0
	if _, err := simulate(config, 1, 10, &Strategy{}); err == nil {
		t.Error("Expected error for invalid config")
	}
}

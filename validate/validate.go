// Command validate provides a small CLI that validates game configuration JSON
// files in the ../configs directory. It checks:
//   - JSON structure and the engine's own rules (grid, timers, probabilities)
//   - Playability limits the engine accepts but which make poor boards
//   - For seeded configs, the generated board: the start cell must be free
//     and every free cell should be reachable from it
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/snakeysnake/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...interface{}) {
	r.Errors = append(r.Errors, "✓ "+fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single configuration JSON file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	// Decode strictly first so typos in field names are reported
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}
	for _, key := range unknownKeys(raw) {
		result.fail("Unknown field: %s", key)
	}

	config, err := engine.ParseGameConfig(data)
	if err != nil {
		result.fail("%v", err)
		return result
	}

	checkPlayability(config, &result)
	if !result.Valid {
		return result
	}

	result.info("Name: %s", config.Name)
	result.info("Grid: %dx%d", config.GridWidth, config.GridHeight)
	result.info("Obstacles: %d (%.1f%% of cells)", config.ObstacleCount, obstacleDensity(config)*100)
	result.info("Tick: %dms", config.TickIntervalMs)

	if config.Seed != 0 {
		board := validateBoard(config)
		result.Errors = append(result.Errors, board.Errors...)
		result.Valid = board.Valid
	}
	return result
}

// unknownKeys lists top-level keys that GameConfig does not define
func unknownKeys(raw map[string]json.RawMessage) []string {
	known := map[string]bool{}
	encoded, _ := json.Marshal(engine.DefaultConfig())
	var fields map[string]json.RawMessage
	json.Unmarshal(encoded, &fields)
	for k := range fields {
		known[k] = true
	}
	known["seed"] = true

	var unknown []string
	for k := range raw {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	return unknown
}

func obstacleDensity(config *engine.GameConfig) float64 {
	return float64(config.ObstacleCount) / float64(config.GridWidth*config.GridHeight)
}

// checkPlayability rejects configs the engine accepts but nobody can play
func checkPlayability(config *engine.GameConfig, result *ValidationResult) {
	if config.TickIntervalMs < 20 {
		result.fail("tick_interval_ms %d is too fast to steer (minimum 20)", config.TickIntervalMs)
	}
	if config.ItemLifetimeMs < config.TickIntervalMs*int64(config.GridWidth) {
		result.Errors = append(result.Errors, fmt.Sprintf("Warning: item_lifetime_ms %d is shorter than one crossing of the grid", config.ItemLifetimeMs))
	}
	if 2*config.SpecialMargin >= config.GridWidth || 2*config.SpecialMargin >= config.GridHeight {
		result.fail("special_margin %d leaves no room for special items", config.SpecialMargin)
	}
	if obstacleDensity(config) > 0.25 {
		result.fail("obstacle_count %d covers more than a quarter of the grid", config.ObstacleCount)
	}
}

// validateBoard builds the board a seeded config produces and checks that
// the start cell is free and the free area is connected.
func validateBoard(config *engine.GameConfig) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []string{}}

	eng, err := engine.NewEngine(config)
	if err != nil {
		result.fail("Failed to build board: %v", err)
		return result
	}
	snap := eng.Snapshot()
	head := snap.Head()

	for _, obstacle := range snap.Obstacles {
		if obstacle == head {
			result.fail("Obstacle placed on the start cell %s", head)
			return result
		}
	}

	conn := validateConnectivity(snap.Width, snap.Height, snap.Obstacles, head)
	result.Errors = append(result.Errors, conn.Errors...)
	if !conn.Valid {
		result.Valid = false
	}
	return result
}

// validateConnectivity flood-fills from start using 4-directional movement
// over cells without obstacles and reports free cells it cannot reach.
func validateConnectivity(width, height int, obstacles []engine.Cell, start engine.Cell) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	if width <= 0 || height <= 0 {
		result.fail("Cannot validate connectivity: empty grid")
		return result
	}

	grid := engine.Grid{Width: width, Height: height}
	blocked := make(map[engine.Cell]bool, len(obstacles))
	for _, c := range obstacles {
		blocked[c] = true
	}
	if !grid.Contains(start) || blocked[start] {
		result.fail("Start cell %s is not free", start)
		return result
	}

	visited := map[engine.Cell]bool{start: true}
	queue := []engine.Cell{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, h := range []engine.Heading{engine.Up, engine.Right, engine.Down, engine.Left} {
			next := current.Step(h)
			if grid.Contains(next) && !blocked[next] && !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	var unreachable []engine.Cell
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := engine.Cell{X: x, Y: y}
			if !blocked[c] && !visited[c] {
				unreachable = append(unreachable, c)
			}
		}
	}

	if len(unreachable) > 0 {
		result.fail("Connectivity failure: %d free cells unreachable from the start", len(unreachable))
		for i, c := range unreachable {
			if i == 5 {
				result.Errors = append(result.Errors, fmt.Sprintf("... and %d more", len(unreachable)-5))
				break
			}
			result.Errors = append(result.Errors, fmt.Sprintf("Unreachable: %s", c))
		}
	} else {
		result.info("Connectivity: all %d free cells reachable", len(visited))
	}
	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}

// Command analyze prints quick, human-readable heuristics about configuration
// files in the project's configs directory. It summarizes dimensions, spawn
// odds and speed, then lays out a sample board and reports how far the first
// apple and the first obstacle ahead are from the start.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wricardo/snakeysnake/game/engine"
)

// sampleSeed lays out boards for configs that do not fix their own seed
const sampleSeed = 1

// Analysis is the summary of one configuration
type Analysis struct {
	File        string
	Config      *engine.GameConfig
	Density     float64
	RegularOdds float64
	BonusOdds   float64
	PenaltyOdds float64
	CrossingMs  int64
	Board       []string
	Start       engine.Cell
	Apple       engine.Cell
	AppleDist   int
	// ClearAhead counts free cells in front of the head before an obstacle
	// or the edge
	ClearAhead int
	BlockedBy  string
}

func main() {
	dir := "configs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	for _, configFile := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(configFile))
		analysis, err := analyzeConfig(configFile)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		printAnalysis(os.Stdout, analysis)
	}
}

func analyzeConfig(path string) (*Analysis, error) {
	config, err := engine.LoadGameConfig(path)
	if err != nil {
		return nil, err
	}

	sample := *config
	if sample.Seed == 0 {
		sample.Seed = sampleSeed
	}
	eng, err := engine.NewEngine(&sample)
	if err != nil {
		return nil, err
	}
	snap := eng.Snapshot()

	a := &Analysis{
		File:        filepath.Base(path),
		Config:      config,
		Density:     float64(config.ObstacleCount) / float64(config.GridWidth*config.GridHeight),
		RegularOdds: config.RegularChance,
		BonusOdds:   (1 - config.RegularChance) * config.BonusShare,
		PenaltyOdds: (1 - config.RegularChance) * (1 - config.BonusShare),
		CrossingMs:  int64(config.GridWidth) * config.TickIntervalMs,
		Board:       snap.Rows(),
		Start:       snap.Head(),
		Apple:       engine.OffGrid,
		AppleDist:   -1,
	}

	for _, item := range snap.Items {
		if item.Kind == engine.RegularApple && item.Visible {
			a.Apple = item.Location
			a.AppleDist = engine.ManhattanDistance(a.Start, item.Location)
		}
	}

	a.ClearAhead, a.BlockedBy = clearAhead(snap)
	return a, nil
}

// clearAhead walks from the head along its heading and reports the free run
// length and what ends it.
func clearAhead(snap engine.Snapshot) (int, string) {
	cell := snap.Head()
	n := 0
	for {
		cell = cell.Step(snap.Heading)
		info := snap.Describe(cell)
		if !info.InBounds {
			return n, "boundary"
		}
		for _, occupant := range info.Occupants {
			if occupant == "obstacle" {
				return n, "obstacle"
			}
		}
		n++
	}
}

func printAnalysis(w io.Writer, a *Analysis) {
	config := a.Config
	fmt.Fprintf(w, "Name: %s\n", config.Name)
	fmt.Fprintf(w, "Grid Size: %d x %d\n", config.GridWidth, config.GridHeight)
	fmt.Fprintf(w, "Obstacles: %d (%.1f%%)\n", config.ObstacleCount, a.Density*100)
	fmt.Fprintf(w, "Tick: %dms, crossing the grid takes %.1fs\n", config.TickIntervalMs, float64(a.CrossingMs)/1000)
	fmt.Fprintf(w, "After each meal: regular %.0f%%, bonus %.0f%% (x%d), penalty %.0f%% (x%d)\n",
		a.RegularOdds*100, a.BonusOdds*100, config.BonusMultiplier, a.PenaltyOdds*100, config.PenaltyMultiplier)
	fmt.Fprintf(w, "Speed effect chance: %.0f%%\n", config.EffectChance*100)

	fmt.Fprintf(w, "Sample board:\n")
	for _, row := range a.Board {
		fmt.Fprintf(w, "   %s\n", row)
	}
	fmt.Fprintf(w, "Start: %s\n", a.Start)
	if a.AppleDist >= 0 {
		fmt.Fprintf(w, "First apple: %s, %d steps away\n", a.Apple, a.AppleDist)
	}

	if a.BlockedBy == "obstacle" && a.ClearAhead < 3 {
		fmt.Fprintf(w, "⚠️  WARNING: obstacle only %d cells ahead of the start\n", a.ClearAhead)
	} else {
		fmt.Fprintf(w, "✅ %d free cells ahead before the %s\n", a.ClearAhead, a.BlockedBy)
	}
}

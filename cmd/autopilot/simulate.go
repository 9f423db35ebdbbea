package main

import (
	"github.com/wricardo/snakeysnake/game/engine"
	"github.com/wricardo/snakeysnake/game/loop"
)

// GameResult is the outcome of one headless game
type GameResult struct {
	Score int
	Ticks int
	Cause engine.DeathCause
}

// Summary aggregates several games
type Summary struct {
	Games     int
	Best      int
	Average   float64
	Survived  int
	Causes    map[engine.DeathCause]int
	HighScore int
}

// playLocal plays one life on eng with a manual clock until death or
// maxTicks ticks have run.
func playLocal(eng engine.Engine, strategy *Strategy, maxTicks int) GameResult {
	clock := loop.NewManualClock(0)
	interval := eng.Config().TickIntervalMs

	eng.Reset(clock.NowMillis())

	result := GameResult{}
	for result.Ticks < maxTicks {
		snap := eng.Snapshot()
		if snap.State != engine.StatePlaying {
			break
		}
		if side, ok := strategy.NextTap(snap); ok {
			eng.RequestTurn(side, clock.NowMillis())
		}
		tick := eng.Tick(clock.NowMillis())
		if tick.Advanced {
			result.Ticks++
		}
		if tick.Died {
			result.Cause = tick.Cause
			break
		}
		clock.Advance(interval)
	}
	result.Score = eng.Score()
	eng.AcknowledgeDeath()
	return result
}

// simulate plays games lives on one engine so the high score carries over
func simulate(config *engine.GameConfig, games, maxTicks int, strategy *Strategy) (*Summary, error) {
	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Causes: make(map[engine.DeathCause]int)}
	total := 0
	for i := 0; i < games; i++ {
		result := playLocal(eng, strategy, maxTicks)
		summary.Games++
		total += result.Score
		if result.Score > summary.Best {
			summary.Best = result.Score
		}
		if result.Cause == engine.CauseNone {
			summary.Survived++
		} else {
			summary.Causes[result.Cause]++
		}
	}
	if summary.Games > 0 {
		summary.Average = float64(total) / float64(summary.Games)
	}
	summary.HighScore = eng.HighScore()
	return summary, nil
}

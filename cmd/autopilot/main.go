// Command autopilot plays Snakey Snake with a shortest-path strategy. In
// local mode it runs headless games against the engine to compare configs;
// in remote mode it drives a session on a running server through the REST API.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/wricardo/snakeysnake/game/engine"
)

// playRemote plays games lives on the client's session and returns their
// scores. It polls the state every poll interval.
func playRemote(client *Client, strategy *Strategy, games int, poll time.Duration, verbose bool) ([]int, error) {
	var scores []int
	playing := false

	for len(scores) < games {
		snap, err := client.GetState()
		if err != nil {
			return scores, err
		}

		switch snap.State {
		case engine.StateHome, engine.StateGameOver:
			if playing {
				scores = append(scores, snap.Score)
				playing = false
				log.Printf("Game %d over: score %d (%s)", len(scores), snap.Score, snap.DeathCause)
				if len(scores) == games {
					return scores, nil
				}
			}
			if _, err := client.Turn(engine.SideLeft); err != nil {
				return scores, err
			}
			playing = true
		case engine.StatePaused:
			if _, err := client.TogglePause(); err != nil {
				return scores, err
			}
			playing = true
		case engine.StatePlaying:
			playing = true
			if side, ok := strategy.NextTap(*snap); ok {
				if verbose {
					log.Printf("tick %d: head %s heading %s, tap %s", snap.Tick, snap.Head(), snap.Heading, side)
				}
				if _, err := client.Turn(side); err != nil {
					return scores, err
				}
			}
		}
		time.Sleep(poll)
	}
	return scores, nil
}

func printSummary(config *engine.GameConfig, summary *Summary) {
	fmt.Printf("Config: %s (%dx%d, %d obstacles)\n", config.Name, config.GridWidth, config.GridHeight, config.ObstacleCount)
	fmt.Printf("Games: %d\n", summary.Games)
	fmt.Printf("Best: %d  Average: %.1f\n", summary.Best, summary.Average)
	fmt.Printf("Survived tick limit: %d\n", summary.Survived)

	causes := make([]string, 0, len(summary.Causes))
	for cause := range summary.Causes {
		causes = append(causes, string(cause))
	}
	sort.Strings(causes)
	for _, cause := range causes {
		fmt.Printf("  died by %s: %d\n", cause, summary.Causes[engine.DeathCause(cause)])
	}
}

func main() {
	mode := flag.String("mode", "local", "local (headless engine) or remote (REST API)")
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL for remote mode")
	configName := flag.String("config", "classic", "Game configuration name")
	continueSession := flag.String("continue", "", "Play an existing session by ID (remote mode)")
	games := flag.Int("games", 10, "Number of games to play")
	maxTicks := flag.Int("max-ticks", 5000, "Tick limit per local game")
	seed := flag.Int64("seed", 1, "Random seed for local games (0 uses the config's)")
	avoidPenalty := flag.Bool("avoid-penalty", false, "Never steer towards penalty items")
	pollMs := flag.Int("poll", 20, "Remote polling interval in milliseconds")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	strategy := &Strategy{AvoidPenalty: *avoidPenalty}

	switch *mode {
	case "local":
		config, err := engine.LoadConfigByName(*configName)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if *seed != 0 {
			config.Seed = *seed
		}
		summary, err := simulate(config, *games, *maxTicks, strategy)
		if err != nil {
			log.Fatalf("Simulation failed: %v", err)
		}
		printSummary(config, summary)

	case "remote":
		log.Printf("Connecting to game server at %s", *serverURL)
		client := NewClient(*serverURL)
		if *continueSession != "" {
			client.Use(*continueSession)
		} else {
			info, err := client.CreateSession(*configName)
			if err != nil {
				log.Fatalf("Failed to create session: %v", err)
			}
			log.Printf("Created session %s (%s)", info.ID, info.ConfigName)
		}

		scores, err := playRemote(client, strategy, *games, time.Duration(*pollMs)*time.Millisecond, *verbose)
		if err != nil {
			log.Printf("Stopped early: %v", err)
		}
		fmt.Printf("Scores: %v\n", scores)
		if err != nil {
			os.Exit(1)
		}

	default:
		log.Fatalf("Unknown mode: %s", *mode)
	}
}

// Command snake-tui plays a local game in the terminal. Left and right keys
// turn the snake relative to its heading, space pauses, q quits. Best scores
// are kept per configuration in the scores directory.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/snakeysnake/game/config"
	"github.com/wricardo/snakeysnake/game/engine"
	"github.com/wricardo/snakeysnake/game/score"
)

func main() {
	cmd := &cli.Command{
		Name:  "snake-tui",
		Usage: "play Snakey Snake in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultConfigID,
				Usage:   "configuration name in the config directory, or a path to a JSON file",
				Sources: cli.EnvVars("SNAKE_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing game configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "scores-dir",
				Value:   "scores",
				Usage:   "directory for best-score files",
				Sources: cli.EnvVars("SCORES_DIR"),
			},
			&cli.IntFlag{
				Name:  "start-score",
				Usage: "score every new life starts with",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "fix the random source (0 keeps the config's seed)",
			},
			&cli.BoolFlag{
				Name:  "mute",
				Usage: "disable sound effects",
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "append log output to this file (discarded when empty)",
				Sources: cli.EnvVars("SNAKE_LOG_FILE"),
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadConfig resolves name as a file path when it names one, otherwise
// through the config directory.
func loadConfig(name, dir string) (*engine.GameConfig, error) {
	if filepath.Ext(name) == ".json" {
		if _, err := os.Stat(name); err == nil {
			return engine.LoadGameConfig(name)
		}
	}
	manager, err := config.NewManager(dir)
	if err != nil {
		return nil, err
	}
	return manager.LoadConfig(name)
}

// setupLogging points the standard logger away from the terminal, which
// the screen owns while the game runs. The returned func restores stderr.
func setupLogging(path string) (func(), error) {
	restore := func() { log.SetOutput(os.Stderr) }
	if path == "" {
		log.SetOutput(io.Discard)
		return restore, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		restore()
		f.Close()
	}, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	restoreLog, err := setupLogging(cmd.String("log-file"))
	if err != nil {
		return err
	}
	defer restoreLog()

	gameConfig, err := loadConfig(cmd.String("config"), cmd.String("config-dir"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if seed := cmd.Int64("seed"); seed != 0 {
		copied := *gameConfig
		copied.Seed = seed
		gameConfig = &copied
	}

	store, err := score.NewFileStore(score.PathFor(cmd.String("scores-dir"), gameConfig.Name))
	if err != nil {
		return err
	}
	eng, err := engine.NewEngine(gameConfig, engine.WithScoreStore(store))
	if err != nil {
		return err
	}

	var sound soundPlayer = nopPlayer{}
	if !cmd.Bool("mute") {
		if player, err := newBeepPlayer(); err != nil {
			log.Printf("Audio initialization failed: %v", err)
		} else {
			sound = player
		}
	}
	defer sound.Close()

	app, err := newApp(eng, sound, cmd.Int("start-score"))
	if err != nil {
		return err
	}
	return app.run(ctx)
}

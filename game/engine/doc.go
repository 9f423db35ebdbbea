// Package engine provides the simulation core of the snake game.
//
// The engine package implements the game mechanics including:
//   - Grid movement and boundary, self and obstacle collision
//   - Item lifecycle with weighted special-item spawning
//   - Score accounting and best-score persistence through ScoreStore
//   - Speed modifiers tracked on a single effect timeline
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameConfig carries every tunable and is loaded
// from JSON files. Snapshot is the immutable view handed to renderers.
//
// Usage:
//
//	config, err := engine.LoadConfigByName("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(config, engine.WithScoreStore(store))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine.RequestTurn(engine.SideRight, now) // first tap starts the game
//	if gameEngine.IsUpdateDue(now) {
//		gameEngine.Tick(now)
//	}
//
// Time is always passed in as milliseconds. The engine never reads a clock,
// so tests drive it with plain integers.
package engine

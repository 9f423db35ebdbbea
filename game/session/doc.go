// Package session manages live snake sessions for the game server.
//
// Each session owns one engine driven by its own loop.Runner goroutine.
// The Manager creates, looks up, and stops sessions, and can mirror their
// metadata to a SessionPersistence backend so they survive a restart.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. Lookups are
// case-insensitive.
//
// Persistence:
//
// Only the score, coarse state, and timestamps are stored. A restored
// session gets a fresh board; if it was mid-game it comes back paused
// with its score carried over.
//
// Usage:
//
//	manager := session.NewManager()
//	manager.SetScoresDir("scores")
//
//	sess, err := manager.Create("", "classic", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer manager.Close()
//
//	snap := sess.Runner.Snapshot()
package session

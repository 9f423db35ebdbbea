// Package loop runs a game engine at its fixed tick rate on a single
// goroutine and publishes immutable snapshots for renderers and transports.
package loop

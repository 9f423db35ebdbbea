// Package mcp exposes the snake game server to AI agents over the Model
// Context Protocol.
//
// The Client is a thin proxy: every tool call becomes a REST request
// against a running game server, and the JSON reply is formatted as text
// for the agent.
//
// Tools:
//   - create_session, list_sessions, get_session
//   - game_state: board rows plus score, state and visible items
//   - turn: left or right tap; starts a game from home or game over
//   - toggle_pause
//   - describe_cell: occupants of one cell and its distance from the head
//   - list_configs, game_instructions
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp

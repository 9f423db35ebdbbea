// Package api provides the HTTP REST surface of the snake game server.
//
// Endpoints:
//
// Sessions:
//   - POST   /api/sessions              create a session {"config_id": "maze"}
//   - GET    /api/sessions              list sessions (?sort=accessed|created|score&order=asc|desc&limit=N)
//   - GET    /api/sessions/{id}         session info with the latest snapshot
//   - DELETE /api/sessions/{id}         stop and remove a session
//
// Play:
//   - GET  /api/sessions/{id}/state            latest snapshot (?render=true adds text rows)
//   - POST /api/sessions/{id}/turn             {"side": "left"|"right"}; starts a game from home or game over
//   - POST /api/sessions/{id}/pause            toggle pause
//   - GET  /api/sessions/{id}/cells/{x}/{y}    what occupies one cell
//
// Configuration:
//   - GET  /api/configs          list configurations
//   - GET  /api/configs/{name}   one configuration
//   - POST /api/configs          save a configuration; missing fields take classic defaults
//
// Misc:
//   - GET /api/health
//   - GET /ws?session={id}       live snapshots over WebSocket
//
// Errors are returned as {"error": "message"} with 400 for bad input, 404
// for unknown sessions or configs and 500 otherwise.
package api

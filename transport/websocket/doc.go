// Package websocket streams live snake sessions to browsers and accepts
// their taps.
//
// A central Hub tracks clients per session. Each connection has a read
// pump and a write pump goroutine; only the hub goroutine changes the
// client set.
//
// Message Protocol:
//
//   - Outgoing: {"session_id":"ab12","event":"state_update","snapshot":{...}}
//     after every change the session runner publishes
//   - Incoming: {"action":"turn","side":"left"} or {"action":"pause"}
//   - Replies to the sender: "action_result" with the service result, or
//     "error" with a message
//
// PublishSnapshot never blocks so it can run on a session runner goroutine.
package websocket

// Package ws streams the desktop to the page over a WebSocket.
//
// Every connection receives a welcome frame, the current shell state and a
// new state frame after each change. Battery and connectivity changes are
// pushed as they happen. The clock and performance graphs are opt-in topics.
//
// Message Types (Client → Server):
//   - intent: dispatch a desktop intent
//   - terminal: run one terminal line
//   - subscribe / unsubscribe: start or stop the clock or perf topic
//   - ping: keep-alive
//
// Message Types (Server → Client):
//   - welcome, state, battery, network, clock, perf, terminal, error, pong
//
// Example Usage:
//
//	handler := ws.NewHandler(ws.Deps{Shell: sh, Device: adapter, Terminal: term})
//	router.GET("/stream", handler.HandleConnection)
package ws

// Package api provides the HTTP REST API for the snake server.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session ({"config_id": "fast", "auto_start": true})
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/unified - Several sessions at once (?sessionIds=a,b or ?configName=x)
//   - GET /api/sessions/{id} - Get one session
//   - DELETE /api/sessions/{id} - Delete a session, ending its game
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Snapshot of the board
//   - POST /api/sessions/{id}/start - Start the move and spawn timers
//   - POST /api/sessions/{id}/pause - Freeze every timer
//   - POST /api/sessions/{id}/resume - Re-arm the frozen timers
//   - POST /api/sessions/{id}/end - Force game over
//   - POST /api/sessions/{id}/direction - {"direction": "left"}, applied on the next tick
//
// Configuration:
//   - GET /api/configs - List configurations
//   - POST /api/configs - Save a configuration
//   - GET /api/configs/{name} - Get one configuration
//
// Other:
//   - GET /api/health - Liveness
//   - GET /ws?session={id} - WebSocket event stream
//
// Every successful game operation is broadcast to the session's WebSocket
// clients as a state_update and logged as one [GAME] line.
//
// Error Handling:
//
// Errors are returned as JSON with an HTTP status derived from the error:
// unknown sessions and configs are 404, bad directions, commands and configs
// are 400, and operations the game's state forbids (start twice, pause before
// start, anything after game over) are 409.
//
//	{
//	  "error": "error message",
//	  "code": 409
//	}
package api

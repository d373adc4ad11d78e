// Package session provides session management for the snake game server.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - Idle session cleanup
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each session owns its own engine.Game with independent timers. A renderer
// factory, usually the WebSocket hub, is asked for a renderer per new session.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference, generated with
// cryptographic randomness and looked up case-insensitively.
//
// Lifecycle:
//
// Deleting a session, or letting it expire through CleanupExpiredSessions or
// the janitor, ends its game so no timers outlive the session. Sessions are kept
// in memory only.
//
// Usage:
//
//	manager := session.NewManager(session.WithRendererFactory(hub.RendererFor))
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//	sess.Game.Start()
package session

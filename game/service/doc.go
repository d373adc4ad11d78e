// Package service provides the business logic layer for the snake game server.
//
// The service package implements:
//   - Multi-session game management
//   - Game lifecycle (start, pause, resume, end)
//   - Input commands (direction changes, pause toggles)
//   - Configuration listing, loading and saving
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns one engine.Game running on its own timers;
// the service never drives ticks itself, it only forwards lifecycle and input
// calls and reads snapshots.
//
// Usage:
//
//	sessionMgr := session.NewManager(session.WithRendererFactory(hub.RendererFor))
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//	gameService.StartGame(ctx, info.ID)
//	gameService.ChangeDirection(ctx, info.ID, "left")
package service

// Package mcp exposes the snake server to AI agents over the Model Context Protocol.
//
// Client is a thin proxy: every tool calls the REST API and formats the JSON
// answer as text an agent can read, including an ASCII board (H head, o body,
// * food).
//
// MCP Tools:
//   - create_session, list_sessions, get_session
//   - game_state
//   - start_game, pause_game, resume_game, end_game
//   - change_direction (with an intent parameter for the agent's reasoning)
//   - list_configs
//   - game_instructions
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//   - HTTP: mount client.Handler() at POST /mcp
package mcp

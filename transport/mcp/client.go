package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jharris119/snake/game/engine"
	"github.com/jharris119/snake/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Snake",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Snake - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Steer the snake to eat food and grow. The snake moves on its own once the game
is started; you only choose its direction. Hitting a wall or the snake's own
body ends the game.

AVAILABLE TOOLS:
- create_session: Create a new game session
- list_sessions / get_session: Inspect sessions
- game_state: Board, snake, food and timing
- start_game / pause_game / resume_game / end_game: Lifecycle
- change_direction: Set the direction used on the next move tick - requires intent explanation
- list_configs: List board configurations
- game_instructions: Full rules and strategy notes

NOTE: The 'intent' parameter on change_direction serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func sessionTool(name, description string) mcp.Tool {
	return mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the config to use (optional, see list_configs)",
				},
				"auto_start": map[string]interface{}{
					"type":        "boolean",
					"description": "Start the game immediately",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(sessionTool("get_session", "Get details of a specific session"), c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(sessionTool("game_state", "Get the current board, snake, food and move interval"), c.handleGameState)
	c.mcpServer.AddTool(sessionTool("start_game", "Start the game; the snake begins moving"), c.lifecycleHandler("start"))
	c.mcpServer.AddTool(sessionTool("pause_game", "Pause every timer, including food expiry"), c.lifecycleHandler("pause"))
	c.mcpServer.AddTool(sessionTool("resume_game", "Resume a paused game"), c.lifecycleHandler("resume"))
	c.mcpServer.AddTool(sessionTool("end_game", "End the game immediately"), c.lifecycleHandler("end"))

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "change_direction",
		Description: "Set the snake's direction; it applies on the next move tick",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "New direction",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this turn (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleChangeDirection)

	// Configuration and help
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the complete rules and strategy notes",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Handler serves single JSON-RPC messages over HTTP POST
func (c *Client) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := c.mcpServer.HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"].(string); ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		return args
	}
	return map[string]interface{}{}
}

func sessionArg(request mcp.CallToolRequest) (string, error) {
	sessionID, _ := arguments(request)["session_id"].(string)
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return "", fmt.Errorf("session_id is required")
	}
	return sessionID, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)
	autoStart, _ := args["auto_start"].(bool)

	body := map[string]interface{}{}
	if configID != "" {
		body["config_id"] = configID
	}
	if autoStart {
		body["auto_start"] = true
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Active Sessions (%d):\n\n", response.Count))
	for _, s := range response.Sessions {
		status := "unknown"
		length := 0
		if s.GameState != nil {
			status = stateStatus(s.GameState)
			length = s.GameState.Length
		}
		result.WriteString(fmt.Sprintf("- %s (Config: %s, Length: %d, Status: %s, Created: %s)\n",
			s.ID, s.ConfigName, length, status, s.CreatedAt.Format("15:04:05")))
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := sessionArg(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := sessionArg(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.Snapshot
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

// lifecycleHandler proxies POST /api/sessions/{id}/{action}
func (c *Client) lifecycleHandler(action string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID, err := sessionArg(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var result service.ActionResult
		if err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/%s", sessionID, action), nil, &result); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(formatActionResult(&result)), nil
	}
}

func (c *Client) handleChangeDirection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := sessionArg(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args := arguments(request)
	direction, _ := args["direction"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]string{"direction": direction}
	var result service.ActionResult
	if err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/direction", sessionID), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	result.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		result.WriteString(fmt.Sprintf("• %s (%s)\n  %s\n  Board: %dx%d, Turn: %dms (floor %dms), Max food: %d\n\n",
			config.ConfigID, config.Name, config.Description,
			config.Rows, config.Cols, config.TurnIntervalMs, config.MinIntervalMs, config.MaxFood))
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Snake - Complete Instructions

GAME OBJECTIVE:
Grow the snake as long as you can by eating food.

GAME MECHANICS:
• The snake starts as one square at the center of the board, heading up
• After start_game it advances one cell every move tick, on its own
• change_direction sets the direction used on the NEXT tick; the latest call wins
• Eating food grows the snake by one square (the tail stays put that tick)
• Each segment shortens the move interval, down to the config's floor
• Food appears at random free cells, at most max_food at a time, and
  vanishes if it is not eaten before its lifetime runs out

GAME OVER:
• Moving off the board
• Moving into any square of the snake, including the cell the tail is
  about to leave and the neck (reversing direction is allowed but fatal
  once the snake is longer than one square)

BOARD LEGEND (game_state):
• H - snake head
• o - snake body
• * - food
• . - empty

Cells are (row, col) with (0,0) at the top-left. "up" decreases row,
"left" decreases col.

AI AGENTS - STRATEGY NOTES:
• Read interval_ms: you have roughly that long between decisions
• pause_game freezes everything, including food lifetimes; use it to think
• Prefer food you can reach before it expires (expires_in_ms)
• Keep an escape route; never steer into a dead end of your own body
• Explain each turn with the intent parameter

MOVEMENT COMMANDS:
• change_direction with direction up, down, left or right

Good luck, and mind the tail!`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func stateStatus(state *engine.Snapshot) string {
	switch {
	case state.GameOver:
		return "over"
	case state.Paused:
		return "paused"
	case state.Started:
		return "running"
	default:
		return "ready"
	}
}

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatActionResult(result *service.ActionResult) string {
	var out strings.Builder
	if result.Success {
		out.WriteString(fmt.Sprintf("✓ %s\n\n", result.Message))
	} else {
		out.WriteString(fmt.Sprintf("✗ %s\n\n", result.Message))
	}
	out.WriteString(formatGameState(result.GameState))
	return out.String()
}

func formatGameState(state *engine.Snapshot) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	head := "-"
	if len(state.Snake) > 0 {
		head = state.Snake[0].String()
	}
	result.WriteString(fmt.Sprintf("Head: %s | Direction: %s | Length: %d | Interval: %dms | Ticks: %d | Status: %s\n",
		head, state.Direction, state.Length, state.IntervalMs, state.Ticks, stateStatus(state)))

	if len(state.Food) > 0 {
		result.WriteString("Food:")
		for _, f := range state.Food {
			result.WriteString(fmt.Sprintf(" %s expires in %dms;", f.Cell, f.ExpiresInMs))
		}
		result.WriteString("\n")
	}
	result.WriteString("\n")
	result.WriteString(formatBoard(state))

	if state.GameOver && state.Outcome != nil {
		result.WriteString(fmt.Sprintf("\nGAME OVER (%s) - final length %d after %d ticks",
			state.Outcome.Reason, state.Outcome.Length, state.Outcome.Ticks))
	}

	return result.String()
}

// formatBoard draws the snapshot as rows of characters
func formatBoard(state *engine.Snapshot) string {
	if state.Rows <= 0 || state.Cols <= 0 {
		return ""
	}

	grid := make([][]byte, state.Rows)
	for r := range grid {
		grid[r] = bytes.Repeat([]byte{'.'}, state.Cols)
	}
	put := func(c engine.Cell, ch byte) {
		if c.Row >= 0 && c.Row < state.Rows && c.Col >= 0 && c.Col < state.Cols {
			grid[c.Row][c.Col] = ch
		}
	}
	for _, f := range state.Food {
		put(f.Cell, '*')
	}
	for i := len(state.Snake) - 1; i >= 0; i-- {
		ch := byte('o')
		if i == 0 {
			ch = 'H'
		}
		put(state.Snake[i], ch)
	}

	var out strings.Builder
	for _, row := range grid {
		out.Write(row)
		out.WriteByte('\n')
	}
	return out.String()
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jharris119/snake/api"
	"github.com/jharris119/snake/game/service"
	"github.com/jharris119/snake/game/session"
	"github.com/jharris119/snake/transport/mcp"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName != "Snake Server" {
		t.Errorf("Expected app name Snake Server, got %s", AppName)
	}
}

func TestInitializeServices(t *testing.T) {
	if _, err := os.Stat("configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	gameService, sessions, err := initializeServices("configs")
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	if gameService == nil || sessions == nil {
		t.Fatal("Expected game service and session manager to be initialized")
	}

	info, err := gameService.CreateSession(context.Background(), "classic")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if sessions.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", sessions.Count())
	}
	if err := gameService.DeleteSession(context.Background(), info.ID); err != nil {
		t.Errorf("DeleteSession failed: %v", err)
	}
}

func TestInitializeServices_InvalidConfigDir(t *testing.T) {
	_, _, err := initializeServices("/non/existent/path")
	if err == nil {
		t.Error("Expected error for non-existent config directory")
	}
}

func TestCommandTree(t *testing.T) {
	app := newApp()

	if app.Version != Version {
		t.Errorf("Expected version %s, got %s", Version, app.Version)
	}
	if app.DefaultCommand != "server" {
		t.Errorf("Expected server as the default command, got %q", app.DefaultCommand)
	}

	want := map[string]bool{"server": false, "mcp": false, "play": false, "validate": false}
	for _, sub := range app.Commands {
		if _, ok := want[sub.Name]; ok {
			want[sub.Name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("Missing subcommand %s", name)
		}
	}
}

func TestRouter(t *testing.T) {
	if _, err := os.Stat("configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	var gameService service.GameService
	hub := newHub(func() service.GameService { return gameService })
	gameService, _, err := initializeServices("configs", session.WithRendererFactory(hub.RendererFor))
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	ts := httptest.NewServer(newRouter(api.NewServer(gameService, hub), mcp.NewClient("http://unused")))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 from /api/health, got %d", resp.StatusCode)
	}

	if !apiAvailable(ts.URL) {
		t.Error("apiAvailable should report a running server")
	}

	body := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	resp, err = http.Post(ts.URL+"/mcp", "application/json", body)
	if err != nil {
		t.Fatalf("mcp request failed: %v", err)
	}
	defer resp.Body.Close()

	var rpc map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&rpc); err != nil {
		t.Fatalf("Failed to decode MCP response: %v", err)
	}
	if _, ok := rpc["result"]; !ok {
		t.Errorf("Expected a result in the MCP response, got %v", rpc)
	}
}

func TestApiAvailable_NoServer(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	if apiAvailable(url) {
		t.Error("apiAvailable should be false when nothing listens")
	}
}

func TestStartInternalServer(t *testing.T) {
	if _, err := os.Stat("configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	baseURL, shutdown, err := startInternalServer("configs")
	if err != nil {
		t.Fatalf("startInternalServer failed: %v", err)
	}
	defer shutdown()

	if !strings.HasPrefix(baseURL, "http://127.0.0.1:") {
		t.Errorf("Expected loopback URL, got %s", baseURL)
	}
	if !apiAvailable(baseURL) {
		t.Error("Internal server should answer health checks")
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestValidateFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeConfig(t, dir, "good.json", `{"name":"good","rows":10,"cols":10}`)
	yml := writeConfig(t, dir, "fast.yaml", "name: fast\nturn_interval_ms: 400\n")
	badJSON := writeConfig(t, dir, "broken.json", `{"name":`)
	badValue := writeConfig(t, dir, "negative.json", `{"name":"neg","rows":-3}`)

	results := validateFiles([]string{good, yml, badJSON, badValue})
	if len(results) != 4 {
		t.Fatalf("Expected 4 results, got %d", len(results))
	}

	tests := []struct {
		file  string
		valid bool
	}{
		{"good.json", true},
		{"fast.yaml", true},
		{"broken.json", false},
		{"negative.json", false},
	}
	for i, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			if results[i].File != tt.file {
				t.Errorf("Expected file %s, got %s", tt.file, results[i].File)
			}
			if results[i].Valid != tt.valid {
				t.Errorf("Expected valid=%v, got %v (err %v)", tt.valid, results[i].Valid, results[i].Err)
			}
		})
	}

	var out bytes.Buffer
	if invalid := printResults(&out, results); invalid != 2 {
		t.Errorf("Expected 2 invalid, got %d", invalid)
	}
	if !strings.Contains(out.String(), "✓ good.json") || !strings.Contains(out.String(), "✗ broken.json") {
		t.Errorf("Unexpected report:\n%s", out.String())
	}
}

func TestConfigFiles(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "b.yaml", "name: b\n")
	writeConfig(t, dir, "a.json", `{"name":"a"}`)
	writeConfig(t, dir, "notes.txt", "ignored")
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := configFiles(dir)
	if err != nil {
		t.Fatalf("configFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 files, got %v", files)
	}
	if filepath.Base(files[0]) != "a.json" || filepath.Base(files[1]) != "b.yaml" {
		t.Errorf("Unexpected order: %v", files)
	}

	if _, err := configFiles(filepath.Join(dir, "missing")); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "classic.json", `{"name":"classic"}`)

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out

	if err := app.Run(context.Background(), []string{"snake", "--config-dir", dir, "validate"}); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ classic.json") {
		t.Errorf("Expected classic.json to validate, got:\n%s", out.String())
	}
}

func TestLoadPlayConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "classic.json", `{"name":"classic","rows":12,"cols":9}`)
	path := writeConfig(t, dir, "direct.yaml", "name: direct\nrows: 7\n")

	config, err := loadPlayConfig(dir, path)
	if err != nil {
		t.Fatalf("loading by path failed: %v", err)
	}
	if config.Rows != 7 {
		t.Errorf("Expected 7 rows, got %d", config.Rows)
	}

	config, err = loadPlayConfig(dir, "classic")
	if err != nil {
		t.Fatalf("loading by name failed: %v", err)
	}
	if config.Rows != 12 || config.Cols != 9 {
		t.Errorf("Expected 12x9, got %dx%d", config.Rows, config.Cols)
	}
}

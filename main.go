// Command snake runs the snake game server and its companion tools.
//
// Subcommands:
//  1. "server" (default) runs the HTTP server exposing the REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp" runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "play" runs a single game in the terminal, optionally steered by the autopilot
//  4. "validate" checks game configuration files
//
// Flags control host/port, config directory, debug logging, session expiry,
// and optional ngrok tunneling for easy external access during development.
// Every flag can also be set from the environment or a .env file.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jharris119/snake/api"
	"github.com/jharris119/snake/game/config"
	"github.com/jharris119/snake/game/engine"
	"github.com/jharris119/snake/game/service"
	"github.com/jharris119/snake/game/session"
	"github.com/jharris119/snake/transport/mcp"
	"github.com/jharris119/snake/transport/websocket"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Snake Server"
)

// externalAPI is where the stdio MCP server looks for an already running server
const externalAPI = "http://localhost:8080"

// main loads .env, then runs the command tree until it returns or a signal arrives.
func main() {
	loadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		log.Fatalf("%s: %v", AppName, err)
	}
}

// loadEnv reads a .env file from the working directory when one exists.
// It runs before flag parsing so env-sourced flags see its values.
func loadEnv() {
	if err := godotenv.Load(); err != nil {
		// Only log if it's not a "file not found" error
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
		return
	}
	log.Println("Loaded environment variables from .env file")
}

// newApp builds the command tree. Without a subcommand it runs the server.
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "snake",
		Usage:   "turn-based snake game server, terminal client and tools",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "Directory containing game configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("DEBUG"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				log.SetFlags(log.LstdFlags | log.Lshortfile)
			} else {
				log.SetFlags(log.LstdFlags)
			}
			return ctx, nil
		},
		DefaultCommand: "server",
		Commands: []*cli.Command{
			serverCommand(),
			mcpCommand(),
			playCommand(),
			validateCommand(),
		},
	}
}

func serverCommand() *cli.Command {
	return &cli.Command{
		Name:    "server",
		Aliases: []string{"http"},
		Usage:   "Run HTTP server with API, WebSocket, and MCP endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Value: "localhost", Usage: "HTTP server host", Sources: cli.EnvVars("HOST")},
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "HTTP server port", Sources: cli.EnvVars("PORT")},
			&cli.DurationFlag{Name: "session-ttl", Value: 24 * time.Hour, Usage: "Remove sessions idle for longer than this"},
			&cli.DurationFlag{Name: "cleanup-interval", Value: time.Hour, Usage: "How often idle sessions are removed"},
			&cli.BoolFlag{Name: "ngrok", Usage: "Enable ngrok tunnel", Sources: cli.EnvVars("NGROK_ENABLED")},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "Ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "Custom ngrok domain (optional)", Sources: cli.EnvVars("NGROK_DOMAIN")},
		},
		Action: runHTTPServer,
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:    "mcp",
		Aliases: []string{"stdio-mcp", "mcp-stdio"},
		Usage:   "Run MCP stdio server with internal HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api-url", Value: externalAPI, Usage: "Snake server to proxy when it is running", Sources: cli.EnvVars("SNAKE_API_URL")},
		},
		Action: runStdioMCP,
	}
}

// initializeServices wires the config and session managers into the game service.
func initializeServices(configDir string, opts ...session.Option) (service.GameService, *session.Manager, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	sessionManager := session.NewManager(opts...)
	return service.NewGameService(sessionManager, configManager), sessionManager, nil
}

// newHub creates a running WebSocket hub whose client frames are applied through gameService.
// New clients start from the session's current snapshot.
func newHub(gameService func() service.GameService) *websocket.Hub {
	hub := websocket.NewHub()
	hub.SetCommandHandler(func(sessionID string, cmd engine.Command) error {
		_, err := gameService().HandleCommand(context.Background(), sessionID, cmd)
		return err
	})
	hub.SetStateProvider(func(sessionID string) *engine.Snapshot {
		state, err := gameService().GetGameState(context.Background(), sessionID)
		if err != nil {
			return nil
		}
		return state
	})
	go hub.Run()
	return hub
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp endpoint.
// If ngrok is enabled, it also provisions a public tunnel. It returns once ctx is cancelled
// and the server has shut down.
func runHTTPServer(ctx context.Context, cmd *cli.Command) error {
	log.Printf("Starting %s v%s (mode: server)", AppName, Version)

	// The hub needs the service for commands and the service needs the hub for renderers
	var gameService service.GameService
	hub := newHub(func() service.GameService { return gameService })

	gameService, sessions, err := initializeServices(cmd.String("config-dir"), session.WithRendererFactory(hub.RendererFor))
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	janitorStop := make(chan struct{})
	defer close(janitorStop)
	sessions.StartJanitor(cmd.Duration("cleanup-interval"), cmd.Duration("session-ttl"), janitorStop)

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))
	mainRouter := newRouter(api.NewServer(gameService, hub), mcp.NewClient("http://"+addr))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("HTTP server failed: %w", err)
			cancel()
		}
	}()

	if cmd.Bool("ngrok") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(serveCtx, cmd.String("ngrok-auth"), cmd.String("ngrok-domain"), mainRouter)
		}()
	}

	<-serveCtx.Done()
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")

	select {
	case err := <-serveErr:
		return err
	default:
		return nil
	}
}

// newRouter mounts the API at the root and the MCP JSON-RPC endpoint at /mcp.
func newRouter(apiServer *api.Server, mcpClient *mcp.Client) *http.ServeMux {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.Handle("/mcp", mcpClient.Handler())
	return mainRouter
}

// runNgrokTunnel serves handler through an ngrok endpoint until ctx is cancelled.
func runNgrokTunnel(ctx context.Context, authToken, domain string, handler http.Handler) {
	if authToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Printf("Using custom ngrok domain: %s", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}

	ngrokURL := tun.URL()
	log.Printf("Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// apiAvailable reports whether a snake server answers at baseURL
func apiAvailable(baseURL string) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/api/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}

// runStdioMCP runs an MCP stdio server. It reuses the API at --api-url when one answers;
// otherwise it starts an internal HTTP API bound to a random loopback port and targets that.
// Logs go to stderr so they never mix with the JSON-RPC stream on stdout.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	log.SetOutput(os.Stderr)

	baseURL := cmd.String("api-url")
	log.Printf("Checking for external API server at %s...", baseURL)

	if apiAvailable(baseURL) {
		log.Printf("External API server found at %s, using it for MCP", baseURL)
	} else {
		log.Printf("No external API server found, starting internal HTTP server")

		internalURL, shutdown, err := startInternalServer(cmd.String("config-dir"))
		if err != nil {
			return err
		}
		defer shutdown()
		baseURL = internalURL
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Printf("MCP stdio server ready (API at %s)", baseURL)

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// startInternalServer serves the REST API on 127.0.0.1 with a random port.
// It returns the base URL and a function that shuts the server down.
func startInternalServer(configDir string) (string, func(), error) {
	var gameService service.GameService
	hub := newHub(func() service.GameService { return gameService })

	gameService, _, err := initializeServices(configDir, session.WithRendererFactory(hub.RendererFor))
	if err != nil {
		return "", nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, fmt.Errorf("failed to get available port: %w", err)
	}
	internalAddr := listener.Addr().String()
	log.Printf("Starting internal HTTP server on %s for MCP stdio", internalAddr)

	httpServer := &http.Server{Handler: api.NewServer(gameService, hub)}
	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Internal HTTP server error: %v", err)
		}
	}()

	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(ctx)
	}
	return "http://" + internalAddr, shutdown, nil
}

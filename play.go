package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jharris119/snake/game/autopilot"
	"github.com/jharris119/snake/game/config"
	"github.com/jharris119/snake/game/engine"
	"github.com/jharris119/snake/transport/terminal"
	"github.com/urfave/cli/v3"
)

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Play one game in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "classic", Usage: "Configuration name or file"},
			&cli.BoolFlag{Name: "autopilot", Usage: "Let the autopilot steer"},
			&cli.Uint64Flag{Name: "seed", Usage: "Random seed (0 picks one from the clock)"},
			&cli.StringFlag{Name: "log-file", Usage: "Write logs here while the terminal is in use"},
		},
		Action: runPlay,
	}
}

// loadPlayConfig resolves name as a file path first, then as a config in configDir.
func loadPlayConfig(configDir, name string) (*engine.GameConfig, error) {
	if _, err := os.Stat(name); err == nil {
		return engine.LoadGameConfig(name)
	}

	manager, err := config.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	return manager.LoadConfig(name)
}

// runPlay takes over the terminal for one game and restores it on exit
func runPlay(ctx context.Context, cmd *cli.Command) error {
	gameConfig, err := loadPlayConfig(cmd.String("config-dir"), cmd.String("config"))
	if err != nil {
		return err
	}
	gameConfig = gameConfig.WithDefaults()
	if seed := cmd.Uint64("seed"); seed != 0 {
		gameConfig.Seed = seed
	}

	// The screen owns stdout until the game ends
	logOutput := io.Discard
	if path := cmd.String("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOutput = f
	}
	log.SetOutput(logOutput)
	defer log.SetOutput(os.Stderr)

	board, err := engine.NewBoard(gameConfig.Rows, gameConfig.Cols)
	if err != nil {
		return err
	}

	screen, err := terminal.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer screen.Fini()

	renderer := terminal.NewRenderer(screen, board)
	renderers := engine.MultiRenderer{renderer}

	var pilot *autopilot.Pilot
	if cmd.Bool("autopilot") {
		pilot = autopilot.New()
		renderers = append(renderers, pilot)
	}

	game, err := engine.NewGame(gameConfig, engine.WithRenderer(renderers))
	if err != nil {
		return err
	}
	log.Printf("[PLAY] config=%s board=%dx%d autopilot=%t", gameConfig.Name, board.Rows, board.Cols, pilot != nil)

	playCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if pilot != nil {
		go func() {
			if err := pilot.Run(playCtx, game, 20*time.Millisecond); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("Warning: autopilot stopped: %v", err)
			}
		}()
	}

	err = terminal.NewPlayer(screen, game, renderer).Run(playCtx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	screen.Fini()

	if outcome, over := game.Outcome(); over {
		fmt.Printf("Game over (%s): length %d after %d ticks\n", outcome.Reason, outcome.Length, outcome.Ticks)
	}
	return err
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Validate game configuration files",
		ArgsUsage: "[files...]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			files := cmd.Args().Slice()
			if len(files) == 0 {
				found, err := configFiles(cmd.String("config-dir"))
				if err != nil {
					return err
				}
				files = found
			}
			if len(files) == 0 {
				return cli.Exit("no configuration files found", 1)
			}

			results := validateFiles(files)
			if invalid := printResults(cmd.Root().Writer, results); invalid > 0 {
				return cli.Exit(fmt.Sprintf("%d of %d configurations are invalid", invalid, len(results)), 1)
			}
			return nil
		},
	}
}

// ValidationResult captures the outcome of validating a single file
type ValidationResult struct {
	File   string
	Valid  bool
	Config *engine.GameConfig
	Err    error
}

// configFiles lists every config file in dir, sorted by name
func configFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, known := range engine.ConfigExtensions {
			if ext == known {
				files = append(files, filepath.Join(dir, entry.Name()))
				break
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// validateFiles loads each file; loading applies defaults and validates
func validateFiles(files []string) []ValidationResult {
	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		config, err := engine.LoadGameConfig(file)
		results = append(results, ValidationResult{
			File:   filepath.Base(file),
			Valid:  err == nil,
			Config: config,
			Err:    err,
		})
	}
	return results
}

// printResults writes one line per file and returns the number of invalid files
func printResults(w io.Writer, results []ValidationResult) int {
	invalid := 0
	for _, result := range results {
		if !result.Valid {
			invalid++
			fmt.Fprintf(w, "✗ %s: %v\n", result.File, result.Err)
			continue
		}
		c := result.Config
		fmt.Fprintf(w, "✓ %s: %q %dx%d, %dms/turn (floor %dms), max food %d\n",
			result.File, c.Name, c.Rows, c.Cols, c.TurnIntervalMs, c.MinIntervalMs, c.MaxFood)
	}
	return invalid
}

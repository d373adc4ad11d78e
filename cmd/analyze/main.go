// Command analyze prints quick, human-readable heuristics about configuration
// files in the project's configs directory. It summarizes the board, the speed
// curve (move interval by snake length), when the interval floor is reached,
// and highlights food lifetimes too short to cross the board.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jharris119/snake/game/engine"
)

// curveSamples caps how many speed curve rows are printed per config
const curveSamples = 8

// Analysis holds the derived numbers for one configuration
type Analysis struct {
	Config        *engine.GameConfig
	Capacity      int
	LengthAtFloor int
	TimeToFloor   time.Duration
	Curve         []engine.SpeedStep
	// CrossingTime is the time a length-1 snake needs to cross the board's longest path
	CrossingTime time.Duration
	Warnings     []string
}

func main() {
	dir := "configs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	files, err := configFiles(dir)
	if err != nil {
		fmt.Printf("Error reading %s: %v\n", dir, err)
		os.Exit(1)
	}

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		config, err := engine.LoadGameConfig(file)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			continue
		}
		printAnalysis(os.Stdout, analyzeConfig(config))
	}
}

func configFiles(dir string) ([]string, error) {
	var files []string
	for _, ext := range engine.ConfigExtensions {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

func analyzeConfig(config *engine.GameConfig) Analysis {
	config = config.WithDefaults()
	capacity := config.Rows * config.Cols

	a := Analysis{
		Config:        config,
		Capacity:      capacity,
		LengthAtFloor: engine.LengthAtFloor(config),
		Curve:         engine.SpeedCurve(config, capacity),
	}
	if a.LengthAtFloor > 0 {
		a.TimeToFloor = engine.TimeToLength(config, a.LengthAtFloor)
	}

	// Corner to opposite corner, at the slowest speed
	steps := config.Rows - 1 + config.Cols - 1
	a.CrossingTime = time.Duration(steps) * config.TickInterval(1)

	if a.LengthAtFloor < 0 {
		a.Warnings = append(a.Warnings, "speed never changes (speedup is 0)")
	} else if a.LengthAtFloor > capacity {
		a.Warnings = append(a.Warnings, fmt.Sprintf("floor is reached at length %d, beyond the board capacity %d", a.LengthAtFloor, capacity))
	}
	if lifetime := time.Duration(config.FoodLifetimeMs.Max) * time.Millisecond; lifetime < a.CrossingTime {
		a.Warnings = append(a.Warnings, fmt.Sprintf("food lives at most %v but crossing the board takes %v at length 1", lifetime, a.CrossingTime))
	}
	if config.MaxFood*4 > capacity {
		a.Warnings = append(a.Warnings, fmt.Sprintf("max food %d covers more than a quarter of the board", config.MaxFood))
	}
	return a
}

// sampleCurve keeps the first and last steps and spreads the rest evenly
func sampleCurve(curve []engine.SpeedStep, n int) []engine.SpeedStep {
	if len(curve) <= n || n < 2 {
		return curve
	}
	out := make([]engine.SpeedStep, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, curve[i*(len(curve)-1)/(n-1)])
	}
	return out
}

func printAnalysis(w io.Writer, a Analysis) {
	c := a.Config
	fmt.Fprintf(w, "Name: %s\n", c.Name)
	fmt.Fprintf(w, "Board: %d rows x %d cols (capacity %d)\n", c.Rows, c.Cols, a.Capacity)
	fmt.Fprintf(w, "Turn Interval: %dms, floor %dms, -%dms per segment\n", c.TurnIntervalMs, c.MinIntervalMs, c.SpeedupPerSegmentMs)
	fmt.Fprintf(w, "Food: max %d, lifetime %d-%dms, first spawn after %d-%dms\n",
		c.MaxFood, c.FoodLifetimeMs.Min, c.FoodLifetimeMs.Max, c.SpawnDelayMs.Min, c.SpawnDelayMs.Max)

	if a.LengthAtFloor > 0 {
		fmt.Fprintf(w, "Floor reached at length %d after at least %v\n", a.LengthAtFloor, a.TimeToFloor)
	}

	fmt.Fprintln(w, "Speed curve:")
	for _, step := range sampleCurve(a.Curve, curveSamples) {
		bar := strings.Repeat("#", int(step.Interval/(50*time.Millisecond)))
		fmt.Fprintf(w, "  len %4d  %6v  %s\n", step.Length, step.Interval, bar)
	}

	if len(a.Warnings) == 0 {
		fmt.Fprintln(w, "✅ No issues found")
		return
	}
	for _, warning := range a.Warnings {
		fmt.Fprintf(w, "⚠️  WARNING: %s\n", warning)
	}
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jharris119/snake/game/engine"
)

func testConfig() *engine.GameConfig {
	return &engine.GameConfig{
		Name:                "Test Config",
		Rows:                10,
		Cols:                10,
		TurnIntervalMs:      1000,
		MinIntervalMs:       100,
		SpeedupPerSegmentMs: 100,
		MaxFood:             5,
	}
}

func TestAnalyzeConfig(t *testing.T) {
	a := analyzeConfig(testConfig())

	if a.Capacity != 100 {
		t.Errorf("Expected capacity 100, got %d", a.Capacity)
	}
	if a.LengthAtFloor != 10 {
		t.Errorf("Expected floor at length 10, got %d", a.LengthAtFloor)
	}
	if a.TimeToFloor != 5400*time.Millisecond {
		t.Errorf("Expected 5.4s to the floor, got %v", a.TimeToFloor)
	}
	if len(a.Curve) != 10 {
		t.Fatalf("Expected 10 curve steps, got %d", len(a.Curve))
	}
	if last := a.Curve[len(a.Curve)-1]; last.Interval != 100*time.Millisecond {
		t.Errorf("Expected curve to end at the floor, got %v", last.Interval)
	}
	if a.CrossingTime != 18*time.Second {
		t.Errorf("Expected 18s crossing time, got %v", a.CrossingTime)
	}

	// Default food lifetime (10s max) is shorter than the crossing time
	if len(a.Warnings) != 1 || !strings.Contains(a.Warnings[0], "food lives at most") {
		t.Errorf("Expected one food lifetime warning, got %v", a.Warnings)
	}
}

func TestAnalyzeConfig_Warnings(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(c *engine.GameConfig)
		contains string
	}{
		{
			name: "crowded board",
			modify: func(c *engine.GameConfig) {
				c.Rows, c.Cols = 4, 4
				c.MaxFood = 5
				c.FoodLifetimeMs = engine.Range{Min: 9000, Max: 9000}
			},
			contains: "quarter of the board",
		},
		{
			name: "floor beyond capacity",
			modify: func(c *engine.GameConfig) {
				c.Rows, c.Cols = 3, 3
				c.MaxFood = 1
				c.SpeedupPerSegmentMs = 10
				c.FoodLifetimeMs = engine.Range{Min: 9000, Max: 9000}
			},
			contains: "beyond the board capacity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig()
			tt.modify(config)
			a := analyzeConfig(config)
			found := false
			for _, w := range a.Warnings {
				if strings.Contains(w, tt.contains) {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected a warning containing %q, got %v", tt.contains, a.Warnings)
			}
		})
	}
}

func TestSampleCurve(t *testing.T) {
	curve := engine.SpeedCurve(testConfig(), 100)

	sampled := sampleCurve(curve, 4)
	if len(sampled) != 4 {
		t.Fatalf("Expected 4 samples, got %d", len(sampled))
	}
	want := []int{1, 4, 7, 10}
	for i, step := range sampled {
		if step.Length != want[i] {
			t.Errorf("Sample %d: expected length %d, got %d", i, want[i], step.Length)
		}
	}

	if short := sampleCurve(curve[:3], 4); len(short) != 3 {
		t.Errorf("Short curves should be returned as is, got %d steps", len(short))
	}
}

func TestPrintAnalysis(t *testing.T) {
	var out bytes.Buffer
	printAnalysis(&out, analyzeConfig(testConfig()))

	for _, want := range []string{
		"Name: Test Config",
		"Board: 10 rows x 10 cols (capacity 100)",
		"Floor reached at length 10",
		"len   10",
		"WARNING",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Output missing %q:\n%s", want, out.String())
		}
	}
}

func TestConfigFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.yaml", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := configFiles(dir)
	if err != nil {
		t.Fatalf("configFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 files, got %v", files)
	}
	if filepath.Base(files[0]) != "a.yaml" {
		t.Errorf("Expected sorted output, got %v", files)
	}
}

func TestAnalyzeProjectConfigs(t *testing.T) {
	configDir := filepath.Join("..", "..", "configs")
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	files, err := configFiles(configDir)
	if err != nil {
		t.Fatalf("configFiles failed: %v", err)
	}
	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			config, err := engine.LoadGameConfig(file)
			if err != nil {
				t.Fatalf("Failed to load: %v", err)
			}
			a := analyzeConfig(config)
			if len(a.Curve) == 0 {
				t.Error("Expected a non-empty speed curve")
			}
		})
	}
}

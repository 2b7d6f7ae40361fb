package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pthm-cable/biosim/config"
	"github.com/pthm-cable/biosim/island"
	"github.com/pthm-cable/biosim/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output stats windows via slog")
	logText := flag.Bool("log-text", false, "Log as text instead of JSON")
	logEvery := flag.Int("log-every", 0, "Stats window size in years (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = use config)")
	years := flag.Int("years", -1, "Years to simulate (-1 = use config)")
	generate := flag.Bool("generate", false, "Replace the configured map with a generated one")
	printMap := flag.Bool("print-map", false, "Print the map and exit")
	perfWindow := flag.Int("perf-window", 10, "Years averaged in perf stats (0 = disable)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, nil)
	if *logText {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// CLI overrides
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *years >= 0 {
		cfg.Years = *years
	}
	if *logEvery > 0 {
		cfg.Telemetry.LogEvery = *logEvery
	}
	if *generate {
		geo, err := island.GenerateGeography(cfg.Generator, cfg.Seed)
		if err != nil {
			slog.Error("failed to generate map", "error", err)
			os.Exit(1)
		}
		cfg.Geography = geo.String()
	}
	if *printMap {
		fmt.Println(cfg.Geography)
		return
	}

	runID := telemetry.NewRunID()
	out, err := telemetry.NewOutputManager(*outputDir, runID)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	opts := island.Options{
		RunID:    runID,
		Output:   out,
		LogStats: *logStats,
	}
	if *perfWindow > 0 {
		opts.Perf = telemetry.NewPerfCollector(*perfWindow)
	}

	sim, err := island.NewSimulationFromConfig(cfg, opts)
	if err != nil {
		out.Close()
		slog.Error("failed to build simulation", "error", err)
		os.Exit(1)
	}

	slog.Info("starting simulation",
		"run_id", runID,
		"seed", cfg.Seed,
		"years", cfg.Years,
		"output_dir", out.Dir(),
	)
	if err := sim.Simulate(cfg.Years); err != nil {
		out.Close()
		slog.Error("simulation failed", "year", sim.Year(), "error", err)
		os.Exit(1)
	}

	if err := out.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
		os.Exit(1)
	}
	slog.Info("simulation finished", "year", sim.Year(), "animals", sim.NumAnimalsPerSpecies())
}

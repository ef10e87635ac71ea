// Command brtsim runs a single-route discrete-event bus-bunching simulation.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jwmdev/brtsim/internal/config"
	"github.com/jwmdev/brtsim/internal/engine"
	"github.com/jwmdev/brtsim/internal/ingest"
	"github.com/jwmdev/brtsim/internal/logging"
	"github.com/jwmdev/brtsim/internal/report"
	"github.com/jwmdev/brtsim/internal/rng"
)

var (
	configPath  string
	stopsPath   string
	signalsPath string
	reportPath  string
	seed        int64
	debug       bool
)

var rootCmd = &cobra.Command{
	Use:          "brtsim",
	Short:        "Discrete-event bus-bunching simulator",
	Long:         "Simulates a single bus route to evaluate bunching-control strategies",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to the TOML run configuration (required)")
	rootCmd.Flags().StringVar(&stopsPath, "stops", "", "path to the stops CSV file (required)")
	rootCmd.Flags().StringVar(&signalsPath, "signals", "", "path to the signals CSV file (required)")
	rootCmd.Flags().StringVar(&reportPath, "report", "", "if set, write a CSV report to this file or directory (timestamp appended)")
	rootCmd.Flags().Int64Var(&seed, "seed", 1, "RNG seed, for reproducible runs")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug-level logging")
	_ = rootCmd.MarkFlagRequired("config")
	_ = rootCmd.MarkFlagRequired("stops")
	_ = rootCmd.MarkFlagRequired("signals")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := logging.New(debug)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	stopsFile, err := os.Open(stopsPath)
	if err != nil {
		return fmt.Errorf("open stops file: %w", err)
	}
	defer stopsFile.Close()
	stops, err := ingest.StopDefinitions(stopsFile)
	if err != nil {
		return fmt.Errorf("parse stops file: %w", err)
	}

	signalsFile, err := os.Open(signalsPath)
	if err != nil {
		return fmt.Errorf("open signals file: %w", err)
	}
	defer signalsFile.Close()
	signals, err := ingest.SignalDefinitions(signalsFile)
	if err != nil {
		return fmt.Errorf("parse signals file: %w", err)
	}

	source := rng.New(seed)
	sim, err := engine.Setup(cfg, stops, signals, source, logger)
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	logger.Info("simulation starting", "route", cfg.General.Route, "stops", len(stops), "signals", len(signals), "fleet", cfg.Schedule.Shift, "seed", seed)
	if err := sim.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	logger.Info("simulation finished", "generated", sim.Generated, "served", sim.Served)

	summary := report.Summary{
		BusesOnRoute:       len(sim.Fleet.Buses),
		Generated:          sim.Generated,
		Served:             sim.Served,
		HeadwayDevSum:      sim.HeadwayDevSum,
		HeadwayDevContribs: sim.HeadwayDevContribs,
		FleetSize:          len(sim.Fleet.Buses),
	}

	report.PrintConsoleReport(summary)

	if reportPath != "" {
		outPath, err := report.WriteCSVReport(reportPath, summary)
		if err != nil {
			logger.Error("write CSV report failed", "error", err)
		} else {
			logger.Info("CSV report written", "path", outPath)
		}
	}

	return nil
}

package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/windlass-sim/windlass-sim/sim"
	"github.com/windlass-sim/windlass-sim/sim/install"
	"github.com/windlass-sim/windlass-sim/sim/record"
	"github.com/windlass-sim/windlass-sim/sim/weather"
)

var (
	// CLI flags shared by the run subcommand
	projectPath string // Project configuration YAML
	vesselsPath string // Optional vessel library YAML
	weatherPath string // Optional weather series CSV (overrides config)
	logLevel    string // Log verbosity level
	resultsPath string // Results JSON output path
	actionsDB   string // SQLite action log path ("auto" picks a fresh name)

	// Overrides applied on top of the project config
	vesselName  string // Library vessel to use instead of spi_vessel
	numTurbines int    // Number of turbines to install
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "windlass-sim",
	Short: "Discrete-event simulator for offshore wind installation logistics",
}

// runCmd executes the installation simulation described by the project
// config, with optional weather gating and action recording.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scour protection installation simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if projectPath == "" {
			logrus.Fatalf("Project config not provided. Exiting simulation.")
		}
		cfg, err := LoadProjectConfig(projectPath)
		if err != nil {
			logrus.Fatalf("Failed to load project config: %v", err)
		}
		if numTurbines > 0 {
			cfg.Plant.NumTurbines = numTurbines
		}

		// Resolve the installation vessel
		lib, err := LoadVesselLibrary(vesselsPath)
		if err != nil {
			logrus.Fatalf("Failed to load vessel library: %v", err)
		}
		ref := cfg.SPIVessel
		if vesselName != "" {
			ref = VesselRef{Name: vesselName}
		}
		spec, err := lib.Resolve(ref)
		if err != nil {
			logrus.Fatalf("Failed to resolve vessel: %v", err)
		}

		// Weather gating is optional; without a series every operation
		// window is open.
		var constraints sim.ConstraintEvaluator
		var evaluator *weather.Evaluator
		seriesPath := weatherPath
		if seriesPath == "" {
			seriesPath = cfg.Weather.File
		}
		if seriesPath != "" {
			series, err := weather.LoadSeriesCSV(seriesPath)
			if err != nil {
				logrus.Fatalf("Failed to load weather series: %v", err)
			}
			evaluator = weather.NewEvaluator(series, weather.VesselLimits(spec))
			constraints = evaluator
			logrus.Infof("Loaded %d hours of weather from %s", series.Len(), seriesPath)
		}

		env := sim.NewEnvironment()

		var store *record.Store
		if actionsDB != "" {
			dbPath := actionsDB
			if dbPath == "auto" {
				dbPath = "" // let the store pick a fresh name
			}
			store, err = record.NewStore(dbPath)
			if err != nil {
				logrus.Fatalf("Failed to open actions database: %v", err)
			}
			env.SetRecorder(store)
		}

		phase, err := install.NewScourProtection(env, cfg.ScourInstallConfig(spec), constraints)
		if err != nil {
			logrus.Fatalf("Invalid installation setup: %v", err)
		}
		phase.Start()

		logrus.Infof("Starting simulation: %d turbines, %.1fkm to site, vessel %s",
			cfg.Plant.NumTurbines, cfg.Site.Distance, spec.Name)
		startTime := time.Now()

		if err := env.Run(); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		if store != nil {
			if err := store.Close(); err != nil {
				logrus.Fatalf("Failed to flush actions database: %v", err)
			}
			logrus.Infof("Actions written to %s", store.Path())
		}

		results := buildResults(projectPath, spec, env, phase, evaluator)
		printSummary(results, time.Since(startTime))

		if resultsPath != "" {
			if err := WriteResults(resultsPath, results); err != nil {
				logrus.Fatalf("Failed to write results: %v", err)
			}
			logrus.Infof("Results written to %s", resultsPath)
		}

		logrus.Info("Simulation complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&projectPath, "config", "", "Project configuration YAML")
	runCmd.Flags().StringVar(&vesselsPath, "vessels", "", "Vessel library YAML (adds to the built-in library)")
	runCmd.Flags().StringVar(&weatherPath, "weather", "", "Weather series CSV (overrides weather.file in the config)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&resultsPath, "results", "", "Write results JSON to this path")
	runCmd.Flags().StringVar(&actionsDB, "actions-db", "", "Record every vessel action into this SQLite file (\"auto\" picks a fresh name)")

	// Project overrides
	runCmd.Flags().StringVar(&vesselName, "vessel", "", "Use this library vessel instead of spi_vessel")
	runCmd.Flags().IntVar(&numTurbines, "num-turbines", 0, "Override plant.num_turbines")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}

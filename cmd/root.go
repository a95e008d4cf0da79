package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chainsim/chainsim/sim"
	"github.com/chainsim/chainsim/sim/policy"
	"github.com/chainsim/chainsim/sim/workload"
)

var (
	// CLI flags shared by the run and serve subcommands
	logLevel     string // Log verbosity level
	scenarioPath string // YAML scenario file (empty = built-in default chain)
	seed         int64  // Master seed; overrides the scenario's seed when set

	// CLI flags for the run subcommand
	horizon          int64 // Total simulated time (in ticks)
	tasksPerInterval int   // Step-pattern arrivals per interval (when no scenario file)
	taskLifetime     int64 // Lifetime budget per task (when no scenario file)

	// CLI flags for the serve subcommand
	listenAddr string // HTTP listen address
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "chainsim",
	Short: "Discrete-event simulator for elastic serving chains",
}

// setupLogging parses and applies the --log flag.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// loadScenario resolves the scenario from --scenario or falls back to the
// built-in chain, then applies flag overrides.
func loadScenario(cmd *cobra.Command) *Scenario {
	var (
		scenario *Scenario
		err      error
	)
	if scenarioPath != "" {
		scenario, err = LoadScenario(scenarioPath)
		if err != nil {
			logrus.Fatalf("Unable to load scenario: %v", err)
		}
	} else {
		scenario = DefaultScenario()
		scenario.Workload.Count = tasksPerInterval
		scenario.Workload.Lifetime = taskLifetime
	}
	if cmd.Flags().Changed("seed") {
		scenario.Cluster.Seed = seed
	}
	return scenario
}

// runCmd executes one simulation to the horizon and prints the metrics
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the chain simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		scenario := loadScenario(cmd)

		cluster, err := sim.NewCluster(scenario.Cluster)
		if err != nil {
			logrus.Fatalf("Unable to build cluster: %v", err)
		}

		workloadRNG := sim.NewPartitionedRNG(sim.NewSimulationKey(scenario.Cluster.Seed)).
			ForSubsystem(sim.SubsystemWorkload)
		pattern, err := workload.New(scenario.Workload.Config, workloadRNG)
		if err != nil {
			logrus.Fatalf("Unable to build traffic pattern: %v", err)
		}
		scaler, err := policy.New(scenario.Autoscaler.Policy, scenario.Autoscaler.Config)
		if err != nil {
			logrus.Fatalf("Unable to build autoscaler: %v", err)
		}

		logrus.Infof("Starting simulation: %d stages, horizon=%d ticks, pattern=%s, policy=%s",
			len(scenario.Cluster.Deployments), horizon, pattern.Name(), scaler.Name())

		startTime := time.Now()

		// Put the whole offered load on the event timeline up front.
		arrivals := pattern.Arrivals(horizon, scenario.Workload.Interval)
		for _, a := range arrivals {
			cluster.Schedule(sim.NewTaskArrivalEvent(a.Time, a.Count, scenario.Workload.Lifetime))
		}

		// Advance the clock one policy interval at a time, letting the
		// autoscaler observe and act between windows.
		for cluster.Clock() < horizon {
			step := scenario.Autoscaler.Interval
			if remaining := horizon - cluster.Clock(); remaining < step {
				step = remaining
			}
			cluster.Update(step)
			cluster.UpdateDeployments(scaler.Scale(cluster.Metrics()))
		}

		cluster.Metrics().Print()
		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
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
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&scenarioPath, "scenario", "", "Path to a scenario YAML file")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Master seed for all sampling")

	runCmd.Flags().Int64Var(&horizon, "horizon", 100000, "Total simulation horizon (in ticks)")
	runCmd.Flags().IntVar(&tasksPerInterval, "tasks-per-interval", 5, "Tasks offered per workload interval (step pattern)")
	runCmd.Flags().Int64Var(&taskLifetime, "lifetime", 10000, "Lifetime budget per task (in ticks)")

	serveCmd.Flags().StringVar(&listenAddr, "addr", ":8080", "HTTP listen address")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
}

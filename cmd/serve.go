package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chainsim/chainsim/server"
	"github.com/chainsim/chainsim/sim"
)

// serveCmd exposes a cluster over HTTP so external autoscalers can poll
// metrics, inject load, advance the clock, and issue scale actions at a
// cadence of their choosing.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a chain simulation over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		scenario := loadScenario(cmd)

		cluster, err := sim.NewCluster(scenario.Cluster)
		if err != nil {
			logrus.Fatalf("Unable to build cluster: %v", err)
		}

		srv := server.New(cluster)
		if err := srv.ListenAndServe(listenAddr); err != nil {
			logrus.Fatalf("Server failed: %v", err)
		}
	},
}

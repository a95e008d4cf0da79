package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/chainsim/chainsim/sim"
)

// Gauges mirroring the per-deployment metrics tuple for Prometheus
// scrapers. Values are Set from snapshots rather than incremented: the
// simulation core owns the counters, the exporter only reflects them.
var (
	deploymentGauges = map[string]*prometheus.GaugeVec{}

	clusterSubmitted = promauto.With(prometheus.DefaultRegisterer).NewGauge(prometheus.GaugeOpts{
		Name: "chainsim_tasks_submitted",
		Help: "Tasks offered to the chain, counted even when immediately rejected.",
	})
	clusterCompleted = promauto.With(prometheus.DefaultRegisterer).NewGauge(prometheus.GaugeOpts{
		Name: "chainsim_tasks_completed",
		Help: "Tasks that exited the final stage alive.",
	})
	clusterClock = promauto.With(prometheus.DefaultRegisterer).NewGauge(prometheus.GaugeOpts{
		Name: "chainsim_clock_ticks",
		Help: "Current simulated time.",
	})
)

func init() {
	gauge := func(name, help string) *prometheus.GaugeVec {
		return promauto.With(prometheus.DefaultRegisterer).NewGaugeVec(
			prometheus.GaugeOpts{Name: name, Help: help},
			[]string{"deployment"},
		)
	}
	deploymentGauges["pods"] = gauge("chainsim_deployment_pods", "Total pods in the pool.")
	deploymentGauges["active_pods"] = gauge("chainsim_deployment_active_pods", "Pods with at least one active task.")
	deploymentGauges["active_tasks"] = gauge("chainsim_deployment_active_tasks", "Active tasks across pods.")
	deploymentGauges["cpu_usage"] = gauge("chainsim_deployment_cpu_usage", "Total cpu usage.")
	deploymentGauges["cpu_capacity"] = gauge("chainsim_deployment_cpu_capacity", "Total cpu capacity.")
	deploymentGauges["memory_usage"] = gauge("chainsim_deployment_memory_usage", "Total memory usage.")
	deploymentGauges["memory_capacity"] = gauge("chainsim_deployment_memory_capacity", "Total memory capacity.")
	deploymentGauges["queued_tasks"] = gauge("chainsim_deployment_queued_tasks", "Tasks waiting in the queue.")
	deploymentGauges["tasks_done"] = gauge("chainsim_deployment_tasks_done", "Tasks that finished this stage alive.")
	deploymentGauges["tasks_dead"] = gauge("chainsim_deployment_tasks_dead", "Tasks whose lifetime expired at this stage.")
	deploymentGauges["tasks_rejected"] = gauge("chainsim_deployment_tasks_rejected", "Tasks dropped by admission control.")
}

// record publishes a metrics snapshot to the Prometheus gauges.
func record(m sim.ClusterMetrics) {
	clusterSubmitted.Set(float64(m.Submitted))
	clusterCompleted.Set(float64(m.Completed))
	clusterClock.Set(float64(m.Clock))
	for _, d := range m.Deployments {
		deploymentGauges["pods"].WithLabelValues(d.Name).Set(float64(d.Pods))
		deploymentGauges["active_pods"].WithLabelValues(d.Name).Set(float64(d.ActivePods))
		deploymentGauges["active_tasks"].WithLabelValues(d.Name).Set(float64(d.ActiveTasks))
		deploymentGauges["cpu_usage"].WithLabelValues(d.Name).Set(float64(d.CPU))
		deploymentGauges["cpu_capacity"].WithLabelValues(d.Name).Set(float64(d.CPUMax))
		deploymentGauges["memory_usage"].WithLabelValues(d.Name).Set(float64(d.Memory))
		deploymentGauges["memory_capacity"].WithLabelValues(d.Name).Set(float64(d.MemoryMax))
		deploymentGauges["queued_tasks"].WithLabelValues(d.Name).Set(float64(d.QueuedTasks))
		deploymentGauges["tasks_done"].WithLabelValues(d.Name).Set(float64(d.Done))
		deploymentGauges["tasks_dead"].WithLabelValues(d.Name).Set(float64(d.Dead))
		deploymentGauges["tasks_rejected"].WithLabelValues(d.Name).Set(float64(d.Rejected))
	}
}

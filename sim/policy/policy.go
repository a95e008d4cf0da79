// Package policy contains autoscaling policies that drive the cluster's
// scale control surface. A policy reads the pull-based metrics tuple and
// emits one action per deployment position per evaluation; it never
// touches cluster state directly.
package policy

import (
	"fmt"

	"github.com/chainsim/chainsim/sim"
)

// Autoscaler maps a metrics snapshot to one scale action per deployment,
// in chain order. Implementations must be pure with respect to cluster
// state: the returned slice is the only output channel.
type Autoscaler interface {
	Name() string
	Scale(m sim.ClusterMetrics) []sim.ScaleAction
}

// Noop holds the chain at its current size.
type Noop struct{}

func (Noop) Name() string { return "noop" }

func (Noop) Scale(m sim.ClusterMetrics) []sim.ScaleAction {
	return make([]sim.ScaleAction, len(m.Deployments))
}

// New constructs a policy by name.
func New(name string, cfg Config) (Autoscaler, error) {
	switch name {
	case "", "noop":
		return Noop{}, nil
	case "cpu-threshold":
		return NewCPUThreshold(cfg)
	case "queue-depth":
		return NewQueueDepth(cfg)
	default:
		return nil, fmt.Errorf("unknown autoscaler policy %q", name)
	}
}

// Config carries the knobs shared by the built-in policies.
type Config struct {
	HighWatermark float64 `yaml:"high_watermark"` // cpu-threshold: scale up above this utilization
	LowWatermark  float64 `yaml:"low_watermark"`  // cpu-threshold: scale down below this utilization
	MaxQueue      int     `yaml:"max_queue"`      // queue-depth: scale up above this backlog
}

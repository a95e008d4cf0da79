package policy

import (
	"fmt"

	"github.com/chainsim/chainsim/sim"
)

// CPUThreshold scales on cpu utilization: a stage above the high
// watermark gains a pod, a stage below the low watermark loses one
// (subject to the cluster's own one-pod floor). Between the watermarks
// the stage is left alone, which gives the policy hysteresis.
type CPUThreshold struct {
	high float64
	low  float64
}

// NewCPUThreshold validates the watermarks and builds the policy.
func NewCPUThreshold(cfg Config) (*CPUThreshold, error) {
	if cfg.HighWatermark <= 0 || cfg.HighWatermark > 1 {
		return nil, fmt.Errorf("high_watermark must be in (0, 1], got %v", cfg.HighWatermark)
	}
	if cfg.LowWatermark < 0 || cfg.LowWatermark >= cfg.HighWatermark {
		return nil, fmt.Errorf("low_watermark must be in [0, high_watermark), got %v", cfg.LowWatermark)
	}
	return &CPUThreshold{high: cfg.HighWatermark, low: cfg.LowWatermark}, nil
}

func (*CPUThreshold) Name() string { return "cpu-threshold" }

func (p *CPUThreshold) Scale(m sim.ClusterMetrics) []sim.ScaleAction {
	actions := make([]sim.ScaleAction, len(m.Deployments))
	for i, d := range m.Deployments {
		if d.CPUMax == 0 {
			continue
		}
		util := float64(d.CPU) / float64(d.CPUMax)
		switch {
		case util > p.high:
			actions[i] = sim.ScaleUp
		case util < p.low && d.Pods > 1:
			actions[i] = sim.ScaleDown
		}
	}
	return actions
}

// QueueDepth scales on backlog: a stage whose queue exceeds MaxQueue
// gains a pod; a stage with an empty queue and idle capacity loses one.
type QueueDepth struct {
	maxQueue int
}

// NewQueueDepth validates the backlog bound and builds the policy.
func NewQueueDepth(cfg Config) (*QueueDepth, error) {
	if cfg.MaxQueue < 0 {
		return nil, fmt.Errorf("max_queue must be >= 0, got %d", cfg.MaxQueue)
	}
	return &QueueDepth{maxQueue: cfg.MaxQueue}, nil
}

func (*QueueDepth) Name() string { return "queue-depth" }

func (p *QueueDepth) Scale(m sim.ClusterMetrics) []sim.ScaleAction {
	actions := make([]sim.ScaleAction, len(m.Deployments))
	for i, d := range m.Deployments {
		switch {
		case d.QueuedTasks > p.maxQueue:
			actions[i] = sim.ScaleUp
		case d.QueuedTasks == 0 && d.ActivePods < d.Pods && d.Pods > 1:
			actions[i] = sim.ScaleDown
		}
	}
	return actions
}

package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chainsim/chainsim/sim"
	"github.com/chainsim/chainsim/sim/policy"
	"github.com/chainsim/chainsim/sim/workload"
)

// Scenario is the YAML description of a full simulation run: the chain
// topology, the traffic offered to it, and the autoscaler driving it.
type Scenario struct {
	Cluster    sim.ClusterConfig `yaml:"cluster"`
	Workload   WorkloadSpec      `yaml:"workload"`
	Autoscaler AutoscalerSpec    `yaml:"autoscaler"`
}

// WorkloadSpec shapes the offered load.
type WorkloadSpec struct {
	workload.Config `yaml:",inline"`

	Interval int64 `yaml:"interval"` // ticks between arrival batches
	Lifetime int64 `yaml:"lifetime"` // lifetime budget per task (ticks)
}

// AutoscalerSpec selects and parameterizes the scaling policy.
type AutoscalerSpec struct {
	policy.Config `yaml:",inline"`

	Policy   string `yaml:"policy"`   // noop (default), cpu-threshold, queue-depth
	Interval int64  `yaml:"interval"` // ticks between policy evaluations
}

// Validate checks the parts the sim and policy packages do not check
// themselves.
func (s *Scenario) Validate() error {
	if err := s.Cluster.Validate(); err != nil {
		return err
	}
	if s.Workload.Interval <= 0 {
		return fmt.Errorf("workload.interval must be > 0, got %d", s.Workload.Interval)
	}
	if s.Workload.Lifetime <= 0 {
		return fmt.Errorf("workload.lifetime must be > 0, got %d", s.Workload.Lifetime)
	}
	if s.Autoscaler.Interval <= 0 {
		return fmt.Errorf("autoscaler.interval must be > 0, got %d", s.Autoscaler.Interval)
	}
	return nil
}

// DefaultScenario mirrors the conventional three-stage chain: one pod per
// stage, ~1000-tick tasks, five tasks offered per 1000-tick interval, a
// noop autoscaler.
func DefaultScenario() *Scenario {
	mkStage := func(name string) sim.DeploymentConfig {
		return sim.DeploymentConfig{
			Name:        name,
			InitialPods: 1,
			QueueLength: 100,
			Profile:     sim.DefaultResourceProfile(),
		}
	}
	return &Scenario{
		Cluster: sim.ClusterConfig{
			Seed: 42,
			Deployments: []sim.DeploymentConfig{
				mkStage("frontend"), mkStage("backend"), mkStage("database"),
			},
		},
		Workload: WorkloadSpec{
			Config:   workload.Config{Pattern: "step", Count: 5},
			Interval: 1000,
			Lifetime: 10000,
		},
		Autoscaler: AutoscalerSpec{
			Policy:   "noop",
			Interval: 1000,
		},
	}
}

// LoadScenario reads and validates a scenario YAML file. Fields absent
// from the file keep the defaults of DefaultScenario, so a scenario may
// override only the parts it cares about.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s := DefaultScenario()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

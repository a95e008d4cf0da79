package sim

import "fmt"

// ResourceProfile describes how a deployment's pods consume resources.
// Nominal per-task costs are the centers of normal distributions; the
// *Rand fields are standard deviations expressed as fractions of the
// nominal (0.1 = ±10% at one sigma). Draws are clamped to ±3 sigma,
// floored at 1, and rounded to integers.
type ResourceProfile struct {
	DurationTask float64 `yaml:"duration_task"` // mean processing time per task (ticks)
	DurationRand float64 `yaml:"duration_rand"` // duration randomness fraction

	CPUTask float64 `yaml:"cpu_task"` // mean cpu cost per task
	CPURand float64 `yaml:"cpu_rand"` // cpu randomness fraction
	CPUBase int64   `yaml:"cpu_base"` // cpu usage of an idle pod
	CPUMax  int64   `yaml:"cpu_max"`  // cpu capacity of a pod

	MemoryTask float64 `yaml:"memory_task"` // mean memory cost per task
	MemoryRand float64 `yaml:"memory_rand"` // memory randomness fraction
	MemoryBase int64   `yaml:"memory_base"` // memory usage of an idle pod
	MemoryMax  int64   `yaml:"memory_max"`  // memory capacity of a pod
}

// DefaultResourceProfile mirrors the conventional single-stage profile:
// ~1000-tick tasks at ±10%, cost 20 of each resource on a base of 1.
func DefaultResourceProfile() ResourceProfile {
	return ResourceProfile{
		DurationTask: 1000, DurationRand: 0.1,
		CPUTask: 20, CPURand: 0.1, CPUBase: 1, CPUMax: 100,
		MemoryTask: 20, MemoryRand: 0.1, MemoryBase: 1, MemoryMax: 100,
	}
}

// Validate checks the profile for values the sampler cannot work with.
func (p ResourceProfile) Validate() error {
	if p.DurationTask <= 0 {
		return fmt.Errorf("DurationTask must be > 0, got %v", p.DurationTask)
	}
	if p.CPUTask <= 0 {
		return fmt.Errorf("CPUTask must be > 0, got %v", p.CPUTask)
	}
	if p.MemoryTask <= 0 {
		return fmt.Errorf("MemoryTask must be > 0, got %v", p.MemoryTask)
	}
	if p.DurationRand < 0 || p.CPURand < 0 || p.MemoryRand < 0 {
		return fmt.Errorf("randomness fractions must be >= 0, got duration=%v cpu=%v memory=%v",
			p.DurationRand, p.CPURand, p.MemoryRand)
	}
	if p.CPUBase < 0 || p.MemoryBase < 0 {
		return fmt.Errorf("base usage must be >= 0, got cpu=%d memory=%d", p.CPUBase, p.MemoryBase)
	}
	if p.CPUMax <= p.CPUBase {
		return fmt.Errorf("CPUMax (%d) must be > CPUBase (%d)", p.CPUMax, p.CPUBase)
	}
	if p.MemoryMax <= p.MemoryBase {
		return fmt.Errorf("MemoryMax (%d) must be > MemoryBase (%d)", p.MemoryMax, p.MemoryBase)
	}
	return nil
}

// DeploymentConfig describes one stage of the chain.
type DeploymentConfig struct {
	Name        string          `yaml:"name"`         // stable identifier; "deployment_<i>" if empty
	InitialPods int             `yaml:"initial_pods"` // pods provisioned at creation (>= 1)
	QueueLength int             `yaml:"queue_length"` // max tasks waiting; excess is rejected
	Profile     ResourceProfile `yaml:"profile"`
}

// Validate checks a single deployment configuration.
func (d DeploymentConfig) Validate() error {
	if d.InitialPods < 1 {
		return fmt.Errorf("InitialPods must be >= 1, got %d", d.InitialPods)
	}
	if d.QueueLength < 0 {
		return fmt.Errorf("QueueLength must be >= 0, got %d", d.QueueLength)
	}
	if err := d.Profile.Validate(); err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	return nil
}

// ClusterConfig describes the whole ordered chain plus the master seed.
type ClusterConfig struct {
	Seed        int64              `yaml:"seed"`
	Deployments []DeploymentConfig `yaml:"deployments"`
}

// Validate checks the chain configuration: at least one stage, unique
// names, each stage valid on its own. Empty names are legal here; they
// are assigned by NewCluster before pods are built.
func (c ClusterConfig) Validate() error {
	if len(c.Deployments) < 1 {
		return fmt.Errorf("cluster needs >= 1 deployment, got %d", len(c.Deployments))
	}
	seen := make(map[string]bool, len(c.Deployments))
	for i, d := range c.Deployments {
		if d.Name != "" {
			if seen[d.Name] {
				return fmt.Errorf("deployment %d: duplicate name %q", i, d.Name)
			}
			seen[d.Name] = true
		}
		if err := d.Validate(); err != nil {
			return fmt.Errorf("deployment %d (%s): %w", i, d.Name, err)
		}
	}
	return nil
}

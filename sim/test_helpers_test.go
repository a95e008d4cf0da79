package sim

import "testing"

// exactProfile returns a profile with all randomness fractions zeroed so
// every draw is exactly the nominal value, rounded. cpuMax/memoryMax of
// base+cost admit exactly one concurrent task per pod.
func exactProfile(duration, cpu, memory float64, cpuMax, memoryMax int64) ResourceProfile {
	return ResourceProfile{
		DurationTask: duration, DurationRand: 0,
		CPUTask: cpu, CPURand: 0, CPUBase: 1, CPUMax: cpuMax,
		MemoryTask: memory, MemoryRand: 0, MemoryBase: 1, MemoryMax: memoryMax,
	}
}

// singleSlotProfile admits exactly one task at a time per pod:
// base 1 + cost 20 = 21 = capacity.
func singleSlotProfile(duration float64) ResourceProfile {
	return exactProfile(duration, 20, 20, 21, 21)
}

// mustNewCluster builds a cluster or fails the test.
func mustNewCluster(t *testing.T, cfg ClusterConfig) *Cluster {
	t.Helper()
	c, err := NewCluster(cfg)
	if err != nil {
		t.Fatalf("NewCluster() failed: %v", err)
	}
	return c
}

// stage builds a DeploymentConfig for cluster tests.
func stage(name string, pods, queueLength int, profile ResourceProfile) DeploymentConfig {
	return DeploymentConfig{
		Name:        name,
		InitialPods: pods,
		QueueLength: queueLength,
		Profile:     profile,
	}
}

// fakeScheduler records scheduled events without firing them, for
// deployment and pod tests that drive completions by hand.
type fakeScheduler struct {
	clock  int64
	events []Event
}

func (f *fakeScheduler) Schedule(ev Event) { f.events = append(f.events, ev) }
func (f *fakeScheduler) Clock() int64      { return f.clock }

// completions filters the recorded events down to task completions.
func (f *fakeScheduler) completions() []*TaskCompletionEvent {
	var out []*TaskCompletionEvent
	for _, ev := range f.events {
		if c, ok := ev.(*TaskCompletionEvent); ok {
			out = append(out, c)
		}
	}
	return out
}

// checkConservation asserts task conservation: every submitted task is
// in exactly one of queued/processing/rejected/dead/completed.
func checkConservation(t *testing.T, c *Cluster) {
	t.Helper()
	m := c.Metrics()
	var resident, rejected, dead int64
	for _, d := range m.Deployments {
		resident += int64(d.QueuedTasks) + int64(d.ActiveTasks)
		rejected += d.Rejected
		dead += d.Dead
	}
	total := resident + rejected + dead + m.Completed
	if total != m.Submitted {
		t.Errorf("conservation violated at tick %d: submitted=%d but queued+processing=%d rejected=%d dead=%d completed=%d (sum %d)",
			m.Clock, m.Submitted, resident, rejected, dead, m.Completed, total)
	}
}

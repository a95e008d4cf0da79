// Implements the Cluster: the ordered deployment chain, the simulated
// clock, and the event loop. Tasks enter at the head of the chain, are
// forwarded stage to stage on alive completion, and are finalized at the
// tail. All scheduled events fire inside Update(steps), in nondecreasing
// timestamp order with ties broken by scheduling order.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ScaleAction is one per-deployment instruction for UpdateDeployments.
type ScaleAction int

const (
	ScaleNone ScaleAction = 0
	ScaleUp   ScaleAction = 1
	ScaleDown ScaleAction = -1
)

// Cluster owns the deployment chain and the shared simulated clock.
//
// Thread-safety: NOT thread-safe. Exactly one logical thread of control
// advances the clock; admission, dispatch, accounting and scaling all run
// synchronously inside an update pass or an event callback.
type Cluster struct {
	deployments []*Deployment
	byID        map[string]*Deployment

	clock  int64
	events *EventHeap
	rng    *PartitionedRNG

	// Counters.
	Submitted int64 // tasks offered, counted even when immediately rejected
	Completed int64 // tasks that exited the final stage alive

	taskSeq int64
}

// NewCluster builds the chain described by cfg. Deployments without a
// configured name get a generated stable one ("deployment_<i>").
func NewCluster(cfg ClusterConfig) (*Cluster, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cluster config: %w", err)
	}

	c := &Cluster{
		byID:   make(map[string]*Deployment, len(cfg.Deployments)),
		events: NewEventHeap(),
		rng:    NewPartitionedRNG(NewSimulationKey(cfg.Seed)),
	}
	for i, dc := range cfg.Deployments {
		name := dc.Name
		if name == "" {
			name = fmt.Sprintf("deployment_%d", i)
		}
		if _, dup := c.byID[name]; dup {
			return nil, fmt.Errorf("cluster config: duplicate deployment name %q", name)
		}
		d := NewDeployment(name, dc, c.rng.ForSubsystem(SubsystemDeployment(name)), c)
		d.SetRouter(c)
		c.deployments = append(c.deployments, d)
		c.byID[name] = d
	}
	logrus.Infof("cluster: %d-stage chain ready", len(c.deployments))
	return c, nil
}

// Clock returns the current simulated time in ticks.
func (c *Cluster) Clock() int64 {
	return c.clock
}

// Schedule pushes an event onto the cluster's event heap.
func (c *Cluster) Schedule(ev Event) {
	c.events.Schedule(ev)
}

// Deployments returns the chain in order.
func (c *Cluster) Deployments() []*Deployment {
	return c.deployments
}

// AddTasks creates n independent tasks with the given lifetime budget and
// submits each to the first deployment. The submitted counter measures
// offered load: it is incremented per task unconditionally, even when the
// task is rejected downstream in the same call.
func (c *Cluster) AddTasks(n int, lifetime int64) {
	head := c.deployments[0]
	for i := 0; i < n; i++ {
		c.taskSeq++
		c.Submitted++
		t := NewTask(fmt.Sprintf("task_%d", c.taskSeq), lifetime)
		head.AddTask(t)
	}
}

// TaskFinished routes a task that completed a stage alive: forward it to
// the next stage with its already-decremented lifetime (never reset), or
// count it completed at the tail. This is the only point where a task's
// life continues past a single deployment.
func (c *Cluster) TaskFinished(t *Task, d *Deployment) {
	for i, stage := range c.deployments {
		if stage != d {
			continue
		}
		if i+1 < len(c.deployments) {
			c.deployments[i+1].AddTask(t)
		} else {
			c.Completed++
			logrus.Debugf("cluster: task %s completed (remaining %d)", t.ID, t.Remaining)
		}
		return
	}
	logrus.Warnf("cluster: TaskFinished from unknown deployment %s", d.ID())
}

// Update advances the simulated clock by steps ticks, firing every
// scheduled event that lands inside the window in nondecreasing time
// order; ties fire in original scheduling order. Events may schedule
// further events inside the window and those fire too.
func (c *Cluster) Update(steps int64) {
	target := c.clock + steps
	for {
		next := c.events.Peek()
		if next == nil || next.Timestamp() > target {
			break
		}
		c.events.PopNext()
		c.clock = next.Timestamp()
		logrus.Debugf("[tick %07d] Executing %T", c.clock, next)
		next.Execute(c)
	}
	c.clock = target
}

// PendingEvents returns the number of scheduled, not yet fired events.
func (c *Cluster) PendingEvents() int {
	return c.events.Len()
}

// UpdateDeployments applies one scale action per deployment position, in
// chain order: ScaleUp adds a pod, ScaleDown requests a deferred removal,
// anything else (including a missing trailing entry) is a no-op. Actions
// are independent; there is no cross-deployment coordination.
func (c *Cluster) UpdateDeployments(actions []ScaleAction) {
	for i, d := range c.deployments {
		if i >= len(actions) {
			break
		}
		switch actions[i] {
		case ScaleUp:
			d.AddPod()
		case ScaleDown:
			d.RemovePod()
		}
	}
}

// Metrics returns the cluster-level counters plus every deployment's
// refreshed tuple in chain order. Pull-based: no history is retained.
func (c *Cluster) Metrics() ClusterMetrics {
	m := ClusterMetrics{
		Clock:       c.clock,
		Submitted:   c.Submitted,
		Completed:   c.Completed,
		Deployments: make([]DeploymentMetrics, 0, len(c.deployments)),
	}
	for _, d := range c.deployments {
		m.Deployments = append(m.Deployments, d.Metrics())
	}
	return m
}

// handleTaskCompletion delivers a completion event to its deployment.
func (c *Cluster) handleTaskCompletion(e *TaskCompletionEvent) {
	d, ok := c.byID[e.DeploymentID]
	if !ok {
		logrus.Warnf("cluster: completion for unknown deployment %s", e.DeploymentID)
		return
	}
	d.completeTask(e)
}

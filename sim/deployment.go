// Implements the Deployment: an elastic pool of pods fed by a bounded FIFO
// queue. A deployment performs admission control, dispatches the queue head
// to capacity-available pods, classifies completed tasks as done or dead,
// and honors deferred scale-down requests without ever killing an active
// pod or dropping below the one-pod floor.

package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// EventScheduler is the clock-bearing event sink a deployment dispatches
// through. Cluster implements it; tests may substitute a fake.
type EventScheduler interface {
	Schedule(ev Event)
	Clock() int64
}

// TaskRouter receives tasks that finish a stage alive. Cluster implements
// it to forward survivors down the chain; a nil router finalizes nothing.
type TaskRouter interface {
	TaskFinished(t *Task, d *Deployment)
}

// Deployment is one stage of the serving chain.
//
// Thread-safety: NOT thread-safe. The pool and queue are mutated only
// within Update, AddTask, AddPod, RemovePod and the completion callback,
// all on the simulation's single logical thread.
type Deployment struct {
	id          string
	profile     ResourceProfile
	queueLength int

	pods   []*Pod
	queue  *TaskQueue
	podSeq int64 // pod ID counter; survives removals so IDs stay unique

	toRemove int // deferred scale-down requests not yet honored

	// Counters.
	Done     int64 // tasks that finished here alive
	Dead     int64 // tasks whose lifetime expired here
	Rejected int64 // tasks dropped by admission control

	rng       *rand.Rand
	scheduler EventScheduler
	router    TaskRouter
}

// NewDeployment creates a deployment with cfg.InitialPods pods, drawing
// all of its samples from rng and scheduling completions through sched.
func NewDeployment(id string, cfg DeploymentConfig, rng *rand.Rand, sched EventScheduler) *Deployment {
	d := &Deployment{
		id:          id,
		profile:     cfg.Profile,
		queueLength: cfg.QueueLength,
		queue:       &TaskQueue{},
		rng:         rng,
		scheduler:   sched,
	}
	for i := 0; i < cfg.InitialPods; i++ {
		d.AddPod()
	}
	return d
}

// ID returns the deployment's stable identifier.
func (d *Deployment) ID() string {
	return d.id
}

// SetRouter wires the stage into a chain. Called by NewCluster.
func (d *Deployment) SetRouter(r TaskRouter) {
	d.router = r
}

// AddPod appends a new pod configured with the deployment's resource
// profile. Growth is unbounded.
func (d *Deployment) AddPod() {
	d.podSeq++
	pod := NewPod(fmt.Sprintf("pod_%d", d.podSeq), d.profile, d.rng)
	d.pods = append(d.pods, pod)
	logrus.Debugf("deployment %s: added %s (pool size %d)", d.id, pod.ID, len(d.pods))
}

// RemovePod marks one pod for removal and triggers an update. The removal
// is deferred until a pod is idle; an active pod is never force-killed and
// the pool never shrinks below one pod.
func (d *Deployment) RemovePod() {
	d.toRemove++
	d.Update()
}

// PodCount returns the current pool size.
func (d *Deployment) PodCount() int {
	return len(d.pods)
}

// PendingRemovals returns the deferred-removal counter.
func (d *Deployment) PendingRemovals() int {
	return d.toRemove
}

// QueueLen returns the number of tasks waiting in the queue.
func (d *Deployment) QueueLen() int {
	return d.queue.Len()
}

// Update advances the deployment's state: first consume deferred removals
// against idle pods (respecting the one-pod floor), then dispatch queued
// tasks. Dispatch is strict FIFO: the head is offered to each pod in turn
// and is never skipped in favor of a later, smaller task.
func (d *Deployment) Update() {
	// Removal pass. The counter is consumed only when a pod actually goes.
	i := 0
	for i < len(d.pods) {
		if d.toRemove > 0 && len(d.pods) > 1 && d.pods[i].Idle() {
			logrus.Debugf("deployment %s: removed %s (pool size %d)", d.id, d.pods[i].ID, len(d.pods)-1)
			d.pods = append(d.pods[:i], d.pods[i+1:]...)
			d.toRemove--
			continue
		}
		i++
	}

	// Dispatch pass. A pod keeps taking the head while it has capacity;
	// when the head does not fit, the next pod gets a try.
	for _, pod := range d.pods {
		for d.queue.Len() > 0 {
			head := d.queue.Peek()
			if !pod.CanProcess(head) {
				break
			}
			d.queue.Dequeue()
			ev := pod.StartTask(head, d.scheduler.Clock(), d.id)
			d.scheduler.Schedule(ev)
			logrus.Debugf("deployment %s: dispatched %s to %s until %d",
				d.id, head.ID, pod.ID, ev.Timestamp())
		}
	}
}

// AddTask runs admission control for one task: enqueue, dispatch what
// fits, then drop the newcomer if the queue still exceeds its capacity.
// A rejected task is counted and discarded, never retried.
func (d *Deployment) AddTask(t *Task) {
	d.queue.Enqueue(t)
	d.Update()
	if d.queue.Len() > d.queueLength {
		dropped := d.queue.PopBack()
		d.Rejected++
		logrus.Debugf("deployment %s: rejected %s (queue full at %d)", d.id, dropped.ID, d.queueLength)
	}
}

// completeTask handles a completion event: release the pod's resources,
// classify the task as dead or done, forward survivors through the
// router, then dispatch whatever the freed capacity now admits.
func (d *Deployment) completeTask(e *TaskCompletionEvent) {
	pod := d.pod(e.PodID)
	if pod == nil {
		// Unreachable while active pods are exempt from removal.
		logrus.Warnf("deployment %s: completion for unknown pod %s", d.id, e.PodID)
	} else {
		pod.finishTask(e.CPUCost, e.MemoryCost)
	}

	if !e.Task.IsAlive() {
		d.Dead++
		logrus.Debugf("deployment %s: task %s dead (remaining %d)", d.id, e.Task.ID, e.Task.Remaining)
	} else {
		d.Done++
		if d.router != nil {
			d.router.TaskFinished(e.Task, d)
		}
	}

	d.Update()
}

// pod returns the pod with the given ID, or nil.
func (d *Deployment) pod(id string) *Pod {
	for _, p := range d.pods {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Metrics refreshes the deployment via Update and returns the fixed-order
// tuple. A metrics read is never stale by more than one cycle.
func (d *Deployment) Metrics() DeploymentMetrics {
	d.Update()
	m := DeploymentMetrics{
		Name:        d.id,
		Pods:        len(d.pods),
		QueuedTasks: d.queue.Len(),
		Done:        d.Done,
		Dead:        d.Dead,
		Rejected:    d.Rejected,
	}
	for _, p := range d.pods {
		if !p.Idle() {
			m.ActivePods++
		}
		m.ActiveTasks += p.ActiveTasks()
		cpuMax, memoryMax := p.Capacity()
		m.CPU += p.CPU
		m.CPUMax += cpuMax
		m.Memory += p.Memory
		m.MemoryMax += memoryMax
	}
	return m
}

package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event has a Timestamp (in ticks) and an Execute method that
// advances cluster state when invoked. Ordering between events at the
// same timestamp is by insertion sequence, assigned by the event heap.
type Event interface {
	Timestamp() int64
	Execute(c *Cluster)
}

// TaskCompletionEvent fires when a pod finishes processing a task.
// It carries the exact cpu/memory amounts charged at dispatch so the
// release is symmetric even though sampling is randomized.
type TaskCompletionEvent struct {
	time         int64
	DeploymentID string
	PodID        string
	Task         *Task
	CPUCost      int64
	MemoryCost   int64
}

// Timestamp returns the scheduled completion time.
func (e *TaskCompletionEvent) Timestamp() int64 {
	return e.time
}

// Execute releases the pod's resources and hands the task back to its
// deployment for dead/done classification.
func (e *TaskCompletionEvent) Execute(c *Cluster) {
	logrus.Debugf("<< Completion: %s on %s/%s at %d ticks",
		e.Task.ID, e.DeploymentID, e.PodID, e.time)
	c.handleTaskCompletion(e)
}

// TaskArrivalEvent injects a batch of fresh tasks at the head of the chain.
// Scheduling arrivals as events keeps load injection on the same timeline
// as completions, so traffic patterns replay deterministically.
type TaskArrivalEvent struct {
	time     int64
	Count    int
	Lifetime int64
}

// NewTaskArrivalEvent creates an arrival of count tasks with the given
// lifetime budget at time t.
func NewTaskArrivalEvent(t int64, count int, lifetime int64) *TaskArrivalEvent {
	return &TaskArrivalEvent{time: t, Count: count, Lifetime: lifetime}
}

// Timestamp returns the scheduled arrival time.
func (e *TaskArrivalEvent) Timestamp() int64 {
	return e.time
}

// Execute submits the tasks to the first deployment.
func (e *TaskArrivalEvent) Execute(c *Cluster) {
	logrus.Debugf("<< Arrival: %d tasks (lifetime %d) at %d ticks", e.Count, e.Lifetime, e.time)
	c.AddTasks(e.Count, e.Lifetime)
}

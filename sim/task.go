// Defines the Task struct that models a single unit of work flowing through
// the deployment chain. Tracks the remaining lifetime budget and diagnostic
// provenance (last pod/deployment touched, last resource draws).

package sim

import (
	"fmt"
)

// Task models a unit of work with a decrementing lifetime budget.
// Each processing pass deducts the sampled duration from Remaining;
// once Remaining reaches zero or below the task is dead and stays dead.
type Task struct {
	ID string // Unique identifier for the task

	Remaining int64 // Remaining lifetime budget (ticks); may go negative
	Lifetime  int64 // Original lifetime budget (ticks, immutable)

	// Diagnostic provenance. Non-owning identifier references to the last
	// pod and deployment that processed this task, and the resource draws
	// charged there. Never used for routing.
	LastPod        string
	LastDeployment string
	LastCPU        int64
	LastMemory     int64
}

// NewTask creates a Task with remaining = original = lifetime.
func NewTask(id string, lifetime int64) *Task {
	return &Task{
		ID:        id,
		Remaining: lifetime,
		Lifetime:  lifetime,
	}
}

// StartProcessing deducts elapsed from the remaining lifetime and records
// where the task ran and what it was charged. Pure bookkeeping, no side
// effects beyond the task itself.
func (t *Task) StartProcessing(elapsed int64, podID, deploymentID string, cpu, memory int64) {
	t.Remaining -= elapsed
	t.LastPod = podID
	t.LastDeployment = deploymentID
	t.LastCPU = cpu
	t.LastMemory = memory
}

// IsAlive reports whether the task still has lifetime budget left.
func (t *Task) IsAlive() bool {
	return t.Remaining > 0
}

// String returns a human-readable representation of the task.
func (t Task) String() string {
	return fmt.Sprintf("Task: (ID: %s, Remaining: %d/%d, LastDeployment: %s)",
		t.ID, t.Remaining, t.Lifetime, t.LastDeployment)
}

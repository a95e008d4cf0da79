// Defines the Pod, one schedulable execution slot with finite CPU/memory
// capacity. Every admitted task runs as an independent scheduled completion
// event with randomized cost and duration.

package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// Pod models a single compute slot. Usage starts at the profile's base
// floor and is charged per task for the full scheduled duration, whether
// or not computation is "really" happening at any instant. Usage returns
// exactly to base whenever no task is active.
type Pod struct {
	ID string

	profile ResourceProfile
	rng     *rand.Rand

	// Current usage. Mutated only by this pod's own dispatch and its own
	// completion callback.
	CPU    int64
	Memory int64

	activeTasks int

	// Lifetime counters.
	TasksSeen int64
	TasksDone int64
}

// NewPod creates an idle pod drawing samples from rng under profile.
func NewPod(id string, profile ResourceProfile, rng *rand.Rand) *Pod {
	return &Pod{
		ID:      id,
		profile: profile,
		rng:     rng,
		CPU:     profile.CPUBase,
		Memory:  profile.MemoryBase,
	}
}

// SampleUsage draws from a normal distribution centered at nominal with
// standard deviation nominal*randomFraction, clamps to ±3 sigma, floors
// at 1, and rounds to an integer.
func (p *Pod) SampleUsage(nominal, randomFraction float64) int64 {
	sd := nominal * randomFraction
	draw := p.rng.NormFloat64()*sd + nominal
	draw = math.Min(nominal+3*sd, math.Max(nominal-3*sd, draw))
	if draw < 1 {
		draw = 1
	}
	return int64(math.Round(draw))
}

// CanProcess reports whether a prospective task would fit on this pod.
// It draws a fresh prospective cpu usage and a fresh prospective memory
// usage and checks current+prospective against both capacities. The draws
// are discarded: admission and dispatch are not atomic, so StartTask
// samples again.
func (p *Pod) CanProcess(t *Task) bool {
	cpu := p.SampleUsage(p.profile.CPUTask, p.profile.CPURand)
	memory := p.SampleUsage(p.profile.MemoryTask, p.profile.MemoryRand)
	return p.CPU+cpu <= p.profile.CPUMax && p.Memory+memory <= p.profile.MemoryMax
}

// StartTask dispatches a task onto this pod. The caller is expected to
// have checked CanProcess; that precondition is not enforced here, so
// skipping it (or an unlucky redraw) can overshoot capacity transiently.
// Usage is charged immediately and the task's lifetime budget is debited
// by the drawn duration. Returns the completion event to be scheduled at
// now+duration; firing it releases exactly the charged amounts.
func (p *Pod) StartTask(t *Task, now int64, deploymentID string) *TaskCompletionEvent {
	cpu := p.SampleUsage(p.profile.CPUTask, p.profile.CPURand)
	memory := p.SampleUsage(p.profile.MemoryTask, p.profile.MemoryRand)
	duration := p.SampleUsage(p.profile.DurationTask, p.profile.DurationRand)

	p.CPU += cpu
	p.Memory += memory
	p.activeTasks++
	p.TasksSeen++

	t.StartProcessing(duration, p.ID, deploymentID, cpu, memory)

	return &TaskCompletionEvent{
		time:         now + duration,
		DeploymentID: deploymentID,
		PodID:        p.ID,
		Task:         t,
		CPUCost:      cpu,
		MemoryCost:   memory,
	}
}

// finishTask releases the resources charged at dispatch. Invoked exactly
// once per task, from the completion event.
func (p *Pod) finishTask(cpuCost, memoryCost int64) {
	p.CPU -= cpuCost
	p.Memory -= memoryCost
	p.activeTasks--
	p.TasksDone++
}

// Idle reports whether the pod has no active task.
func (p *Pod) Idle() bool {
	return p.activeTasks == 0
}

// ActiveTasks returns the number of tasks currently charged to this pod.
func (p *Pod) ActiveTasks() int {
	return p.activeTasks
}

// Capacity returns the pod's cpu and memory limits.
func (p *Pod) Capacity() (cpuMax, memoryMax int64) {
	return p.profile.CPUMax, p.profile.MemoryMax
}

func (p Pod) String() string {
	return fmt.Sprintf("Pod: (ID: %s, CPU: %d/%d, Memory: %d/%d, Active: %d)",
		p.ID, p.CPU, p.profile.CPUMax, p.Memory, p.profile.MemoryMax, p.activeTasks)
}

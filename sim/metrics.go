// Tracks the pull-based metrics tuples the core exposes to telemetry and
// visualization collaborators. The core retains no history: every read
// reflects the state at the current simulated instant.

package sim

import "fmt"

// DeploymentMetrics is the fixed-order per-stage tuple.
type DeploymentMetrics struct {
	Name        string `json:"name"`
	Pods        int    `json:"pods"`        // total pods in the pool
	ActivePods  int    `json:"activePods"`  // pods with >= 1 active task
	ActiveTasks int    `json:"activeTasks"` // sum of active tasks across pods
	CPU         int64  `json:"cpu"`         // total cpu usage
	CPUMax      int64  `json:"cpuMax"`      // total cpu capacity
	Memory      int64  `json:"memory"`      // total memory usage
	MemoryMax   int64  `json:"memoryMax"`   // total memory capacity
	QueuedTasks int    `json:"queueTasks"`  // tasks waiting, not yet dispatched
	Done        int64  `json:"nrDone"`      // tasks that finished alive (counter)
	Dead        int64  `json:"nrDead"`      // tasks whose lifetime expired here (counter)
	Rejected    int64  `json:"nrRejected"`  // tasks dropped by admission control (counter)
}

// ClusterMetrics aggregates the cluster-level counters with each stage's
// tuple in chain order.
type ClusterMetrics struct {
	Clock       int64               `json:"clock"`
	Submitted   int64               `json:"submitted"` // offered load: incremented per task even if rejected
	Completed   int64               `json:"completed"` // tasks that exited the tail alive
	Deployments []DeploymentMetrics `json:"deployments"`
}

// Print displays the cluster metrics at the end of a run.
func (m ClusterMetrics) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Clock                : %d ticks\n", m.Clock)
	fmt.Printf("Submitted Tasks      : %d\n", m.Submitted)
	fmt.Printf("Completed Tasks      : %d\n", m.Completed)
	for _, d := range m.Deployments {
		fmt.Printf("--- %s ---\n", d.Name)
		fmt.Printf("Pods (active/total)  : %d/%d\n", d.ActivePods, d.Pods)
		fmt.Printf("Active Tasks         : %d\n", d.ActiveTasks)
		fmt.Printf("CPU Usage            : %d/%d\n", d.CPU, d.CPUMax)
		fmt.Printf("Memory Usage         : %d/%d\n", d.Memory, d.MemoryMax)
		fmt.Printf("Queued Tasks         : %d\n", d.QueuedTasks)
		fmt.Printf("Done / Dead / Rej    : %d / %d / %d\n", d.Done, d.Dead, d.Rejected)
	}
}

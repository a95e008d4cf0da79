package sim

import "testing"

func TestNewTask_StartsWithFullBudget(t *testing.T) {
	// GIVEN a fresh task with a 5000-tick lifetime
	task := NewTask("task_1", 5000)

	// THEN remaining equals original and the task is alive
	if task.Remaining != 5000 || task.Lifetime != 5000 {
		t.Errorf("NewTask: remaining/original got %d/%d, want 5000/5000", task.Remaining, task.Lifetime)
	}
	if !task.IsAlive() {
		t.Error("NewTask: fresh task must be alive")
	}
}

func TestStartProcessing_DecrementsBudgetAndRecordsProvenance(t *testing.T) {
	// GIVEN a task with a 1000-tick budget
	task := NewTask("task_1", 1000)

	// WHEN it is processed for 400 ticks on pod_2 of frontend
	task.StartProcessing(400, "pod_2", "frontend", 23, 19)

	// THEN the budget shrinks and provenance is recorded
	if task.Remaining != 600 {
		t.Errorf("Remaining: got %d, want 600", task.Remaining)
	}
	if task.Lifetime != 1000 {
		t.Errorf("Lifetime must be immutable: got %d, want 1000", task.Lifetime)
	}
	if task.LastPod != "pod_2" || task.LastDeployment != "frontend" {
		t.Errorf("provenance: got %s/%s, want pod_2/frontend", task.LastPod, task.LastDeployment)
	}
	if task.LastCPU != 23 || task.LastMemory != 19 {
		t.Errorf("last draws: got cpu=%d memory=%d, want 23/19", task.LastCPU, task.LastMemory)
	}
}

func TestRemainingLifetime_NonIncreasing(t *testing.T) {
	// GIVEN a task processed repeatedly
	task := NewTask("task_1", 1000)
	prev := task.Remaining
	for i, elapsed := range []int64{100, 1, 700, 500, 42} {
		task.StartProcessing(elapsed, "pod_1", "stage", 1, 1)
		// THEN remaining never increases, even past zero
		if task.Remaining > prev {
			t.Fatalf("step %d: remaining went up from %d to %d", i, prev, task.Remaining)
		}
		prev = task.Remaining
	}
	if task.Remaining != 1000-100-1-700-500-42 {
		t.Errorf("final remaining: got %d, want %d", task.Remaining, 1000-1343)
	}
}

func TestIsAlive_DeadAtZeroAndBelow(t *testing.T) {
	tests := []struct {
		name      string
		remaining int64
		alive     bool
	}{
		{"positive budget", 1, true},
		{"exactly exhausted", 0, false},
		{"overdrawn", -100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := NewTask("task_1", 10)
			task.StartProcessing(10-tt.remaining, "pod_1", "stage", 1, 1)
			if got := task.IsAlive(); got != tt.alive {
				t.Errorf("IsAlive() with remaining %d: got %v, want %v", tt.remaining, got, tt.alive)
			}
		})
	}
}

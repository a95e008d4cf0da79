package sim

import (
	"math/rand"
	"testing"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestSampleUsage_ZeroFractionIsExact(t *testing.T) {
	// GIVEN a pod whose profile has no randomness
	p := NewPod("pod_1", exactProfile(1000, 20, 30, 100, 100), testRNG())

	// THEN every draw is exactly the rounded nominal
	if got := p.SampleUsage(1000, 0); got != 1000 {
		t.Errorf("SampleUsage(1000, 0): got %d, want 1000", got)
	}
	if got := p.SampleUsage(20.4, 0); got != 20 {
		t.Errorf("SampleUsage(20.4, 0): got %d, want 20", got)
	}
}

func TestSampleUsage_FlooredAtOne(t *testing.T) {
	// GIVEN a tiny nominal value
	p := NewPod("pod_1", DefaultResourceProfile(), testRNG())

	// THEN the draw never goes below 1
	for i := 0; i < 100; i++ {
		if got := p.SampleUsage(0.2, 0.5); got < 1 {
			t.Fatalf("SampleUsage below floor: got %d", got)
		}
	}
}

func TestSampleUsage_ClampedToThreeSigma(t *testing.T) {
	// GIVEN nominal 100 at ±10% (sigma 10)
	p := NewPod("pod_1", DefaultResourceProfile(), testRNG())

	// THEN all draws land in [70, 130]
	for i := 0; i < 1000; i++ {
		got := p.SampleUsage(100, 0.1)
		if got < 70 || got > 130 {
			t.Fatalf("SampleUsage outside ±3 sigma: got %d", got)
		}
	}
}

func TestNewPod_StartsAtBaseUsage(t *testing.T) {
	profile := exactProfile(1000, 20, 20, 100, 100)
	p := NewPod("pod_1", profile, testRNG())

	if p.CPU != profile.CPUBase || p.Memory != profile.MemoryBase {
		t.Errorf("idle usage: got cpu=%d memory=%d, want base %d/%d",
			p.CPU, p.Memory, profile.CPUBase, profile.MemoryBase)
	}
	if !p.Idle() {
		t.Error("fresh pod must be idle")
	}
}

func TestStartTask_ChargesUsageAndSchedulesCompletion(t *testing.T) {
	// GIVEN an idle pod with an exact profile
	p := NewPod("pod_1", exactProfile(500, 20, 30, 100, 100), testRNG())
	task := NewTask("task_1", 10000)

	// WHEN a task is dispatched at tick 100
	ev := p.StartTask(task, 100, "frontend")

	// THEN usage is charged immediately and the completion is at now+duration
	if p.CPU != 1+20 || p.Memory != 1+30 {
		t.Errorf("charged usage: got cpu=%d memory=%d, want 21/31", p.CPU, p.Memory)
	}
	if p.ActiveTasks() != 1 || p.TasksSeen != 1 {
		t.Errorf("counters: active=%d seen=%d, want 1/1", p.ActiveTasks(), p.TasksSeen)
	}
	if ev.Timestamp() != 600 {
		t.Errorf("completion time: got %d, want 600", ev.Timestamp())
	}
	if ev.CPUCost != 20 || ev.MemoryCost != 30 {
		t.Errorf("event costs: got %d/%d, want 20/30", ev.CPUCost, ev.MemoryCost)
	}
	// AND the task's budget is debited by the drawn duration
	if task.Remaining != 10000-500 {
		t.Errorf("task remaining: got %d, want 9500", task.Remaining)
	}
	if task.LastPod != "pod_1" || task.LastDeployment != "frontend" {
		t.Errorf("provenance: got %s/%s", task.LastPod, task.LastDeployment)
	}
}

func TestFinishTask_UsageReturnsExactlyToBase(t *testing.T) {
	// GIVEN a pod running two tasks
	p := NewPod("pod_1", exactProfile(500, 20, 30, 200, 200), testRNG())
	ev1 := p.StartTask(NewTask("task_1", 10000), 0, "frontend")
	ev2 := p.StartTask(NewTask("task_2", 10000), 0, "frontend")

	// WHEN both completions release their charges
	p.finishTask(ev1.CPUCost, ev1.MemoryCost)
	p.finishTask(ev2.CPUCost, ev2.MemoryCost)

	// THEN usage is exactly base again
	if p.CPU != 1 || p.Memory != 1 {
		t.Errorf("post-release usage: got cpu=%d memory=%d, want 1/1", p.CPU, p.Memory)
	}
	if !p.Idle() || p.TasksDone != 2 {
		t.Errorf("post-release state: idle=%v done=%d, want true/2", p.Idle(), p.TasksDone)
	}
}

func TestCanProcess_RespectsCPUCapacity(t *testing.T) {
	// GIVEN a single-slot pod (base 1 + cost 20 = capacity 21)
	p := NewPod("pod_1", singleSlotProfile(500), testRNG())
	task := NewTask("task_1", 10000)

	// THEN it admits when idle and refuses while busy
	if !p.CanProcess(task) {
		t.Fatal("idle single-slot pod must admit")
	}
	p.StartTask(task, 0, "frontend")
	if p.CanProcess(NewTask("task_2", 10000)) {
		t.Error("busy single-slot pod must refuse a second task")
	}
}

func TestCanProcess_ChecksMemoryIndependently(t *testing.T) {
	// GIVEN a pod with ample cpu headroom but no memory headroom
	profile := exactProfile(500, 1, 90, 1000, 50)
	p := NewPod("pod_1", profile, testRNG())

	// THEN admission fails on the memory check alone
	if p.CanProcess(NewTask("task_1", 10000)) {
		t.Error("CanProcess must refuse when only memory capacity is exceeded")
	}
}

package sim

import "testing"

// probeEvent is a minimal event recording its firing for heap tests.
type probeEvent struct {
	time  int64
	label string
}

func (e *probeEvent) Timestamp() int64   { return e.time }
func (e *probeEvent) Execute(c *Cluster) {}

func TestEventHeap_OrdersByTimestamp(t *testing.T) {
	// GIVEN events scheduled out of time order
	h := NewEventHeap()
	h.Schedule(&probeEvent{time: 30, label: "c"})
	h.Schedule(&probeEvent{time: 10, label: "a"})
	h.Schedule(&probeEvent{time: 20, label: "b"})

	// WHEN they are drained
	// THEN they pop in nondecreasing timestamp order
	var got []string
	for h.Len() > 0 {
		got = append(got, h.PopNext().(*probeEvent).label)
	}
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("drain order: got %v, want %v", got, want)
		}
	}
}

func TestEventHeap_TiesBreakByInsertionOrder(t *testing.T) {
	// GIVEN several events landing on the same instant
	h := NewEventHeap()
	labels := []string{"first", "second", "third", "fourth"}
	for _, l := range labels {
		h.Schedule(&probeEvent{time: 100, label: l})
	}

	// THEN they fire in original scheduling order
	for _, want := range labels {
		got := h.PopNext().(*probeEvent).label
		if got != want {
			t.Fatalf("tie-break: got %q, want %q", got, want)
		}
	}
}

func TestEventHeap_TieBreakSurvivesInterleaving(t *testing.T) {
	// GIVEN same-time events interleaved with earlier and later ones
	h := NewEventHeap()
	h.Schedule(&probeEvent{time: 50, label: "tie1"})
	h.Schedule(&probeEvent{time: 10, label: "early"})
	h.Schedule(&probeEvent{time: 50, label: "tie2"})
	h.Schedule(&probeEvent{time: 99, label: "late"})
	h.Schedule(&probeEvent{time: 50, label: "tie3"})

	var got []string
	for h.Len() > 0 {
		got = append(got, h.PopNext().(*probeEvent).label)
	}
	want := []string{"early", "tie1", "tie2", "tie3", "late"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("drain order: got %v, want %v", got, want)
		}
	}
}

func TestEventHeap_EmptyBehaviour(t *testing.T) {
	// GIVEN an empty heap
	h := NewEventHeap()

	// THEN Peek and PopNext return nil and Len is 0
	if h.Peek() != nil {
		t.Error("Peek on empty heap: want nil")
	}
	if h.PopNext() != nil {
		t.Error("PopNext on empty heap: want nil")
	}
	if h.Len() != 0 {
		t.Errorf("Len on empty heap: got %d", h.Len())
	}
}

func TestEventHeap_PeekDoesNotRemove(t *testing.T) {
	h := NewEventHeap()
	h.Schedule(&probeEvent{time: 5, label: "only"})

	if h.Peek().Timestamp() != 5 || h.Len() != 1 {
		t.Error("Peek must not remove the event")
	}
	if h.PopNext().Timestamp() != 5 || h.Len() != 0 {
		t.Error("PopNext after Peek must return the same event")
	}
}

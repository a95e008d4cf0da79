package sim

import "container/heap"

// scheduledEvent pairs an event with the insertion sequence number the
// heap assigned to it, the deterministic tie-breaker for equal timestamps.
type scheduledEvent struct {
	ev  Event
	seq uint64
}

// EventHeap implements a priority queue with deterministic ordering.
// Ordering: timestamp → insertion sequence.
type EventHeap struct {
	events  []scheduledEvent
	nextSeq uint64
}

// NewEventHeap creates a new event heap.
func NewEventHeap() *EventHeap {
	h := &EventHeap{
		events: make([]scheduledEvent, 0),
	}
	heap.Init(h)
	return h
}

// Len implements heap.Interface.
func (h *EventHeap) Len() int {
	return len(h.events)
}

// Less implements heap.Interface with deterministic ordering.
// Order by: timestamp → insertion sequence.
func (h *EventHeap) Less(i, j int) bool {
	ei, ej := h.events[i], h.events[j]
	if ei.ev.Timestamp() != ej.ev.Timestamp() {
		return ei.ev.Timestamp() < ej.ev.Timestamp()
	}
	return ei.seq < ej.seq
}

// Swap implements heap.Interface.
func (h *EventHeap) Swap(i, j int) {
	h.events[i], h.events[j] = h.events[j], h.events[i]
}

// Push implements heap.Interface.
func (h *EventHeap) Push(x interface{}) {
	h.events = append(h.events, x.(scheduledEvent))
}

// Pop implements heap.Interface.
func (h *EventHeap) Pop() interface{} {
	old := h.events
	n := len(old)
	item := old[n-1]
	h.events = old[0 : n-1]
	return item
}

// Schedule adds an event to the heap, assigning its insertion sequence.
func (h *EventHeap) Schedule(e Event) {
	h.nextSeq++
	heap.Push(h, scheduledEvent{ev: e, seq: h.nextSeq})
}

// PopNext removes and returns the next event, or nil if the heap is empty.
func (h *EventHeap) PopNext() Event {
	if h.Len() == 0 {
		return nil
	}
	return heap.Pop(h).(scheduledEvent).ev
}

// Peek returns the next event without removing it, or nil if empty.
func (h *EventHeap) Peek() Event {
	if h.Len() == 0 {
		return nil
	}
	return h.events[0].ev
}

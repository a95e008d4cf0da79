// Implements the TaskQueue, the bounded FIFO buffer in front of each
// deployment's pod pool. Tasks are enqueued on arrival and dequeued in
// strict arrival order.

package sim

import (
	"fmt"
	"strings"
)

// TaskQueue is a FIFO queue of tasks waiting to be dispatched to a pod.
// Capacity enforcement lives in Deployment.AddTask; the queue itself is
// unbounded.
type TaskQueue struct {
	queue []*Task
}

// Enqueue adds a task to the back of the queue.
func (q *TaskQueue) Enqueue(t *Task) {
	q.queue = append(q.queue, t)
}

// Len returns the number of queued tasks.
func (q *TaskQueue) Len() int {
	return len(q.queue)
}

// Peek returns the task at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (q *TaskQueue) Peek() *Task {
	if len(q.queue) == 0 {
		return nil
	}
	return q.queue[0]
}

// Dequeue removes and returns the task at the front of the queue.
// Returns nil if the queue is empty.
func (q *TaskQueue) Dequeue() *Task {
	if len(q.queue) == 0 {
		return nil
	}
	head := q.queue[0]
	q.queue = q.queue[1:]
	return head
}

// PopBack removes and returns the most recently enqueued task.
// Used by admission control to drop a newcomer that overflows capacity
// without disturbing the FIFO order of earlier arrivals.
func (q *TaskQueue) PopBack() *Task {
	if len(q.queue) == 0 {
		return nil
	}
	last := q.queue[len(q.queue)-1]
	q.queue = q.queue[:len(q.queue)-1]
	return last
}

func (q *TaskQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, t := range q.queue {
		sb.WriteString(fmt.Sprint(t))
		if i < len(q.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

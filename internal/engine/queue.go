package engine

import (
	"container/heap"

	"github.com/jwmdev/brtsim/internal/model"
)

// eventHeap is a min-heap of pending events ordered by firing time, with a
// stable tie-break on (event-type, bus-id) for reproducibility (spec.md §3
// "Event queue", §5).
type eventHeap []model.Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	if h[i].Type != h[j].Type {
		return h[i].Type < h[j].Type
	}
	return h[i].BusID < h[j].BusID
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) { *h = append(*h, x.(model.Event)) }

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Queue is the event queue: a min-heap of pending events by timestamp
// (spec.md §3, §4.3).
type Queue struct {
	h eventHeap
}

// NewQueue builds an empty queue.
func NewQueue() *Queue {
	q := &Queue{}
	heap.Init(&q.h)
	return q
}

// Push schedules an event.
func (q *Queue) Push(e model.Event) { heap.Push(&q.h, e) }

// Len reports the number of pending events.
func (q *Queue) Len() int { return q.h.Len() }

// Pop removes and returns the earliest pending event.
func (q *Queue) Pop() model.Event { return heap.Pop(&q.h).(model.Event) }

package models

import (
	"container/heap"
	"errors"
	"sync"
)

// ErrEmptyQueue is returned when peeking or dequeuing an empty queue.
var ErrEmptyQueue = errors.New("event queue is empty")

// RideEvent is a scheduled arrival in the simulation. StopIndex is the
// cursor into the ride's segment list: 0 on the ride's start event, and the
// ride is complete once it reaches the segment count. Events reference their
// ride without owning it and are consumed exactly once.
type RideEvent struct {
	Time      float64
	Ride      *Ride
	StopIndex int

	seq uint64
}

// EventQueue is a min-ordered priority queue of ride events keyed by time.
// Events with equal times dequeue in insertion order: each Enqueue stamps a
// monotonically increasing sequence number used as the secondary key, so
// replaying the same schedule always produces the same order.
type EventQueue struct {
	events  eventHeap
	mutex   sync.Mutex
	nextSeq uint64
}

// eventHeap implements heap.Interface and holds RideEvents.
type eventHeap []*RideEvent

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(*RideEvent))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

func NewEventQueue() *EventQueue {
	return &EventQueue{events: make(eventHeap, 0)}
}

// Enqueue adds an event to the queue in O(log n).
func (eq *EventQueue) Enqueue(event *RideEvent) {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	event.seq = eq.nextSeq
	eq.nextSeq++
	heap.Push(&eq.events, event)
}

// Dequeue removes and returns the earliest event. It returns ErrEmptyQueue
// when the queue is empty.
func (eq *EventQueue) Dequeue() (*RideEvent, error) {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	if len(eq.events) == 0 {
		return nil, ErrEmptyQueue
	}
	return heap.Pop(&eq.events).(*RideEvent), nil
}

// Peek returns the earliest event without removing it. It returns
// ErrEmptyQueue when the queue is empty.
func (eq *EventQueue) Peek() (*RideEvent, error) {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	if len(eq.events) == 0 {
		return nil, ErrEmptyQueue
	}
	return eq.events[0], nil
}

// IsEmpty returns true if the queue holds no events.
func (eq *EventQueue) IsEmpty() bool {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	return len(eq.events) == 0
}

// Len returns the number of queued events.
func (eq *EventQueue) Len() int {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	return len(eq.events)
}

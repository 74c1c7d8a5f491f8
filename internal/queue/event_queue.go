package queue

import (
	"sync/atomic"
	"time"
)

// TimedItem pairs a queued payload with its capture time.
type TimedItem[T any] struct {
	Value      T
	CapturedAt time.Time
}

// EventQueue buffers timestamped items between a single producer (the sequencer's
// delivery context) and a single consumer (the retrieval path).
//
// Items pushed while the queue is stopped are counted as dropped and discarded,
// so a stopped session never accumulates stale events.
type EventQueue[T any] struct {
	q       Queue[TimedItem[T]]
	running atomic.Bool
	dropped atomic.Uint64
}

// NewEventQueue creates a stopped EventQueue.
func NewEventQueue[T any]() *EventQueue[T] {
	return &EventQueue[T]{q: NewLockFreeQueue[TimedItem[T]]()}
}

// Start makes the queue accept pushed items.
func (eq *EventQueue[T]) Start() {
	eq.running.Store(true)
}

// Stop makes the queue discard pushed items. Items already queued remain
// available to DrainUpTo.
func (eq *EventQueue[T]) Stop() {
	eq.running.Store(false)
}

// IsRunning reports whether the queue currently accepts pushed items.
func (eq *EventQueue[T]) IsRunning() bool {
	return eq.running.Load()
}

// Push appends an item captured at the given time. It never blocks.
func (eq *EventQueue[T]) Push(value T, capturedAt time.Time) {
	if !eq.running.Load() {
		eq.dropped.Add(1)
		return
	}
	eq.q.Enqueue(TimedItem[T]{Value: value, CapturedAt: capturedAt})
}

// DrainUpTo removes and returns, in capture order, every queued item captured at or
// before the deadline. Items captured after the deadline stay queued.
func (eq *EventQueue[T]) DrainUpTo(deadline time.Time) []TimedItem[T] {
	var items []TimedItem[T]
	for {
		head, ok := eq.q.Peek()
		if !ok || head.CapturedAt.After(deadline) {
			return items
		}
		item, ok := eq.q.Dequeue()
		if !ok {
			return items
		}
		items = append(items, item)
	}
}

// Reset discards all queued items.
func (eq *EventQueue[T]) Reset() {
	eq.q.Reset()
}

// Length returns the number of queued items.
func (eq *EventQueue[T]) Length() int {
	return eq.q.Length()
}

// Dropped returns the number of items discarded because the queue was stopped.
func (eq *EventQueue[T]) Dropped() uint64 {
	return eq.dropped.Load()
}

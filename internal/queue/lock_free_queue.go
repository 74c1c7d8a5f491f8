package queue

import (
	"sync/atomic"
	"unsafe"
)

// itemNode represents a node in the lock free queue.
type itemNode[T any] struct {
	value T
	next  unsafe.Pointer
}

// lockFreeQueue is a lock-free, concurrent queue implementation.
// It provides efficient and thread-safe operations for enqueuing, dequeuing, and peeking at items.
//
// It implements the Queue interface.
type lockFreeQueue[T any] struct {
	head   unsafe.Pointer
	tail   unsafe.Pointer
	length atomic.Int32
}

// NewLockFreeQueue creates a new lockFreeQueue and returns it as a Queue interface.
//
// lockFreeQueue is a lock-free, concurrent queue implementation.
// It provides efficient and thread-safe operations for enqueuing, dequeuing, and peeking at items.
func NewLockFreeQueue[T any]() Queue[T] {
	n := unsafe.Pointer(&itemNode[T]{})
	return &lockFreeQueue[T]{head: n, tail: n}
}

func (q *lockFreeQueue[T]) Reset() {
	n := unsafe.Pointer(&itemNode[T]{})
	atomic.StorePointer(&q.head, n)
	atomic.StorePointer(&q.tail, n)
	q.length.Store(0)
}

// Enqueue adds an item to the tail of the queue.
func (q *lockFreeQueue[T]) Enqueue(item T) {
	n := &itemNode[T]{value: item}
retry:
	tail := loadQueueItem[T](&q.tail)
	next := loadQueueItem[T](&tail.next)
	// Are tail and next consistent?
	if tail == loadQueueItem[T](&q.tail) {
		if next == nil {
			// Try to link node at the end of the linked list.
			if casQueueItem(&tail.next, next, n) { // enqueue is done.
				// Try to swing tail to the inserted node.
				casQueueItem(&q.tail, tail, n)
				q.length.Add(1)
				return
			}
		} else { // tail was not pointing to the last node
			// Try to swing tail to the next node.
			casQueueItem(&q.tail, tail, next)
		}
	}

	goto retry
}

// Dequeue removes and returns the item at the head of the queue.
// The second return value is false if the queue is empty.
func (q *lockFreeQueue[T]) Dequeue() (T, bool) {
retry:
	head := loadQueueItem[T](&q.head)
	tail := loadQueueItem[T](&q.tail)
	next := loadQueueItem[T](&head.next)

	// Are head, tail, and next consistent?
	if head == loadQueueItem[T](&q.head) {
		// Is queue empty or tail falling behind?
		if head == tail {
			// Is queue empty?
			if next == nil {
				var zero T
				return zero, false
			}
			casQueueItem(&q.tail, tail, next) // tail is falling behind, try to advance it.
		} else {
			// Read value before CAS, otherwise another dequeue might free the next node.
			data := next.value
			if casQueueItem(&q.head, head, next) { // dequeue is done, return value.
				q.length.Add(-1)
				return data, true
			}
		}
	}

	goto retry
}

// Peek returns the item at the head of the queue without removing it.
// The second return value is false if the queue is empty.
func (q *lockFreeQueue[T]) Peek() (T, bool) {
retry:
	head := loadQueueItem[T](&q.head)
	tail := loadQueueItem[T](&q.tail)
	next := loadQueueItem[T](&head.next)

	// Are head, tail, and next consistent?
	if head == loadQueueItem[T](&q.head) {
		// Is queue empty or tail falling behind?
		if head != tail {
			return next.value, true
		}

		// Is queue empty?
		if next == nil {
			var zero T
			return zero, false
		}
		casQueueItem(&q.tail, tail, next) // tail is falling behind, try to advance it.
	}

	goto retry
}

// IsEmpty returns true if the queue is empty, false otherwise.
func (q *lockFreeQueue[T]) IsEmpty() bool {
	return q.length.Load() == 0
}

// Length returns the number of items in the queue.
func (q *lockFreeQueue[T]) Length() int {
	return int(q.length.Load())
}

// loadQueueItem atomically loads a node from a given pointer.
func loadQueueItem[T any](p *unsafe.Pointer) *itemNode[T] {
	return (*itemNode[T])(atomic.LoadPointer(p))
}

// casQueueItem performs an atomic compare-and-swap operation on a node pointer.
func casQueueItem[T any](p *unsafe.Pointer, oldItem, newItem *itemNode[T]) bool {
	return atomic.CompareAndSwapPointer(p, unsafe.Pointer(oldItem), unsafe.Pointer(newItem))
}

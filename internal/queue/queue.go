package queue

// Queue defines the interface for a FIFO queue of T.
type Queue[T any] interface {
	// Enqueue adds an item to the tail of the queue.
	Enqueue(T)
	// Dequeue removes and returns the item at the head of the queue.
	// The second return value is false if the queue is empty.
	Dequeue() (T, bool)
	// Peek returns the item at the head of the queue without removing it.
	// The second return value is false if the queue is empty.
	Peek() (T, bool)
	// Reset to an empty queue.
	Reset()
	// IsEmpty returns true if the queue is empty, false otherwise.
	IsEmpty() bool
	// Length returns the number of items in the queue.
	Length() int
}

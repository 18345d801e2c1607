package breeze

import "sync"

// TaskQueue is a mutex-protected FIFO of functions run by one owning
// goroutine. Any goroutine may post.
type TaskQueue struct {
	mu      sync.Mutex
	pending []func()
}

// Post enqueues fn.
func (q *TaskQueue) Post(fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Len returns the number of queued tasks.
func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain runs every queued task in order and returns how many ran. Tasks
// posted while draining run on the next Drain.
func (q *TaskQueue) Drain() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// PostAndWait enqueues fn on q and blocks until the owning goroutine has
// run it, then returns its result. Calling it from the owning goroutine
// deadlocks.
func PostAndWait[T any](q *TaskQueue, fn func() T) T {
	done := make(chan T, 1)
	q.Post(func() { done <- fn() })
	return <-done
}

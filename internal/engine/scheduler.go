package engine

import "sync"

// FrameCallback receives the host clock in seconds.
type FrameCallback func(now float64)

// FrameScheduler invokes a callback once, before the next displayed frame.
type FrameScheduler interface {
	RequestNextFrame(cb FrameCallback)
}

// Dispatcher hands work from background goroutines to the host thread.
type Dispatcher interface {
	Post(fn func())
}

// TaskQueue is a Dispatcher drained by the host between frames.
type TaskQueue struct {
	mu    sync.Mutex
	tasks []func()
}

func (q *TaskQueue) Post(fn func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()
}

// Drain runs every queued task on the calling goroutine, in post order, and
// returns how many ran. Tasks posted while draining wait for the next call.
func (q *TaskQueue) Drain() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}
	return len(tasks)
}

func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

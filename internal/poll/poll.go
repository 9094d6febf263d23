// Package poll provides a cancellable repeating task.
//
// A Task calls its function once per interval on a background goroutine
// until the function returns false or Stop is called. Stop is idempotent
// and waits for an in-flight call, so once it returns the function is not
// running and never runs again. The function must not call Stop.
package poll

import (
	"context"
	"sync"
	"time"
)

// Task is a repeating job owned by a component's lifecycle.
type Task struct {
	interval time.Duration
	fn       func() bool

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
	stopped bool
	once    sync.Once
}

// NewTask creates a task calling fn every interval while fn returns true.
// The task does nothing until Start is called.
func NewTask(interval time.Duration, fn func() bool) *Task {
	return &Task{
		interval: interval,
		fn:       fn,
		done:     make(chan struct{}),
	}
}

// Start begins ticking. Calling Start on a running or stopped task is a no-op.
func (t *Task) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started || t.stopped {
		return
	}
	t.started = true

	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel

	go t.run(ctx)
}

func (t *Task) run(ctx context.Context) {
	defer close(t.done)
	defer t.finish()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// both select cases may be ready at once
			if ctx.Err() != nil {
				return
			}
			if !t.fn() {
				return
			}
		}
	}
}

// finish marks a task that ended on its own as stopped.
func (t *Task) finish() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}

// Stop cancels the task and waits for its goroutine to exit. It is safe
// to call more than once and before Start.
func (t *Task) Stop() {
	t.once.Do(func() {
		t.mu.Lock()
		t.stopped = true
		cancel := t.cancel
		t.mu.Unlock()

		if cancel != nil {
			cancel()
			<-t.done
		}
	})
}

// Running reports whether the task has been started and not yet stopped.
func (t *Task) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started && !t.stopped
}

// Done returns a channel closed when the task goroutine has exited.
// It is never closed for a task that was not started.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

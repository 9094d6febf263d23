package poll

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestTaskTicks(t *testing.T) {
	var calls atomic.Int32
	task := NewTask(5*time.Millisecond, func() bool {
		calls.Add(1)
		return true
	})

	task.Start()
	defer task.Stop()

	deadline := time.Now().Add(time.Second)
	for calls.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("task ticked %d times within 1s, want at least 3", calls.Load())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestTaskStopPreventsFurtherCalls(t *testing.T) {
	var calls atomic.Int32
	task := NewTask(5*time.Millisecond, func() bool {
		calls.Add(1)
		return true
	})

	task.Start()
	time.Sleep(20 * time.Millisecond)
	task.Stop()

	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatal("task goroutine did not exit after Stop()")
	}

	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	if got := calls.Load(); got != after {
		t.Errorf("task called %d more times after Stop()", got-after)
	}

	if task.Running() {
		t.Error("Running() = true after Stop()")
	}
}

func TestTaskStopIsIdempotent(t *testing.T) {
	task := NewTask(time.Millisecond, func() bool { return true })

	// Stopping before start, twice, then starting must all be safe.
	task.Stop()
	task.Stop()
	task.Start()

	if task.Running() {
		t.Error("Start() after Stop() should not run the task")
	}
}

func TestTaskEndsWhenFuncReturnsFalse(t *testing.T) {
	var calls atomic.Int32
	task := NewTask(2*time.Millisecond, func() bool {
		return calls.Add(1) < 2
	})

	task.Start()

	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatal("task did not exit after its function returned false")
	}

	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
	if task.Running() {
		t.Error("Running() = true after the task ended")
	}
	task.Stop()
}

func TestTaskStopWaitsForInFlightCall(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	task := NewTask(time.Millisecond, func() bool {
		once.Do(func() { close(entered) })
		<-release
		return true
	})
	task.Start()
	<-entered

	stopped := make(chan struct{})
	go func() {
		task.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop() returned while the task function was running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop() did not return after the call finished")
	}
}

func TestTaskNoCallAfterStopReturns(t *testing.T) {
	for i := 0; i < 200; i++ {
		var stopped, late atomic.Bool
		task := NewTask(time.Microsecond, func() bool {
			if stopped.Load() {
				late.Store(true)
			}
			return true
		})
		task.Start()
		time.Sleep(time.Duration(i%5) * 100 * time.Microsecond)
		task.Stop()
		stopped.Store(true)

		time.Sleep(200 * time.Microsecond)
		if late.Load() {
			t.Fatalf("iteration %d: task function ran after Stop() returned", i)
		}
	}
}

// Package refresh re-runs the active search on an interval until paused.
package refresh

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/logconsole/internal/logging"
	"github.com/muurk/logconsole/internal/poll"
	"github.com/muurk/logconsole/internal/store"
)

// Controller owns the auto-refresh timer. Pausing suppresses refreshes
// without stopping the timer, so Resume takes effect on the next tick.
type Controller struct {
	interval time.Duration
	refresh  func()
	paused   *store.Store[bool]

	mu   sync.Mutex
	task *poll.Task
}

// NewController creates a controller calling refresh every interval.
// An interval of zero disables the timer but Pause and Resume still work,
// since the live tail honors the same state.
func NewController(interval time.Duration, refresh func()) *Controller {
	return &Controller{
		interval: interval,
		refresh:  refresh,
		paused:   store.New(false),
	}
}

// Start begins the timer. Starting a running controller is a no-op.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.task != nil || c.interval <= 0 {
		return
	}
	c.task = poll.NewTask(c.interval, func() bool {
		if !c.paused.Snapshot() {
			c.refresh()
		}
		return true
	})
	c.task.Start()
}

// Stop halts the timer. It is safe to call more than once.
func (c *Controller) Stop() {
	c.mu.Lock()
	task := c.task
	c.task = nil
	c.mu.Unlock()

	if task != nil {
		task.Stop()
	}
}

// Pause suspends automatic refreshes.
func (c *Controller) Pause() {
	if c.paused.Snapshot() {
		return
	}
	c.paused.Set(true)
	logging.Info("Auto-refresh paused", zap.Duration("interval", c.interval))
}

// Resume re-enables automatic refreshes.
func (c *Controller) Resume() {
	if !c.paused.Snapshot() {
		return
	}
	c.paused.Set(false)
	logging.Info("Auto-refresh resumed", zap.Duration("interval", c.interval))
}

// Toggle flips between paused and running.
func (c *Controller) Toggle() {
	if c.Paused() {
		c.Resume()
	} else {
		c.Pause()
	}
}

// Paused reports whether refreshes are suspended.
func (c *Controller) Paused() bool {
	return c.paused.Snapshot()
}

// State exposes the paused flag for status displays.
func (c *Controller) State() store.Source[bool] {
	return c.paused
}

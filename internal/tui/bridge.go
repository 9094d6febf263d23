package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Bridge delivers messages from store subscribers to a running program.
// Messages sent before a program is attached are dropped; the screens
// re-read their stores when they mount.
type Bridge struct {
	mu      sync.Mutex
	program *tea.Program
}

// Attach sets the program messages are delivered to.
func (b *Bridge) Attach(p *tea.Program) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.program = p
}

// Send posts msg without blocking the caller. Subscribers may run on the
// program's own goroutine, where a blocking send would deadlock.
func (b *Bridge) Send(msg tea.Msg) {
	b.mu.Lock()
	p := b.program
	b.mu.Unlock()

	if p == nil {
		return
	}
	go p.Send(msg)
}

package ui

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// StyleSheet is a set of styles that is only built while at least one
// screen is using it. Screens call Use when they mount and Unuse when they
// unmount; the styles are dropped once the last user is gone.
type StyleSheet struct {
	mu    sync.Mutex
	build func() map[string]lipgloss.Style
	refs  int
	sheet map[string]lipgloss.Style
}

// NewStyleSheet creates a sheet whose styles are produced by build.
func NewStyleSheet(build func() map[string]lipgloss.Style) *StyleSheet {
	return &StyleSheet{build: build}
}

// Use acquires the sheet, building the styles on first use.
func (s *StyleSheet) Use() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refs == 0 {
		s.sheet = s.build()
	}
	s.refs++
}

// Unuse releases the sheet. Releasing an unused sheet is a no-op.
func (s *StyleSheet) Unuse() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refs == 0 {
		return
	}
	s.refs--
	if s.refs == 0 {
		s.sheet = nil
	}
}

// Style returns a named style, or a plain style when the sheet is not in
// use or the name is unknown.
func (s *StyleSheet) Style(name string) lipgloss.Style {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.sheet[name]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

// Refs returns the current number of users.
func (s *StyleSheet) Refs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refs
}

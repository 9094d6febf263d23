// Package plugin holds the registry through which optional components
// contribute configuration panels to the settings page.
//
// Contributions are grouped by extension point. The settings page iterates
// the contributions of SystemConfigurations and instantiates each one with
// the current config for its type and an update callback; it never
// switches on the concrete panel type.
package plugin

import (
	"sync"

	"github.com/muurk/logconsole/internal/model"
)

// SystemConfigurations is the extension point for settings page panels.
const SystemConfigurations = "systemConfigurations"

// Props is what every configuration panel is constructed with.
type Props struct {
	// Config is the current value of the panel's resource. It is nil
	// when the resource has not been loaded.
	Config model.Config

	// UpdateConfig dispatches a new value for the panel's resource.
	UpdateConfig func(model.Config)
}

// Panel is a renderable, editable configuration panel.
type Panel interface {
	// Title is the panel heading.
	Title() string

	// View renders the panel at the given width.
	View(width int) string

	// Fields lists the editable fields in display order. A read-only
	// panel returns nil.
	Fields() []string

	// Value returns the current display value of a field.
	Value(field string) string

	// Edit parses raw as the new value of field and dispatches the
	// updated config through Props.UpdateConfig.
	Edit(field, raw string) error
}

// Factory creates a panel from props.
type Factory func(Props) Panel

// Contribution is one registered panel for a config type.
type Contribution struct {
	ConfigType string
	Factory    Factory
}

// Registry maps extension points to their contributions.
type Registry struct {
	mu     sync.RWMutex
	points map[string][]Contribution
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{points: make(map[string][]Contribution)}
}

// Register adds a contribution to an extension point. Contributions are
// returned by Exports in registration order.
func (r *Registry) Register(point string, c Contribution) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.points[point] = append(r.points[point], c)
}

// Exports returns a copy of the contributions for an extension point.
// A nil registry has no contributions.
func (r *Registry) Exports(point string) []Contribution {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Contribution, len(r.points[point]))
	copy(out, r.points[point])
	return out
}

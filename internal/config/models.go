package config

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Registry represents the entire user configuration file.
// This stores server profiles and application preferences.
type Registry struct {
	Version       int                 `yaml:"version"`
	ActiveProfile string              `yaml:"active_profile,omitempty"`
	Profiles      map[string]*Profile `yaml:"profiles,omitempty"` // Keyed by profile name
	Preferences   *Preferences        `yaml:"preferences,omitempty"`
}

// Profile describes how to reach one log server.
// Note: Passwords are NEVER stored - they come from a flag or LOGCONSOLE_PASSWORD.
type Profile struct {
	URL      string    `yaml:"url"`
	Username string    `yaml:"username,omitempty"`
	Insecure bool      `yaml:"insecure,omitempty"`  // Skip TLS verification
	LastUsed time.Time `yaml:"last_used,omitempty"` // Last time the console connected with this profile
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	PageSize        int      `yaml:"page_size"`                 // Rows per page in the message table
	RefreshInterval int      `yaml:"refresh_interval"`          // Auto-refresh interval in seconds, 0 disables it
	SelectedFields  []string `yaml:"selected_fields,omitempty"` // Default message table columns
	LiveTail        bool     `yaml:"live_tail"`                 // Stream new messages over websocket
	LogFile         string   `yaml:"log_file,omitempty"`        // Log destination while the TUI owns the terminal
}

// Default preference values.
const (
	DefaultPageSize        = 100
	DefaultRefreshInterval = 10
)

// DefaultSelectedFields are the columns shown when no preference is stored.
var DefaultSelectedFields = []string{"source", "message"}

func defaultPreferences() *Preferences {
	return &Preferences{
		PageSize:        DefaultPageSize,
		RefreshInterval: DefaultRefreshInterval,
		SelectedFields:  append([]string(nil), DefaultSelectedFields...),
	}
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     1,
		Profiles:    make(map[string]*Profile),
		Preferences: defaultPreferences(),
	}
}

// GetProfile retrieves a profile by name.
// Returns nil if the profile doesn't exist in the registry.
func (r *Registry) GetProfile(name string) *Profile {
	return r.Profiles[name]
}

// SetProfile creates or replaces a profile after validating its URL.
// The first profile added becomes the active one.
func (r *Registry) SetProfile(name string, p *Profile) error {
	if name == "" {
		return fmt.Errorf("profile name is required")
	}
	u, err := url.Parse(p.URL)
	if err != nil {
		return fmt.Errorf("invalid server URL %q: %w", p.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid server URL %q: scheme must be http or https", p.URL)
	}
	p.URL = strings.TrimRight(p.URL, "/")

	if r.Profiles == nil {
		r.Profiles = make(map[string]*Profile)
	}
	r.Profiles[name] = p
	if r.ActiveProfile == "" {
		r.ActiveProfile = name
	}
	return nil
}

// UseProfile marks an existing profile active.
func (r *Registry) UseProfile(name string) error {
	if _, ok := r.Profiles[name]; !ok {
		return fmt.Errorf("unknown profile %q", name)
	}
	r.ActiveProfile = name
	return nil
}

// Active returns the active profile, or nil if none is configured.
func (r *Registry) Active() *Profile {
	if r.ActiveProfile == "" {
		return nil
	}
	return r.Profiles[r.ActiveProfile]
}

// TouchProfile updates the last used timestamp for a profile.
func (r *Registry) TouchProfile(name string) {
	if p := r.Profiles[name]; p != nil {
		p.LastUsed = time.Now()
	}
}

// ProfileNames returns profile names in sorted order.
func (r *Registry) ProfileNames() []string {
	names := make([]string, 0, len(r.Profiles))
	for name := range r.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

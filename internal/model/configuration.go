package model

import "sort"

// Config is an opaque configuration blob as decoded from JSON.
type Config map[string]any

// Clone returns a shallow copy of the config.
func (c Config) Clone() Config {
	if c == nil {
		return nil
	}
	out := make(Config, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Keys returns the config's field names in sorted order.
func (c Config) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Configurations is a snapshot of the configuration store: every config
// resource loaded so far, keyed by its type key.
type Configurations struct {
	Configs map[string]Config
}

// Get returns the config for a type key.
func (c Configurations) Get(configType string) (Config, bool) {
	cfg, ok := c.Configs[configType]
	return cfg, ok
}

// With returns a copy of the snapshot with configType set to cfg.
func (c Configurations) With(configType string, cfg Config) Configurations {
	out := make(map[string]Config, len(c.Configs)+1)
	for k, v := range c.Configs {
		out[k] = v
	}
	out[configType] = cfg
	return Configurations{Configs: out}
}

// Len returns the number of distinct config resources known.
func (c Configurations) Len() int {
	return len(c.Configs)
}

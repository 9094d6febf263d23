package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "logconsole"
	configFile = "config.yaml"

	// PathEnvVar overrides the location of the configuration file
	PathEnvVar = "LOGCONSOLE_CONFIG"

	currentVersion = 1
)

var (
	loaded     *Registry
	loadedErr  error
	loadedOnce sync.Once

	writeMu sync.Mutex
)

var fileHeader = []byte(`# logconsole configuration: server profiles and console preferences.
# Passwords are never written here; use --password or LOGCONSOLE_PASSWORD.

`)

// Dir returns the directory holding the configuration file.
// XDG_CONFIG_HOME wins on every platform, then the OS user config dir.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(base, appName), nil
}

// Path returns the configuration file path, honouring LOGCONSOLE_CONFIG.
func Path() (string, error) {
	if p := os.Getenv(PathEnvVar); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// LoadRegistry returns the process-wide registry, reading it on first use.
// A missing file yields a default registry.
func LoadRegistry() (*Registry, error) {
	loadedOnce.Do(func() {
		var path string
		path, loadedErr = Path()
		if loadedErr == nil {
			loaded, loadedErr = ReadFile(path)
		}
	})
	return loaded, loadedErr
}

// ReadFile parses the registry stored at path.
func ReadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewRegistry(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	r := &Registry{}
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if r.Version != currentVersion {
		return nil, fmt.Errorf("unsupported config version %d in %s (expected %d)", r.Version, path, currentVersion)
	}
	r.fillDefaults()
	return r, nil
}

func (r *Registry) fillDefaults() {
	if r.Profiles == nil {
		r.Profiles = make(map[string]*Profile)
	}
	if r.Preferences == nil {
		r.Preferences = defaultPreferences()
	}
	if r.Preferences.PageSize <= 0 {
		r.Preferences.PageSize = DefaultPageSize
	}
}

// Save writes the registry to Path().
func (r *Registry) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return r.WriteFile(path)
}

// WriteFile writes the registry to path through a temporary file and a
// rename, so readers never see a partial file.
func (r *Registry) WriteFile(path string) error {
	writeMu.Lock()
	defer writeMu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	body, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(fileHeader)
	buf.Write(body)

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to save config file: %w", err)
	}
	return nil
}

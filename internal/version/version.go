// Package version reports the build identity of logconsole.
//
// Release builds set Version and Commit through ldflags:
//
//	go build -ldflags="-X github.com/muurk/logconsole/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/logconsole/internal/version.Commit=1a2b3c4"
//
// Other builds fall back to the VCS stamp the Go toolchain embeds.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

var (
	Version = ""
	Commit  = ""
)

const shortCommit = 7

// Info is the resolved build identity.
type Info struct {
	Version   string
	Commit    string
	GoVersion string
}

func init() {
	info := fromBuildSettings(readSettings())
	if Version == "" {
		Version = info.Version
	}
	if Commit == "" {
		Commit = info.Commit
	}
}

func readSettings() map[string]string {
	settings := map[string]string{}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return settings
	}
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}
	return settings
}

// fromBuildSettings derives an Info from vcs.* build settings.
func fromBuildSettings(settings map[string]string) Info {
	info := Info{Version: "dev", Commit: "unknown"}

	if rev := settings["vcs.revision"]; rev != "" {
		if len(rev) > shortCommit {
			rev = rev[:shortCommit]
		}
		info.Commit = rev
	}
	if settings["vcs.modified"] == "true" {
		info.Commit += "-dirty"
	}
	if t, err := time.Parse(time.RFC3339, settings["vcs.time"]); err == nil {
		info.Version = "dev-" + t.UTC().Format("20060102")
	}
	return info
}

// Get returns the current build identity.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		GoVersion: runtime.Version(),
	}
}

func (i Info) String() string {
	return fmt.Sprintf("%s (commit: %s, %s)", i.Version, i.Commit, i.GoVersion)
}

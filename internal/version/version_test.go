package version

import (
	"strings"
	"testing"
)

func TestFromBuildSettings(t *testing.T) {
	tests := []struct {
		name        string
		settings    map[string]string
		wantVersion string
		wantCommit  string
	}{
		{"no vcs", map[string]string{}, "dev", "unknown"},
		{
			"clean checkout",
			map[string]string{"vcs.revision": "0123456789abcdef", "vcs.time": "2026-03-01T10:00:00Z"},
			"dev-20260301", "0123456",
		},
		{
			"dirty checkout",
			map[string]string{"vcs.revision": "abc", "vcs.modified": "true"},
			"dev", "abc-dirty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fromBuildSettings(tt.settings)
			if got.Version != tt.wantVersion {
				t.Errorf("Version = %v, want %v", got.Version, tt.wantVersion)
			}
			if got.Commit != tt.wantCommit {
				t.Errorf("Commit = %v, want %v", got.Commit, tt.wantCommit)
			}
		})
	}
}

func TestGet(t *testing.T) {
	info := Get()
	if info.Version == "" || info.Commit == "" {
		t.Errorf("Get() = %+v, want populated fields", info)
	}
	if !strings.Contains(info.String(), info.GoVersion) {
		t.Errorf("String() = %q, want go version", info.String())
	}
}

package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yes", true}, // no trailing newline
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got := Confirm(strings.NewReader(tt.input), &out, "Update config", []Detail{{Key: "field", Value: "1"}})
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if !strings.Contains(out.String(), "Update config") {
			t.Errorf("Confirm(%q) output missing title", tt.input)
		}
	}
}

func TestResultRender(t *testing.T) {
	success := NewSuccessResult("Configuration updated",
		Detail{Key: "Type", Value: "events"},
		Detail{Key: "Field", Value: "timeout"},
	).SetWidth(80).Render()

	if !strings.Contains(success, "SUCCESS") || !strings.Contains(success, "Configuration updated") {
		t.Errorf("success box missing title:\n%s", success)
	}
	if strings.Index(success, "Type") > strings.Index(success, "Field") {
		t.Error("details should render in the order given")
	}

	failure := NewFailureResult("Search failed", errors.New("boom"), []string{"Check the server URL"}).
		SetWidth(80).Render()
	for _, want := range []string{"FAILED", "boom", "Check the server URL"} {
		if !strings.Contains(failure, want) {
			t.Errorf("failure box missing %q:\n%s", want, failure)
		}
	}
}

func TestPrinterHeader(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf).SetWidth(80)
	p.PrintHeader("Search", "logconsole search", Detail{Key: "Server", Value: "https://logs.example.com"})

	out := buf.String()
	for _, want := range []string{"SEARCH", "logconsole search", "Server:", "https://logs.example.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
}

func TestLoadProgress(t *testing.T) {
	p := NewLoadProgress("Loading", []string{"Searches", "Events"}).SetWidth(80)

	if p.Loaded() != 0 || p.Percent() != 0 {
		t.Errorf("new progress = %d loaded, %v percent", p.Loaded(), p.Percent())
	}

	p.SetLoaded("Events", true)
	p.SetLoaded("Unknown", true)
	if p.Loaded() != 1 || p.Percent() != 0.5 {
		t.Errorf("after one = %d loaded, %v percent", p.Loaded(), p.Percent())
	}

	out := p.Render()
	for _, want := range []string{"Loading", "[1/2]", SuccessMarker + " Events", PendingMarker + " Searches"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}

	if NewLoadProgress("", nil).Percent() != 1 {
		t.Error("empty progress should be complete")
	}
}

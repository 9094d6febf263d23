package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestStyleSheetRefCounting(t *testing.T) {
	builds := 0
	sheet := NewStyleSheet(func() map[string]lipgloss.Style {
		builds++
		return map[string]lipgloss.Style{"panel": lipgloss.NewStyle().Bold(true)}
	})

	if sheet.Style("panel").GetBold() {
		t.Error("Style() before Use() should be plain")
	}

	sheet.Use()
	sheet.Use()
	if builds != 1 {
		t.Errorf("builds = %d, want 1", builds)
	}
	if !sheet.Style("panel").GetBold() {
		t.Error("Style(panel) should be bold while in use")
	}

	sheet.Unuse()
	if sheet.Refs() != 1 {
		t.Errorf("Refs() = %d, want 1", sheet.Refs())
	}
	if !sheet.Style("panel").GetBold() {
		t.Error("sheet released while still referenced")
	}

	sheet.Unuse()
	sheet.Unuse() // extra release must not go negative
	if sheet.Refs() != 0 {
		t.Errorf("Refs() = %d, want 0", sheet.Refs())
	}
	if sheet.Style("panel").GetBold() {
		t.Error("Style() after final Unuse() should be plain")
	}
}

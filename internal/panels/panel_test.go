package panels

import (
	"reflect"
	"strings"
	"testing"

	"github.com/muurk/logconsole/internal/model"
	"github.com/muurk/logconsole/internal/plugin"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, NotSet},
		{"P30D", "P30D"},
		{"", `""`},
		{true, "true"},
		{float64(5000), "5000"},
		{1.5, "1.5"},
		{[]any{"a", "b"}, "a, b"},
		{[]any{map[string]any{"value": "x"}}, `{"value":"x"}`},
		{map[string]any{"PT5M": "5 minutes"}, `{"PT5M":"5 minutes"}`},
	}

	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name    string
		current any
		kind    Kind
		raw     string
		want    any
		wantErr bool
	}{
		{"string keeps string", "P30D", KindNumber, "P7D", "P7D", false},
		{"bool from current", false, KindString, "true", true, false},
		{"bad bool", true, KindString, "maybe", nil, true},
		{"number from current", float64(1), KindString, "60000", float64(60000), false},
		{"bad number", float64(1), KindString, "soon", nil, true},
		{"list comma split", []any{"x"}, KindString, "a, b,,c", []any{"a", "b", "c"}, false},
		{"list json", []any{}, KindString, `[{"id":"1"}]`, []any{map[string]any{"id": "1"}}, false},
		{"empty list", []any{"x"}, KindString, "", []any{}, false},
		{"object", map[string]any{}, KindString, `{"PT1M":"1 minute"}`, map[string]any{"PT1M": "1 minute"}, false},
		{"bad object", map[string]any{}, KindString, `{`, nil, true},
		{"absent uses kind", nil, KindBool, "false", false, false},
		{"absent default string", nil, KindString, " text ", "text", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseValue(tt.current, tt.kind, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseValue() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseValue() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestEditDispatchesWholeConfig(t *testing.T) {
	current := model.Config{"badge_text": "PROD", "badge_enable": true}
	var updated model.Config

	p := Customization(plugin.Props{
		Config:       current,
		UpdateConfig: func(c model.Config) { updated = c },
	})

	if err := p.Edit("badge_enable", "false"); err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if updated["badge_enable"] != false || updated["badge_text"] != "PROD" {
		t.Errorf("updated = %v", updated)
	}
	if current["badge_enable"] != true {
		t.Error("Edit() must not modify the current config")
	}

	if err := p.Edit("unknown_field", "x"); err == nil {
		t.Error("Edit() should reject unknown fields")
	}
	if err := p.Edit("badge_enable", "nope"); err == nil {
		t.Error("Edit() should reject unparsable values")
	}
}

func TestEditWithoutCallback(t *testing.T) {
	p := Searches(plugin.Props{Config: model.Config{"query_time_range_limit": "P1D"}})
	if err := p.Edit("query_time_range_limit", "P2D"); err == nil {
		t.Error("Edit() without UpdateConfig should fail")
	}
}

func TestEditOnUnloadedConfig(t *testing.T) {
	var updated model.Config
	p := Events(plugin.Props{UpdateConfig: func(c model.Config) { updated = c }})

	if got := p.Fields(); got != nil {
		t.Errorf("Fields() = %v, want nil", got)
	}
	if err := p.Edit("events_search_timeout", "60000"); err == nil {
		t.Error("Edit() on an unloaded config should fail")
	}
	if updated != nil {
		t.Errorf("UpdateConfig called with %v", updated)
	}
}

func TestEditOnEmptyConfig(t *testing.T) {
	var updated model.Config
	p := Events(plugin.Props{Config: model.Config{}, UpdateConfig: func(c model.Config) { updated = c }})

	if err := p.Edit("events_search_timeout", "60000"); err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if updated["events_search_timeout"] != float64(60000) {
		t.Errorf("updated = %v", updated)
	}
}

func TestView(t *testing.T) {
	p := MessageProcessors(plugin.Props{Config: model.Config{
		"processor_order":     []any{"GeoIP Resolver", "Pipeline Processor"},
		"disabled_processors": []any{},
	}})

	out := p.View(80)
	for _, want := range []string{"Message Processors Configuration", "Processor order", "GeoIP Resolver"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q:\n%s", want, out)
		}
	}

	if out := Sidecar(plugin.Props{}).View(60); !strings.Contains(out, "Not loaded") {
		t.Errorf("unloaded View() = %s", out)
	}
}

func TestDecoratorsIsReadOnly(t *testing.T) {
	p := Decorators()
	if p.Fields() != nil {
		t.Errorf("Fields() = %v, want nil", p.Fields())
	}
	if err := p.Edit("anything", "x"); err == nil {
		t.Error("Edit() on a read-only panel should fail")
	}
	if !strings.Contains(p.View(60), "Decorators") {
		t.Error("View() missing title")
	}
}

func TestValue(t *testing.T) {
	p := URLWhitelist(plugin.Props{Config: model.Config{"disabled": false}})
	if got := p.Value("disabled"); got != "false" {
		t.Errorf("Value(disabled) = %q", got)
	}
	if got := p.Value("entries"); got != NotSet {
		t.Errorf("Value(entries) = %q, want %q", got, NotSet)
	}
	if got := p.Fields(); !reflect.DeepEqual(got, []string{"disabled", "entries"}) {
		t.Errorf("Fields() = %v", got)
	}
}

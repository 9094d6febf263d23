package panels

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/logconsole/internal/plugin"
	"github.com/muurk/logconsole/internal/ui"
)

// Kind is the JSON kind a field is parsed as when it has no current value.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindNumber
	KindList
	KindObject
)

// NotSet is displayed for fields absent from the config.
const NotSet = "(not set)"

// Field describes one editable field of a config resource.
type Field struct {
	Name  string
	Label string
	Kind  Kind
}

// ConfigPanel renders a config resource as labelled rows and applies
// single-field edits to it.
type ConfigPanel struct {
	title  string
	fields []Field
	props  plugin.Props
	note   string
}

var _ plugin.Panel = (*ConfigPanel)(nil)

// New creates a panel showing fields of props.Config.
func New(title string, fields []Field, props plugin.Props) *ConfigPanel {
	return &ConfigPanel{title: title, fields: fields, props: props}
}

// ReadOnly creates a panel without editable fields that shows note.
func ReadOnly(title, note string) *ConfigPanel {
	return &ConfigPanel{title: title, note: note}
}

// Title implements plugin.Panel.
func (p *ConfigPanel) Title() string {
	return p.title
}

// Fields implements plugin.Panel. A panel whose config never loaded has
// no editable fields.
func (p *ConfigPanel) Fields() []string {
	if len(p.fields) == 0 || p.props.Config == nil {
		return nil
	}
	names := make([]string, len(p.fields))
	for i, f := range p.fields {
		names[i] = f.Name
	}
	return names
}

func (p *ConfigPanel) field(name string) (Field, bool) {
	for _, f := range p.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Value implements plugin.Panel.
func (p *ConfigPanel) Value(name string) string {
	v, ok := p.props.Config[name]
	if !ok {
		return NotSet
	}
	return FormatValue(v)
}

// Edit implements plugin.Panel. The new value keeps the JSON kind of the
// current one; absent fields use the declared Kind.
func (p *ConfigPanel) Edit(name, raw string) error {
	f, ok := p.field(name)
	if !ok {
		return fmt.Errorf("%s has no editable field %q", p.title, name)
	}
	if p.props.UpdateConfig == nil {
		return fmt.Errorf("%s is read-only", p.title)
	}
	// Updates replace the whole resource, so a partial one would drop
	// every server-side field.
	if p.props.Config == nil {
		return fmt.Errorf("%s is not loaded", p.title)
	}

	parsed, err := ParseValue(p.props.Config[name], f.Kind, raw)
	if err != nil {
		return fmt.Errorf("%s: %w", f.label(), err)
	}

	cfg := p.props.Config.Clone()
	cfg[name] = parsed
	p.props.UpdateConfig(cfg)
	return nil
}

func (f Field) label() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// View implements plugin.Panel.
func (p *ConfigPanel) View(width int) string {
	if width < 20 {
		width = 20
	}
	inner := width - 4

	var b strings.Builder
	b.WriteString(ui.HeaderTitleStyle.Render(p.title))
	b.WriteString("\n")

	switch {
	case p.note != "":
		b.WriteString(ui.MutedStyle.Width(inner).Render(p.note))
	case p.props.Config == nil:
		b.WriteString(ui.MutedStyle.Render("Not loaded"))
	default:
		labelWidth := 0
		for _, f := range p.fields {
			if w := lipgloss.Width(f.label()); w > labelWidth {
				labelWidth = w
			}
		}
		for i, f := range p.fields {
			if i > 0 {
				b.WriteString("\n")
			}
			key := ui.ResultKeyStyle.Width(labelWidth + 2).Render(f.label() + ":")
			val := ui.ResultValueStyle.Width(max(inner-labelWidth-2, 8)).Render(p.Value(f.Name))
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, key, val))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.MutedColor).
		Padding(0, 1).
		Width(width - 2).
		Render(b.String())
}

// FormatValue renders a JSON-decoded value for display.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return NotSet
	case string:
		if val == "" {
			return `""`
		}
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			if _, nested := item.(map[string]any); nested {
				parts[i] = compactJSON(item)
			} else {
				parts[i] = FormatValue(item)
			}
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(val, ", ")
	case map[string]any:
		return compactJSON(val)
	default:
		return fmt.Sprint(val)
	}
}

func compactJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// ParseValue parses raw into the JSON kind of current, or of kind when
// current is nil.
func ParseValue(current any, kind Kind, raw string) (any, error) {
	raw = strings.TrimSpace(raw)

	switch current.(type) {
	case string:
		kind = KindString
	case bool:
		kind = KindBool
	case float64, int:
		kind = KindNumber
	case []any, []string:
		kind = KindList
	case map[string]any:
		kind = KindObject
	}

	switch kind {
	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("expected true or false, got %q", raw)
		}
		return b, nil
	case KindNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("expected a number, got %q", raw)
		}
		return n, nil
	case KindList:
		if strings.HasPrefix(raw, "[") {
			var out []any
			if err := json.Unmarshal([]byte(raw), &out); err != nil {
				return nil, fmt.Errorf("invalid JSON list: %w", err)
			}
			return out, nil
		}
		out := []any{}
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out, nil
	case KindObject:
		var out map[string]any
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return nil, fmt.Errorf("invalid JSON object: %w", err)
		}
		return out, nil
	default:
		return raw, nil
	}
}

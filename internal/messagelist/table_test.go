package messagelist

import (
	"fmt"
	"testing"

	"github.com/muurk/logconsole/internal/collections"
	"github.com/muurk/logconsole/internal/model"
)

func records(n int) []model.Record {
	out := make([]model.Record, n)
	for i := range out {
		out[i] = model.Record{
			Index: "graylog_0",
			ID:    fmt.Sprintf("m%d", i),
			Fields: map[string]any{
				"timestamp": "2024-03-01T10:00:00.000Z",
				"source":    "host-a",
				"message":   fmt.Sprintf("line %d", i),
			},
		}
	}
	return out
}

func TestBuildTableRowCount(t *testing.T) {
	tests := []struct {
		name  string
		total int
		size  int
		page  int
		want  int
	}{
		{"first page", 10, 3, 1, 3},
		{"last partial page", 10, 3, 4, 1},
		{"past the end", 10, 3, 5, 0},
		{"page zero", 10, 3, 0, 0},
		{"negative page", 10, 3, -2, 0},
		{"no records", 0, 3, 1, 0},
		{"default page size", 10, 0, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildTable(Props{Records: records(tt.total), PageSize: tt.size}, tt.page, nil)
			if len(got.Rows) != tt.want {
				t.Errorf("len(Rows) = %d, want %d", len(got.Rows), tt.want)
			}
		})
	}
}

func TestBuildTableRowKeysAndOrder(t *testing.T) {
	got := BuildTable(Props{Records: records(5), PageSize: 2}, 2, nil)
	want := []string{"graylog_0-m2", "graylog_0-m3"}
	for i, r := range got.Rows {
		if r.Key != want[i] {
			t.Errorf("Rows[%d].Key = %q, want %q", i, r.Key, want[i])
		}
	}
}

func TestBuildTableMessageIsNeverAColumn(t *testing.T) {
	tests := []struct {
		selected []string
		cols     int
		showMsg  bool
	}{
		{[]string{"source", "message"}, 1, true},
		{[]string{"source"}, 1, false},
		{[]string{"message"}, 0, true},
		{nil, 0, false},
		{[]string{"source", "level", "message", "facility"}, 3, true},
	}

	for _, tt := range tests {
		got := BuildTable(Props{Records: records(1), SelectedFields: tt.selected}, 1, nil)
		if len(got.Columns) != tt.cols {
			t.Errorf("selected %v: len(Columns) = %d, want %d", tt.selected, len(got.Columns), tt.cols)
		}
		for _, c := range got.Columns {
			if c.Name == model.MessageField {
				t.Errorf("selected %v: message rendered as a column", tt.selected)
			}
		}
		if got.ShowMessageRow != tt.showMsg {
			t.Errorf("selected %v: ShowMessageRow = %v, want %v", tt.selected, got.ShowMessageRow, tt.showMsg)
		}
	}
}

func TestBuildTableTimestampColumnAlwaysPresent(t *testing.T) {
	got := BuildTable(Props{}, 1, nil)
	if got.Timestamp.Width != TimestampWidth {
		t.Errorf("Timestamp.Width = %d, want %d", got.Timestamp.Width, TimestampWidth)
	}
}

func TestBuildTableSourceWidth(t *testing.T) {
	tests := []struct {
		selected []string
		want     int
	}{
		{[]string{"source"}, ColumnWidth},
		{[]string{"source", "message"}, ColumnWidth},
		{[]string{"source", "level"}, WideColumnWidth},
		{[]string{"Source", "level", "message"}, WideColumnWidth},
	}

	for _, tt := range tests {
		got := BuildTable(Props{SelectedFields: tt.selected}, 1, nil)
		if got.Columns[0].Width != tt.want {
			t.Errorf("selected %v: source width = %d, want %d", tt.selected, got.Columns[0].Width, tt.want)
		}
	}
	got := BuildTable(Props{SelectedFields: []string{"source", "level"}}, 1, nil)
	if got.Columns[1].Width != ColumnWidth {
		t.Errorf("level width = %d, want %d", got.Columns[1].Width, ColumnWidth)
	}
}

func TestBuildTableExpanded(t *testing.T) {
	expanded := collections.NewOrderedSet("graylog_0-m1")
	got := BuildTable(Props{Records: records(3)}, 1, expanded)
	for _, r := range got.Rows {
		want := r.Key == "graylog_0-m1"
		if r.Expanded != want {
			t.Errorf("row %s Expanded = %v, want %v", r.Key, r.Expanded, want)
		}
	}
}

func TestFieldTypeFor(t *testing.T) {
	descriptors := []model.FieldDescriptor{
		{Name: "source", Type: model.FieldTypeString},
		{Name: "took_ms", Type: model.FieldTypeLong},
	}

	if got := FieldTypeFor("took_ms", descriptors); got != model.FieldTypeLong {
		t.Errorf("FieldTypeFor(took_ms) = %v, want %v", got, model.FieldTypeLong)
	}
	if got := FieldTypeFor("missing", descriptors); got != model.FieldTypeUnknown {
		t.Errorf("FieldTypeFor(missing) = %v, want %v", got, model.FieldTypeUnknown)
	}
	if got := FieldTypeFor("source", nil); got != model.FieldTypeUnknown {
		t.Errorf("FieldTypeFor with no descriptors = %v, want %v", got, model.FieldTypeUnknown)
	}

	table := BuildTable(Props{SelectedFields: []string{"took_ms", "missing"}, Fields: descriptors}, 1, nil)
	if table.Columns[1].Type != model.FieldTypeUnknown {
		t.Errorf("column type = %v, want %v", table.Columns[1].Type, model.FieldTypeUnknown)
	}
}

func TestFilterFields(t *testing.T) {
	got := FilterFields(map[string]any{
		"_id":              "abc",
		"gl2_source_input": "in1",
		"gl2_remote_ip":    "10.0.0.1",
		"streams":          []any{"s1"},
		"source":           "host-a",
		"message":          "hello",
		"full_message":     "hello world",
	})

	for _, name := range []string{"_id", "gl2_source_input", "gl2_remote_ip", "streams"} {
		if _, ok := got[name]; ok {
			t.Errorf("FilterFields kept %q", name)
		}
	}
	for _, name := range []string{"source", "message", "full_message"} {
		if _, ok := got[name]; !ok {
			t.Errorf("FilterFields dropped %q", name)
		}
	}
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		total, page, size int
		start, end        int
	}{
		{10, 1, 3, 0, 3},
		{10, 4, 3, 9, 10},
		{10, 5, 3, 10, 10},
		{10, 0, 3, 0, 0},
		{2, 1, 7, 0, 2},
	}
	for _, tt := range tests {
		start, end := PageWindow(tt.total, tt.page, tt.size)
		if start != tt.start || end != tt.end {
			t.Errorf("PageWindow(%d, %d, %d) = %d, %d, want %d, %d",
				tt.total, tt.page, tt.size, start, end, tt.start, tt.end)
		}
	}
}

func TestTotalPages(t *testing.T) {
	if got := TotalPages(0, 5); got != 1 {
		t.Errorf("TotalPages(0, 5) = %d, want 1", got)
	}
	if got := TotalPages(11, 5); got != 3 {
		t.Errorf("TotalPages(11, 5) = %d, want 3", got)
	}
}

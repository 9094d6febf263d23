package messagelist

import (
	"strings"

	"github.com/muurk/logconsole/internal/collections"
	"github.com/muurk/logconsole/internal/model"
)

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 7

// Column widths in terminal cells
const (
	TimestampWidth  = 23
	ColumnWidth     = 16
	WideColumnWidth = 24
)

// filteredFields are storage internals never shown in a record's field
// projection.
var filteredFields = map[string]bool{
	"_id":     true,
	"_ttl":    true,
	"_source": true,
	"_all":    true,
	"_index":  true,
	"_type":   true,
	"_score":  true,
	"streams": true,
}

// FilterFields returns the displayable subset of a record's fields.
func FilterFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for name, v := range fields {
		if filteredFields[name] || strings.HasPrefix(name, "gl2_") {
			continue
		}
		out[name] = v
	}
	return out
}

// FieldTypeFor returns the type of name, or FieldTypeUnknown when no
// descriptor matches.
func FieldTypeFor(name string, descriptors []model.FieldDescriptor) model.FieldType {
	for _, d := range descriptors {
		if d.Name == name {
			return d.Type
		}
	}
	return model.FieldTypeUnknown
}

// Props is the data a table is built from.
type Props struct {
	Records        []model.Record
	SelectedFields []string
	Fields         []model.FieldDescriptor
	PageSize       int
}

// Column is one table header cell.
type Column struct {
	Name  string
	Type  model.FieldType
	Width int
}

// Row is one record on the current page.
type Row struct {
	Key      string
	Record   model.Record
	Fields   map[string]any
	Expanded bool
}

// Table is the view model of one page.
type Table struct {
	Timestamp      Column
	Columns        []Column
	Rows           []Row
	ShowMessageRow bool
}

// pageSize returns the effective page size.
func (p Props) pageSize() int {
	if p.PageSize > 0 {
		return p.PageSize
	}
	return DefaultPageSize
}

// selectedColumns is the selected set without the message pseudo-field.
func selectedColumns(selected []string) *collections.OrderedSet[string] {
	return collections.NewOrderedSet(selected...).Without(model.MessageField)
}

// PageWindow returns the [start, end) record indexes of page. Pages
// outside the record range, including page < 1, yield an empty window.
func PageWindow(total, page, size int) (int, int) {
	if page < 1 || size <= 0 {
		return 0, 0
	}
	start := (page - 1) * size
	if start >= total {
		return total, total
	}
	end := start + size
	if end > total {
		end = total
	}
	return start, end
}

// BuildTable derives the view model for page from p. expanded may be nil.
func BuildTable(p Props, page int, expanded *collections.OrderedSet[string]) Table {
	cols := selectedColumns(p.SelectedFields)

	t := Table{
		Timestamp: Column{
			Name:  "Timestamp",
			Type:  FieldTypeFor(model.TimestampField, p.Fields),
			Width: TimestampWidth,
		},
		ShowMessageRow: collections.NewOrderedSet(p.SelectedFields...).Contains(model.MessageField),
	}

	for _, name := range cols.Values() {
		width := ColumnWidth
		if strings.EqualFold(name, model.SourceField) && cols.Len() > 1 {
			width = WideColumnWidth
		}
		t.Columns = append(t.Columns, Column{
			Name:  name,
			Type:  FieldTypeFor(name, p.Fields),
			Width: width,
		})
	}

	start, end := PageWindow(len(p.Records), page, p.pageSize())
	for _, rec := range p.Records[start:end] {
		key := rec.Key()
		t.Rows = append(t.Rows, Row{
			Key:      key,
			Record:   rec,
			Fields:   FilterFields(rec.Fields),
			Expanded: expanded != nil && expanded.Contains(key),
		})
	}

	return t
}

// TotalPages returns the number of pages needed for total records.
func TotalPages(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

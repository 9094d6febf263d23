package model

import "fmt"

// Reserved field names
const (
	// TimestampField is always rendered as the leading table column.
	TimestampField = "timestamp"

	// MessageField is the full-record pseudo-column. Selecting it toggles
	// the per-record summary row instead of adding a column.
	MessageField = "message"

	// SourceField is widened in the table when other columns are present.
	SourceField = "source"

	IDField          = "_id"
	SourceInputField = "gl2_source_input"
	SourceNodeField  = "gl2_source_node"
	StreamsField     = "streams"
)

// Record is a single log message as returned by a search.
type Record struct {
	Index  string         // Index (container) the message is stored in
	ID     string         // Message id, unique within the index
	Fields map[string]any // Raw field name to value mapping
}

// Key returns the composite record key used for expansion tracking.
func (r Record) Key() string {
	return fmt.Sprintf("%s-%s", r.Index, r.ID)
}

// Field returns the raw value of a field, or nil if absent.
func (r Record) Field(name string) any {
	if r.Fields == nil {
		return nil
	}
	return r.Fields[name]
}

// SearchResult is a snapshot of the records store.
type SearchResult struct {
	Query        string
	Records      []Record
	TotalResults int
}

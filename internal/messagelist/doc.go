// Package messagelist implements the paginated record viewer.
//
// BuildTable is the pure part: it slices one page out of the records,
// derives the columns from the selected fields and marks expanded rows.
// Model wraps it in a Bubble Tea screen that observes the shared stores,
// pages with a paginator, scrolls with a viewport and shows a detail
// block for each expanded record. Expanding a record pauses auto-refresh
// so the list does not move under the reader.
package messagelist

// Package panels renders server configuration resources as editable
// panels for the settings page.
//
// Every built-in panel is a ConfigPanel over a fixed field list. Edits are
// parsed against the JSON kind of the field's current value, so a list
// stays a list and a number stays a number, and the whole updated config
// is handed to the panel's update callback.
package panels

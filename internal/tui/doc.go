// Package tui is the interactive application: a router over the message
// list and settings screens inside a shared application frame.
//
// Switching screens unmounts the old screen and mounts the new one, so
// each screen's subscriptions and polls only live while it is visible.
// Store changes reach the program through a Bridge.
package tui

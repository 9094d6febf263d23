// Package actions dispatches requests to the log server without blocking
// the caller. Results are published to the observable stores in Stores;
// screens subscribe to those stores and never see a request or its error.
package actions

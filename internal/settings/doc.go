// Package settings implements the settings page, which aggregates the
// server's configuration resources into one screen of panels.
//
// On mount the page requests every built-in resource the user may read
// plus every resource contributed to plugin.SystemConfigurations, then
// polls the configuration store until the required resources are known.
// Loading is one-way: once loaded, the page stays loaded until it is
// unmounted. Which keys count as "known enough" is decided by a
// Readiness function; ExactMembership is the default.
package settings

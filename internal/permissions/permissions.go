// Package permissions implements the pure permission check used to gate
// screens and config resources.
//
// Permissions are colon separated parts ("urlwhitelist:read",
// "streams:edit:5f1c..."). A granted part of "*" matches any requested
// part, and a granted permission with fewer parts than the requested one
// matches when its last part is "*".
package permissions

import "strings"

// IsPermitted reports whether granted covers every permission in required.
// An empty required list is always permitted.
func IsPermitted(granted []string, required ...string) bool {
	for _, req := range required {
		if !covers(granted, req) {
			return false
		}
	}
	return true
}

func covers(granted []string, required string) bool {
	for _, g := range granted {
		if implies(g, required) {
			return true
		}
	}
	return false
}

func implies(granted, required string) bool {
	if granted == "*" || granted == required {
		return true
	}

	g := strings.Split(granted, ":")
	r := strings.Split(required, ":")

	for i, part := range g {
		if i >= len(r) {
			// Granted is more specific than required.
			return part == "*"
		}
		if part == "*" {
			if i == len(g)-1 {
				return true
			}
			continue
		}
		if !partMatches(part, r[i]) {
			return false
		}
	}
	return len(g) == len(r)
}

// partMatches handles comma separated alternatives ("read,edit").
func partMatches(granted, required string) bool {
	for _, alt := range strings.Split(granted, ",") {
		if alt == required {
			return true
		}
	}
	return false
}

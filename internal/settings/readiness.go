package settings

import "github.com/muurk/logconsole/internal/model"

// Readiness decides whether the known configurations satisfy the
// required keys.
type Readiness func(known map[string]model.Config, required []string) bool

// ExactMembership is ready once every required key is known.
func ExactMembership(known map[string]model.Config, required []string) bool {
	for _, key := range required {
		if _, ok := known[key]; !ok {
			return false
		}
	}
	return true
}

// CardinalityAtLeast is ready once at least as many keys are known as are
// required, whichever keys they are. Unrelated keys can satisfy it while a
// required one is still missing.
func CardinalityAtLeast(known map[string]model.Config, required []string) bool {
	return len(known) >= len(required)
}

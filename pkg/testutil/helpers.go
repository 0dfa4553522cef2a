// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/sarandavies/london-house-buying/internal/engine"
	"github.com/sarandavies/london-house-buying/pkg/scenario"
)

// FindResult finds the result for a scenario in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindResult(results []engine.Result, selection scenario.Selection) *engine.Result {
	for i := range results {
		if results[i].Scenario == selection {
			return &results[i]
		}
	}
	return nil
}

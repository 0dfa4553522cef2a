package testutil

import (
	"testing"

	"github.com/sarandavies/london-house-buying/internal/engine"
	"github.com/sarandavies/london-house-buying/pkg/scenario"
)

func TestFindResult(t *testing.T) {
	results := []engine.Result{
		{Scenario: scenario.Base, Differential: 6275.09},
		{Scenario: scenario.RateSpikeCrash, Differential: -150000.00},
		{Scenario: scenario.RateDropBoom, Differential: 90000.00},
	}

	tests := []struct {
		name                 string
		selection            scenario.Selection
		expectFound          bool
		expectedDifferential float64
	}{
		{
			name:                 "Find base scenario",
			selection:            scenario.Base,
			expectFound:          true,
			expectedDifferential: 6275.09,
		},
		{
			name:                 "Find rate spike scenario",
			selection:            scenario.RateSpikeCrash,
			expectFound:          true,
			expectedDifferential: -150000.00,
		},
		{
			name:        "Search for scenario absent from results",
			selection:   scenario.StructuralRepairs,
			expectFound: false,
		},
		{
			name:        "Empty selection",
			selection:   scenario.Selection(""),
			expectFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindResult(results, tt.selection)

			if tt.expectFound {
				if result == nil {
					t.Errorf("FindResult() expected to find scenario '%s' but got nil", tt.selection)
					return
				}
				if result.Scenario != tt.selection {
					t.Errorf("FindResult() returned scenario '%s', expected '%s'",
						result.Scenario, tt.selection)
				}
				if result.Differential != tt.expectedDifferential {
					t.Errorf("FindResult() returned differential %v, expected %v",
						result.Differential, tt.expectedDifferential)
				}
			} else {
				if result != nil {
					t.Errorf("FindResult() expected nil for scenario '%s' but got result for '%s'",
						tt.selection, result.Scenario)
				}
			}
		})
	}
}

func TestFindResultEmptyResults(t *testing.T) {
	results := []engine.Result{}

	result := FindResult(results, scenario.Base)
	if result != nil {
		t.Errorf("FindResult() with empty results should return nil, got %v", result)
	}
}

func TestFindResultNilResults(t *testing.T) {
	var results []engine.Result = nil

	result := FindResult(results, scenario.Base)
	if result != nil {
		t.Errorf("FindResult() with nil results should return nil, got %v", result)
	}
}

func TestFindResultReturnsPointer(t *testing.T) {
	results := []engine.Result{
		{Scenario: scenario.Base, Differential: 6275.09},
	}

	found := FindResult(results, scenario.Base)
	if found == nil {
		t.Fatalf("FindResult() returned nil")
	}

	// Verify we get the same pointer
	if &results[0] != found {
		t.Errorf("FindResult() should return pointer to original element")
	}

	// Modify through the returned pointer and verify original is modified
	found.Differential = -1.0

	if results[0].Differential != -1.0 {
		t.Errorf("Modifying through returned pointer should modify original")
	}
}

func TestFindResultWithDuplicateScenarios(t *testing.T) {
	// Duplicate scenarios should return the first match
	results := []engine.Result{
		{Scenario: scenario.Base, Differential: 1000.00},
		{Scenario: scenario.Base, Differential: 2000.00},
	}

	found := FindResult(results, scenario.Base)
	if found == nil {
		t.Fatalf("FindResult() returned nil")
	}

	if found.Differential != 1000.00 {
		t.Errorf("FindResult() should return first match, got differential %v", found.Differential)
	}

	if &results[0] != found {
		t.Errorf("FindResult() should return pointer to first matching element")
	}
}

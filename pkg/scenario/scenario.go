// Package scenario maps discrete market scenarios to the parameter
// adjustments they apply. Selection is external (explicit choice or a
// pre-drawn random pick); the mapping itself is a pure table lookup so all
// scenario policy lives in one place.
package scenario

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/sarandavies/london-house-buying/pkg/constants"
	"github.com/sarandavies/london-house-buying/pkg/mathutil"
)

// Selection identifies one market scenario. Exactly one selection applies to
// a run; there are no transitions between them.
type Selection string

const (
	// Base applies no adjustments.
	Base Selection = "base"

	// RateSpikeCrash models rising rates alongside falling prices.
	RateSpikeCrash Selection = "rateSpikeCrash"

	// RateDropBoom models falling rates alongside rising prices.
	RateDropBoom Selection = "rateDropBoom"

	// StructuralRepairs models an unplanned renovation bill.
	StructuralRepairs Selection = "structuralRepairs"
)

// AdjustmentSet holds the deltas a scenario applies to the base assumptions.
// ExtraOneOffCost is added to the renovation cost line.
type AdjustmentSet struct {
	AppreciationDelta float64
	InterestRateDelta float64
	ExtraOneOffCost   float64
}

var adjustments = map[Selection]AdjustmentSet{
	Base:              {},
	RateSpikeCrash:    {AppreciationDelta: -5, InterestRateDelta: 2},
	RateDropBoom:      {AppreciationDelta: 3, InterestRateDelta: -1},
	StructuralRepairs: {ExtraOneOffCost: 50000},
}

// Selections lists every scenario in a stable order.
func Selections() []Selection {
	return []Selection{Base, RateSpikeCrash, RateDropBoom, StructuralRepairs}
}

// Adjust returns the adjustment set for a selection. Unknown selections
// behave as Base.
func Adjust(s Selection) AdjustmentSet {
	return adjustments[s]
}

// AdjustedRate applies the selection's interest-rate delta to a base annual
// rate. The effective rate is floored so a downward adjustment can never
// push a mortgage below the minimum representable rate.
func AdjustedRate(s Selection, baseRate float64) float64 {
	return mathutil.Max(baseRate+Adjust(s).InterestRateDelta, constants.MinimumInterestRate)
}

// AdjustedAppreciation applies the selection's appreciation delta to a base
// annual appreciation rate. Appreciation may go negative.
func AdjustedAppreciation(s Selection, baseAppreciation float64) float64 {
	return baseAppreciation + Adjust(s).AppreciationDelta
}

// ParseSelection converts a configuration or API string into a Selection.
// Matching is case-insensitive.
func ParseSelection(value string) (Selection, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "base":
		return Base, nil
	case "ratespikecrash":
		return RateSpikeCrash, nil
	case "ratedropboom":
		return RateDropBoom, nil
	case "structuralrepairs":
		return StructuralRepairs, nil
	}
	return Base, fmt.Errorf("unknown scenario %q, expected one of base, rateSpikeCrash, rateDropBoom, structuralRepairs", value)
}

// Draw picks a selection uniformly at random. The caller supplies the
// source so a run can be reproduced from its seed; a nil source falls back
// to a time-seeded one.
func Draw(r *rand.Rand) Selection {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	all := Selections()
	return all[r.Intn(len(all))]
}

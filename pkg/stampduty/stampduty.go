// Package stampduty calculates the banded transaction tax due on a
// residential property purchase.
package stampduty

import (
	"math"

	"github.com/sarandavies/london-house-buying/pkg/mathutil"
)

// Band is one marginal-rate slice of the duty schedule. UpperBound is the
// highest price the band covers; the final band is unbounded.
type Band struct {
	UpperBound float64
	Rate       float64
}

// bands is the published residential schedule in ascending order. The bands
// are non-overlapping and gapless, so a walk in order consumes the whole
// price exactly once.
var bands = []Band{
	{UpperBound: 125000, Rate: 0},
	{UpperBound: 250000, Rate: 2},
	{UpperBound: 925000, Rate: 5},
	{UpperBound: 1500000, Rate: 10},
	{UpperBound: math.Inf(1), Rate: 12},
}

// Bands returns a copy of the duty schedule for display purposes.
func Bands() []Band {
	out := make([]Band, len(bands))
	copy(out, bands)
	return out
}

// Calculate returns the stamp duty due on a purchase price. The portion of
// the price falling within each band is taxed at that band's marginal rate.
// Non-positive prices owe no duty.
func Calculate(price float64) float64 {
	if price <= 0 {
		return 0
	}

	duty := 0.00
	lower := 0.00
	for _, band := range bands {
		if price <= lower {
			break
		}
		portion := mathutil.Min(price, band.UpperBound) - lower
		duty += mathutil.ApplyPercentage(portion, band.Rate)
		lower = band.UpperBound
	}

	return mathutil.Round(duty)
}

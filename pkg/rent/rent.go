// Package rent projects rental payments forward under annual growth.
package rent

import (
	"github.com/sarandavies/london-house-buying/pkg/constants"
)

// Projection aggregates a rent run. FinalMonthlyRent is the rent paid during
// the last year of the horizon.
type Projection struct {
	TotalPaid        float64
	FinalMonthlyRent float64
}

// Project accumulates monthly rent over horizonYears, growing the rent once
// per year. Rent changes on tenancy renewal, so growth compounds annually
// rather than monthly. A negative growth rate shrinks the rent.
func Project(monthlyRent, annualGrowthRate float64, horizonYears int) Projection {
	projection := Projection{FinalMonthlyRent: monthlyRent}
	if horizonYears <= 0 {
		return projection
	}

	current := monthlyRent
	for year := 0; year < horizonYears; year++ {
		projection.TotalPaid += current * constants.MonthsPerYear
		projection.FinalMonthlyRent = current
		current *= 1 + annualGrowthRate/constants.PercentageMultiplier
	}

	return projection
}

// AverageMonthly returns the average rent per month across the horizon.
func (p Projection) AverageMonthly(horizonYears int) float64 {
	if horizonYears <= 0 {
		return 0
	}
	return p.TotalPaid / float64(horizonYears*constants.MonthsPerYear)
}

// Package history carries observed London average-price periods used to
// contextualize the appreciation assumptions fed into a comparison.
package history

import (
	"math"

	"github.com/sarandavies/london-house-buying/pkg/constants"
)

// Period is one five-year span of observed London average prices.
// AnnualizedReturnPct is the published annual growth rate linking the two
// prices.
type Period struct {
	StartYear           int     `json:"startYear"`
	EndYear             int     `json:"endYear"`
	StartPrice          float64 `json:"startPrice"`
	EndPrice            float64 `json:"endPrice"`
	AnnualizedReturnPct float64 `json:"annualizedReturnPct"`
}

var londonPeriods = []Period{
	{StartYear: 2000, EndYear: 2005, StartPrice: 163577, EndPrice: 282548, AnnualizedReturnPct: 11.6},
	{StartYear: 2005, EndYear: 2010, StartPrice: 282548, EndPrice: 290200, AnnualizedReturnPct: 0.5},
	{StartYear: 2010, EndYear: 2015, StartPrice: 290200, EndPrice: 531000, AnnualizedReturnPct: 12.8},
	{StartYear: 2015, EndYear: 2020, StartPrice: 531000, EndPrice: 486000, AnnualizedReturnPct: -1.8},
	{StartYear: 2020, EndYear: 2025, StartPrice: 486000, EndPrice: 552000, AnnualizedReturnPct: 2.6},
}

// LondonPeriods returns a copy of the dataset in chronological order.
func LondonPeriods() []Period {
	out := make([]Period, len(londonPeriods))
	copy(out, londonPeriods)
	return out
}

// AnnualizedReturn computes the constant annual growth rate, as a
// percentage, that takes start to end over the given number of years.
func AnnualizedReturn(start, end float64, years int) float64 {
	if start <= 0 || end <= 0 || years <= 0 {
		return 0
	}
	return (math.Pow(end/start, 1/float64(years)) - 1) * constants.PercentageMultiplier
}

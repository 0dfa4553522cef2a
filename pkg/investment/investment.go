// Package investment models the renter's alternative use of housing capital:
// the deposit left invested and the month-by-month cash-flow gap between a
// mortgage payment and rent.
package investment

import (
	"github.com/sarandavies/london-house-buying/pkg/constants"
	"github.com/sarandavies/london-house-buying/pkg/mathutil"
)

// CompoundLumpSum grows a single amount at annualRate for the given number
// of whole years.
func CompoundLumpSum(amount, annualRate float64, years int) float64 {
	return mathutil.CompoundAnnually(amount, annualRate, years)
}

// MonthlyDifferential accumulates the monthly gap between a fixed mortgage
// payment and the current rent into a balance that compounds at the
// monthly-equivalent of annualRate. Months where rent exceeds the payment
// draw the balance down before compounding, so it may go negative, modeling
// borrowing against the shortfall. Rent steps once per year, matching the
// rent projection's annual renewal cycle.
func MonthlyDifferential(monthlyPayment, monthlyRent, rentGrowthRate, annualRate float64, years int) float64 {
	if years <= 0 {
		return 0
	}

	monthlyRate := annualRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
	balance := 0.00
	currentRent := monthlyRent
	for year := 0; year < years; year++ {
		for month := 0; month < constants.MonthsPerYear; month++ {
			balance += monthlyPayment - currentRent
			balance *= 1 + monthlyRate
		}
		currentRent *= 1 + rentGrowthRate/constants.PercentageMultiplier
	}

	return balance
}

// RenterNetWorth combines the compounded deposit with the compounded
// cash-flow differential into the renter's end position.
func RenterNetWorth(deposit, monthlyPayment, monthlyRent, rentGrowthRate, annualRate float64, years int) float64 {
	return CompoundLumpSum(deposit, annualRate, years) +
		MonthlyDifferential(monthlyPayment, monthlyRent, rentGrowthRate, annualRate, years)
}

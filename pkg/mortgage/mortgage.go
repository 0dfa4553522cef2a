// Package mortgage provides annuity payment calculation and declining-balance
// amortization simulation.
package mortgage

import (
	"math"

	"github.com/sarandavies/london-house-buying/pkg/constants"
	"github.com/sarandavies/london-house-buying/pkg/mathutil"
)

// MonthlyPayment calculates the fixed monthly payment that fully amortizes
// principal over termYears at the given annual rate, using the standard
// annuity formula. A zero rate divides the principal evenly across the term;
// a non-positive principal has no payment at all.
func MonthlyPayment(principal, annualInterestRate float64, termYears int) float64 {
	if principal <= 0 || termYears <= 0 {
		return 0
	}

	termMonths := termYears * constants.MonthsPerYear
	if annualInterestRate == 0 {
		return principal / float64(termMonths)
	}

	periodicInterestRate := annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
	power := math.Pow((1.00 + periodicInterestRate), float64(termMonths))
	discountFactor := (power - 1.00) / power
	return principal * periodicInterestRate / discountFactor
}

// InterestPayment calculates the interest portion of one monthly payment.
func InterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// Summary aggregates a simulated amortization run.
type Summary struct {
	TotalInterest      float64
	RemainingPrincipal float64
	MonthsSimulated    int
}

// Simulate runs declining-balance amortization for at most maxMonths. Each
// month the interest component is charged on the opening balance and the
// rest of the payment retires principal. The loop stops early once the
// principal is paid off; the closing balance is clamped at zero rather than
// running past payoff. The payment is taken as fixed for the whole run.
func Simulate(principal, annualInterestRate, payment float64, maxMonths int) Summary {
	var summary Summary
	if principal <= 0 {
		return summary
	}
	summary.RemainingPrincipal = principal
	if maxMonths <= 0 {
		return summary
	}

	remaining := principal
	for month := 1; month <= maxMonths; month++ {
		interest := InterestPayment(remaining, annualInterestRate)
		summary.TotalInterest += interest
		remaining -= payment - interest
		summary.MonthsSimulated = month
		if remaining <= 0 || mathutil.Round(remaining) == 0 {
			// We will get machine error otherwise so just set to 0.
			remaining = 0
			break
		}
	}
	summary.RemainingPrincipal = remaining

	return summary
}

// Row is one month of an amortization schedule.
type Row struct {
	Month     int
	Payment   float64
	Interest  float64
	Principal float64
	Remaining float64
}

// Schedule generates the month-by-month amortization split over at most
// maxMonths. The final row's principal component is capped at the remaining
// balance so the schedule never reports a negative closing balance.
func Schedule(principal, annualInterestRate, payment float64, maxMonths int) []Row {
	if principal <= 0 || maxMonths <= 0 {
		return nil
	}

	rows := make([]Row, 0, maxMonths)
	remaining := principal
	for month := 1; month <= maxMonths; month++ {
		interest := InterestPayment(remaining, annualInterestRate)
		principalComponent := payment - interest
		if principalComponent > remaining {
			principalComponent = remaining
		}
		remaining -= principalComponent
		if mathutil.Round(remaining) == 0 {
			remaining = 0
		}
		rows = append(rows, Row{
			Month:     month,
			Payment:   interest + principalComponent,
			Interest:  interest,
			Principal: principalComponent,
			Remaining: remaining,
		})
		if remaining == 0 {
			break
		}
	}

	return rows
}

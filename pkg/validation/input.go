// Package validation provides input validation for comparison runs: hard
// rejections before any computation, plus advisory warnings for unusual but
// valid parameters.
package validation

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks parameter combinations that are rejected before any
// computation runs. Detect it across wrapping layers with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// CheckLoanParameters rejects combinations the model cannot price.
func CheckLoanParameters(housePrice, deposit float64, termYears int) error {
	if housePrice <= 0 {
		return fmt.Errorf("%w: house price must be positive, got %.2f", ErrInvalidInput, housePrice)
	}
	if deposit < 0 {
		return fmt.Errorf("%w: deposit cannot be negative, got %.2f", ErrInvalidInput, deposit)
	}
	if deposit > housePrice {
		return fmt.Errorf("%w: deposit %.2f exceeds house price %.2f", ErrInvalidInput, deposit, housePrice)
	}
	if termYears <= 0 {
		return fmt.Errorf("%w: loan term must be positive, got %d years", ErrInvalidInput, termYears)
	}
	return nil
}

// CheckHorizon rejects negative holding horizons. A zero horizon is allowed;
// it models an immediate resale.
func CheckHorizon(saleYear int) error {
	if saleYear < 0 {
		return fmt.Errorf("%w: sale year cannot be negative, got %d", ErrInvalidInput, saleYear)
	}
	return nil
}

// RunParameters captures the fields the advisory checks look at.
type RunParameters struct {
	HousePrice         float64
	Deposit            float64
	AnnualInterestRate float64
	MonthlyRent        float64
	TermYears          int
	SaleYear           int
	InvestedNetWorth   bool
}

// Warn returns advisory messages for unusual but valid parameters. Warnings
// never block a run.
func Warn(p RunParameters) []string {
	var warnings []string

	if p.HousePrice > 0 && p.Deposit < p.HousePrice*0.05 {
		warnings = append(warnings, fmt.Sprintf(
			"deposit %.2f is below 5%% of the purchase price %.2f - most lenders will not offer this loan-to-value",
			p.Deposit, p.HousePrice))
	}

	if p.AnnualInterestRate > 15 {
		warnings = append(warnings, fmt.Sprintf(
			"interest rate %.2f%% is unusually high for a residential mortgage", p.AnnualInterestRate))
	}

	if p.SaleYear > p.TermYears {
		warnings = append(warnings, fmt.Sprintf(
			"sale year %d is beyond the %d year loan term - the loan amortizes fully before sale",
			p.SaleYear, p.TermYears))
	}

	if p.InvestedNetWorth && p.MonthlyRent <= 0 {
		warnings = append(warnings, "monthly rent is zero - the invested-net-worth comparison invests the entire mortgage payment")
	}

	return warnings
}

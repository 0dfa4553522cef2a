// Package output provides utilities for formatting and displaying comparison results.
package output

import (
	"fmt"

	"github.com/sarandavies/london-house-buying/internal/breakeven"
	"github.com/sarandavies/london-house-buying/internal/engine"
	"github.com/sarandavies/london-house-buying/pkg/format"
	"github.com/sarandavies/london-house-buying/pkg/history"
	"github.com/sarandavies/london-house-buying/pkg/mortgage"
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(results []engine.Result) {
	for i, result := range results {
		fmt.Printf("--- Scenario %s (%s comparison) ---\n", result.Scenario, result.Mode)
		fmt.Printf("%-26s %s over %d months\n", "Mortgage payment", format.Currency(result.MonthlyPayment), result.MonthsSimulated)
		fmt.Printf("%-26s %s at %s interest\n", "Loan amount", format.Currency(result.LoanAmount), format.Percent(result.AdjustedInterestRate))
		fmt.Printf("%-26s %s\n", "Interest paid", format.Currency(result.TotalInterest))
		fmt.Printf("%-26s %s (stamp duty %s, fees %s, renovation %s, maintenance %s)\n",
			"Purchase costs", format.Currency(result.Costs.Total()),
			format.Currency(result.Costs.StampDuty), format.Currency(result.Costs.TransactionFees),
			format.Currency(result.Costs.RenovationCosts), format.Currency(result.Costs.Maintenance))
		fmt.Printf("%-26s %s after %s growth\n", "Sale value", format.Currency(result.Sale.SaleValue), format.Percent(result.AdjustedAppreciation))
		fmt.Printf("%-26s %s\n", "Sale proceeds", format.Currency(result.Sale.GrossProceeds))
		fmt.Printf("%-26s %s (final month %s)\n", "Rent paid instead", format.Currency(result.TotalRentPaid), format.Currency(result.FinalMonthlyRent))
		fmt.Printf("%-26s %s\n", "Buying money burned", format.Currency(result.BuyingUnrecoverable))
		fmt.Printf("%-26s %s\n", "Renting money burned", maybeCurrency(result.RentUnrecoverable))
		fmt.Printf("%-26s %s\n", "Buyer ends with", format.Currency(result.BuyerNetWorth))
		fmt.Printf("%-26s %s\n", "Renter ends with", format.Currency(result.RenterNetWorth))
		fmt.Printf("%-26s %s\n", "Return on deposit", maybePercent(result.ROI))
		fmt.Printf("%-26s %s\n", "Internal rate of return", maybePercent(result.IRR))
		fmt.Printf("%-26s %s\n", "Verdict", verdict(result.Differential))
		for _, warning := range result.Warnings {
			fmt.Printf("%-26s %s\n", "Warning", warning)
		}
		if i < len(results)-1 {
			fmt.Printf("\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format, one row per scenario.
func CsvFormat(results []engine.Result) {
	fmt.Printf(`"scenario","mode","interestRate","appreciation","monthlyPayment","totalInterest","monthsSimulated",` +
		`"stampDuty","transactionFees","renovationCosts","maintenance","saleValue","saleFees","remainingPrincipal",` +
		`"grossProceeds","totalRentPaid","buyingUnrecoverable","rentUnrecoverable","netCashAfterBuying",` +
		`"buyerNetWorth","renterNetWorth","roi","irr","differential"`)
	fmt.Printf("\n")
	for _, result := range results {
		fmt.Printf(`"%s","%s","%.2f","%.2f","%.2f","%.2f","%d"`,
			result.Scenario, result.Mode, result.AdjustedInterestRate, result.AdjustedAppreciation,
			result.MonthlyPayment, result.TotalInterest, result.MonthsSimulated)
		fmt.Printf(`,"%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f"`,
			result.Costs.StampDuty, result.Costs.TransactionFees, result.Costs.RenovationCosts,
			result.Costs.Maintenance, result.Sale.SaleValue, result.Sale.SaleFees, result.Sale.RemainingPrincipal)
		fmt.Printf(`,"%.2f","%.2f","%.2f","%s","%.2f"`,
			result.Sale.GrossProceeds, result.TotalRentPaid, result.BuyingUnrecoverable,
			csvOptional(result.RentUnrecoverable), result.NetCashAfterBuying)
		fmt.Printf(`,"%.2f","%.2f","%s","%s","%.2f"`,
			result.BuyerNetWorth, result.RenterNetWorth,
			csvOptional(result.ROI), csvOptional(result.IRR), result.Differential)
		fmt.Printf("\n")
	}
}

// PrettySchedule outputs a month-by-month amortization table.
func PrettySchedule(rows []mortgage.Row) {
	fmt.Printf("Month | Payment       | Interest      | Principal     | Remaining\n")
	fmt.Printf("_____ | _____________ | _____________ | _____________ | _____________\n")
	for _, row := range rows {
		fmt.Printf("%5d | %13s | %13s | %13s | %13s\n",
			row.Month,
			format.NumericCurrency(row.Payment),
			format.NumericCurrency(row.Interest),
			format.NumericCurrency(row.Principal),
			format.NumericCurrency(row.Remaining))
	}
}

// CsvSchedule outputs the amortization table in comma-separated value format.
func CsvSchedule(rows []mortgage.Row) {
	fmt.Printf(`"month","payment","interest","principal","remaining"`)
	fmt.Printf("\n")
	for _, row := range rows {
		fmt.Printf(`"%d","%.2f","%.2f","%.2f","%.2f"`,
			row.Month, row.Payment, row.Interest, row.Principal, row.Remaining)
		fmt.Printf("\n")
	}
}

// PrettyHistory outputs the historical London price periods for context
// alongside whatever appreciation assumption a run used.
func PrettyHistory(periods []history.Period) {
	fmt.Printf("Period      | Average price         | Annualized\n")
	fmt.Printf("______      | _____________________ | __________\n")
	for _, period := range periods {
		fmt.Printf("%d - %d | %9s - %9s | %s\n",
			period.StartYear, period.EndYear,
			format.Currency(period.StartPrice), format.Currency(period.EndPrice),
			format.Percent(period.AnnualizedReturnPct))
	}
}

// CsvHistory outputs the historical London price periods in comma-separated
// value format.
func CsvHistory(periods []history.Period) {
	fmt.Printf(`"startYear","endYear","startPrice","endPrice","annualizedReturnPct"`)
	fmt.Printf("\n")
	for _, period := range periods {
		fmt.Printf(`"%d","%d","%.2f","%.2f","%.2f"`,
			period.StartYear, period.EndYear, period.StartPrice, period.EndPrice, period.AnnualizedReturnPct)
		fmt.Printf("\n")
	}
}

// PrettyBreakeven outputs the break-even appreciation solve.
func PrettyBreakeven(solution breakeven.Solution) {
	if !solution.Converged {
		fmt.Printf("%-26s no level point within bounds (closest %s at %s appreciation)\n",
			"Break-even appreciation", format.Currency(solution.Differential), format.Percent(solution.Rate))
		return
	}
	fmt.Printf("%-26s %s (settled after %d iterations)\n",
		"Break-even appreciation", format.Percent(solution.Rate), solution.Iterations)
}

func verdict(differential float64) string {
	switch {
	case differential > 0:
		return fmt.Sprintf("buying comes out ahead by %s", format.Currency(differential))
	case differential < 0:
		return fmt.Sprintf("renting comes out ahead by %s", format.Currency(-differential))
	}
	return "buying and renting come out level"
}

func maybeCurrency(value *float64) string {
	if value == nil {
		return "n/a"
	}
	return format.Currency(*value)
}

func maybePercent(value *float64) string {
	if value == nil {
		return "n/a"
	}
	return format.Percent(*value)
}

func csvOptional(value *float64) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *value)
}

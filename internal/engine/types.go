// Package engine orchestrates the buy-versus-rent comparison: scenario
// adjustment, amortization, cost aggregation, sale proceeds, rent projection,
// alternative investment, and the return metrics derived from them. The
// engine reads no ambient state; one Input bundle produces one Result.
package engine

import (
	"fmt"
	"strings"

	"github.com/sarandavies/london-house-buying/pkg/scenario"
)

// Mode selects how the renting side of the comparison is valued.
type Mode string

const (
	// ModeSimple nets the buyer's cash position against cumulative rent paid.
	ModeSimple Mode = "simple"

	// ModeInvestedNetWorth compares end net worth, with the renter keeping
	// the deposit invested and investing the monthly payment-rent gap.
	ModeInvestedNetWorth Mode = "investedNetWorth"
)

// ParseMode converts a configuration or API string into a Mode. Matching is
// case-insensitive; an empty value selects the invested-net-worth model.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "investednetworth":
		return ModeInvestedNetWorth, nil
	case "simple":
		return ModeSimple, nil
	}
	return ModeInvestedNetWorth, fmt.Errorf("unknown comparison mode %q, expected simple or investedNetWorth", value)
}

// LoanParameters describe the purchase and its financing.
type LoanParameters struct {
	HousePrice         float64 `json:"housePrice" yaml:"housePrice"`
	Deposit            float64 `json:"deposit" yaml:"deposit"`
	AnnualInterestRate float64 `json:"annualInterestRate" yaml:"annualInterestRate"`
	TermYears          int     `json:"termYears" yaml:"termYears"`
}

// LoanAmount is the financed portion of the purchase.
func (p LoanParameters) LoanAmount() float64 {
	return p.HousePrice - p.Deposit
}

// RentParameters describe the tenancy being compared against. The yields
// feed the unrecoverable-rent figure; they are percentages of property value.
type RentParameters struct {
	MonthlyRent      float64 `json:"monthlyRent" yaml:"monthlyRent"`
	AnnualGrowthRate float64 `json:"annualGrowthRate" yaml:"annualGrowthRate"`
	GrossYield       float64 `json:"grossYield" yaml:"grossYield"`
	NetYield         float64 `json:"netYield" yaml:"netYield"`
}

// FeeParameters describe one-off and recurring purchase costs. Rates are
// percentages; RenovationUplift scales the eventual sale value.
type FeeParameters struct {
	TransactionFees       float64 `json:"transactionFees" yaml:"transactionFees"`
	RemortgageCost        float64 `json:"remortgageCost" yaml:"remortgageCost"`
	RenovationCosts       float64 `json:"renovationCosts" yaml:"renovationCosts"`
	RenovationUplift      float64 `json:"renovationUplift" yaml:"renovationUplift"`
	AnnualMaintenanceRate float64 `json:"annualMaintenanceRate" yaml:"annualMaintenanceRate"`
	SaleFeeRate           float64 `json:"saleFeeRate" yaml:"saleFeeRate"`
}

// MarketParameters describe the market assumptions over the holding period.
type MarketParameters struct {
	SaleYear          int     `json:"saleYear" yaml:"saleYear"`
	AppreciationRate  float64 `json:"appreciationRate" yaml:"appreciationRate"`
	AltInvestmentRate float64 `json:"altInvestmentRate" yaml:"altInvestmentRate"`
}

// Input is the immutable parameter bundle for one evaluation. The scenario
// selection is fixed before the engine runs; a random draw happens at the
// caller, never inside the computation.
type Input struct {
	Property LoanParameters     `json:"property" yaml:"property"`
	Rent     RentParameters     `json:"rent" yaml:"rent"`
	Fees     FeeParameters      `json:"fees" yaml:"fees"`
	Market   MarketParameters   `json:"market" yaml:"market"`
	Scenario scenario.Selection `json:"scenario" yaml:"scenario"`
	Mode     Mode               `json:"comparisonMode" yaml:"comparisonMode"`
}

// CostBundle aggregates the buying-side cost lines. TransactionFees folds in
// one remortgage fee per renewal interval; RenovationCosts folds in any
// scenario-injected one-off cost.
type CostBundle struct {
	StampDuty       float64 `json:"stampDuty"`
	TransactionFees float64 `json:"transactionFees"`
	RenovationCosts float64 `json:"renovationCosts"`
	Maintenance     float64 `json:"maintenance"`
	RemortgageCount int     `json:"remortgageCount"`
}

// Total sums every cost line.
func (c CostBundle) Total() float64 {
	return c.StampDuty + c.TransactionFees + c.RenovationCosts + c.Maintenance
}

// SaleOutcome captures the disposal side of the purchase. GrossProceeds is
// what the seller banks after sale fees and mortgage redemption.
type SaleOutcome struct {
	SaleValue          float64 `json:"saleValue"`
	SaleFees           float64 `json:"saleFees"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
	GrossProceeds      float64 `json:"grossProceeds"`
}

// Result is the flat outcome bundle consumed by presentation layers.
// Currency fields are decimal amounts, rates are percentages. ROI and IRR
// are nil when the computation is degenerate for the given inputs rather
// than failing the whole evaluation.
type Result struct {
	Scenario             scenario.Selection `json:"scenario"`
	Mode                 Mode               `json:"comparisonMode"`
	AdjustedInterestRate float64            `json:"adjustedInterestRate"`
	AdjustedAppreciation float64            `json:"adjustedAppreciation"`
	LoanAmount           float64            `json:"loanAmount"`
	MonthlyPayment       float64            `json:"monthlyPayment"`
	TotalInterest        float64            `json:"totalInterest"`
	MonthsSimulated      int                `json:"monthsSimulated"`
	Costs                CostBundle         `json:"costs"`
	Sale                 SaleOutcome        `json:"sale"`
	TotalRentPaid        float64            `json:"totalRentPaid"`
	FinalMonthlyRent     float64            `json:"finalMonthlyRent"`
	AverageMonthlyRent   float64            `json:"averageMonthlyRent"`
	BuyingUnrecoverable  float64            `json:"buyingUnrecoverable"`
	RentUnrecoverable    *float64           `json:"rentUnrecoverable"`
	NetCashAfterBuying   float64            `json:"netCashAfterBuying"`
	BuyerNetWorth        float64            `json:"buyerNetWorth"`
	RenterNetWorth       float64            `json:"renterNetWorth"`
	RenterDepositGrowth  float64            `json:"renterDepositGrowth"`
	RenterCashflowGrowth float64            `json:"renterCashflowBalance"`
	ROI                  *float64           `json:"roi"`
	IRR                  *float64           `json:"irr"`
	Differential         float64            `json:"differential"`
	Warnings             []string           `json:"warnings,omitempty"`
}

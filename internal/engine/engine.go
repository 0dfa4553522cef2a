package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sarandavies/london-house-buying/pkg/constants"
	"github.com/sarandavies/london-house-buying/pkg/investment"
	"github.com/sarandavies/london-house-buying/pkg/irr"
	"github.com/sarandavies/london-house-buying/pkg/mathutil"
	"github.com/sarandavies/london-house-buying/pkg/mortgage"
	"github.com/sarandavies/london-house-buying/pkg/rent"
	"github.com/sarandavies/london-house-buying/pkg/scenario"
	"github.com/sarandavies/london-house-buying/pkg/stampduty"
	"github.com/sarandavies/london-house-buying/pkg/validation"
)

// Evaluate runs the full comparison for one input bundle. Identical inputs
// always produce identical results; every stochastic choice (the scenario
// draw) happens before this function is called.
func Evaluate(logger *zap.Logger, in Input) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := validation.CheckLoanParameters(in.Property.HousePrice, in.Property.Deposit, in.Property.TermYears); err != nil {
		return Result{}, fmt.Errorf("validate purchase parameters: %w", err)
	}
	if err := validation.CheckHorizon(in.Market.SaleYear); err != nil {
		return Result{}, fmt.Errorf("validate holding period: %w", err)
	}

	adjustments := scenario.Adjust(in.Scenario)
	adjustedRate := scenario.AdjustedRate(in.Scenario, in.Property.AnnualInterestRate)
	adjustedAppreciation := scenario.AdjustedAppreciation(in.Scenario, in.Market.AppreciationRate)
	logger.Debug("applied scenario adjustments",
		zap.String("op", "engine.Evaluate"),
		zap.String("scenario", string(in.Scenario)),
		zap.Float64("adjustedInterestRate", adjustedRate),
		zap.Float64("adjustedAppreciation", adjustedAppreciation),
	)

	loanAmount := in.Property.LoanAmount()
	payment := mortgage.MonthlyPayment(loanAmount, adjustedRate, in.Property.TermYears)
	summary := mortgage.Simulate(loanAmount, adjustedRate, payment, in.Market.SaleYear*constants.MonthsPerYear)
	logger.Debug("simulated amortization",
		zap.String("op", "engine.Evaluate"),
		zap.Float64("loanAmount", loanAmount),
		zap.Float64("monthlyPayment", payment),
		zap.Int("monthsSimulated", summary.MonthsSimulated),
		zap.Float64("totalInterest", summary.TotalInterest),
		zap.Float64("remainingPrincipal", summary.RemainingPrincipal),
	)

	costs := buildCosts(in, adjustments)
	sale := buildSale(in, adjustedAppreciation, summary.RemainingPrincipal)
	logger.Debug("priced disposal",
		zap.String("op", "engine.Evaluate"),
		zap.Float64("saleValue", sale.SaleValue),
		zap.Float64("grossProceeds", sale.GrossProceeds),
		zap.Float64("totalCosts", costs.Total()),
	)

	projection := rent.Project(in.Rent.MonthlyRent, in.Rent.AnnualGrowthRate, in.Market.SaleYear)
	renterDeposit := investment.CompoundLumpSum(in.Property.Deposit, in.Market.AltInvestmentRate, in.Market.SaleYear)
	renterCashflow := investment.MonthlyDifferential(payment, in.Rent.MonthlyRent, in.Rent.AnnualGrowthRate, in.Market.AltInvestmentRate, in.Market.SaleYear)
	renterNetWorth := renterDeposit + renterCashflow

	// Every pound the buyer hands to the lender retires either interest or
	// principal, so cash outlay on the mortgage follows from the summary.
	paymentsMade := summary.TotalInterest + (loanAmount - summary.RemainingPrincipal)
	netCash := sale.GrossProceeds - in.Property.Deposit - costs.Total() - paymentsMade
	buyerNetWorth := sale.GrossProceeds - costs.Total()

	result := Result{
		Scenario:             in.Scenario,
		Mode:                 in.Mode,
		AdjustedInterestRate: adjustedRate,
		AdjustedAppreciation: adjustedAppreciation,
		LoanAmount:           loanAmount,
		MonthlyPayment:       payment,
		TotalInterest:        summary.TotalInterest,
		MonthsSimulated:      summary.MonthsSimulated,
		Costs:                costs,
		Sale:                 sale,
		TotalRentPaid:        projection.TotalPaid,
		FinalMonthlyRent:     projection.FinalMonthlyRent,
		AverageMonthlyRent:   projection.AverageMonthly(in.Market.SaleYear),
		BuyingUnrecoverable:  summary.TotalInterest + costs.Total(),
		NetCashAfterBuying:   netCash,
		BuyerNetWorth:        buyerNetWorth,
		RenterNetWorth:       renterNetWorth,
		RenterDepositGrowth:  renterDeposit,
		RenterCashflowGrowth: renterCashflow,
		Warnings: validation.Warn(validation.RunParameters{
			HousePrice:         in.Property.HousePrice,
			Deposit:            in.Property.Deposit,
			AnnualInterestRate: adjustedRate,
			MonthlyRent:        in.Rent.MonthlyRent,
			TermYears:          in.Property.TermYears,
			SaleYear:           in.Market.SaleYear,
			InvestedNetWorth:   in.Mode == ModeInvestedNetWorth,
		}),
	}

	if in.Rent.GrossYield > 0 {
		unrecoverable := projection.TotalPaid * (1 - in.Rent.NetYield/in.Rent.GrossYield)
		result.RentUnrecoverable = &unrecoverable
	}
	if in.Property.Deposit > 0 {
		roi := mathutil.ToPercentage((buyerNetWorth - in.Property.Deposit) / in.Property.Deposit)
		result.ROI = &roi
	}
	result.IRR = solveIRR(logger, in, costs, sale)

	switch in.Mode {
	case ModeSimple:
		result.Differential = netCash + projection.TotalPaid
	default:
		result.Differential = buyerNetWorth - renterNetWorth
	}
	logger.Debug("evaluated comparison",
		zap.String("op", "engine.Evaluate"),
		zap.String("mode", string(in.Mode)),
		zap.Float64("differential", result.Differential),
	)

	return result, nil
}

// buildCosts aggregates the one-off and recurring buying costs. Remortgage
// fees recur once per renewal interval after the initial fix, so a holding
// period inside the first interval incurs none.
func buildCosts(in Input, adjustments scenario.AdjustmentSet) CostBundle {
	remortgageCount := (in.Market.SaleYear - 1) / constants.RemortgageIntervalYears
	if remortgageCount < 0 {
		remortgageCount = 0
	}
	maintenance := mathutil.ApplyPercentage(in.Property.HousePrice, in.Fees.AnnualMaintenanceRate) * float64(in.Market.SaleYear)
	return CostBundle{
		StampDuty:       stampduty.Calculate(in.Property.HousePrice),
		TransactionFees: in.Fees.TransactionFees + float64(remortgageCount)*in.Fees.RemortgageCost,
		RenovationCosts: in.Fees.RenovationCosts + adjustments.ExtraOneOffCost,
		Maintenance:     maintenance,
		RemortgageCount: remortgageCount,
	}
}

// buildSale grows the property value, applies any renovation uplift, then
// nets off sale fees and the outstanding mortgage balance.
func buildSale(in Input, adjustedAppreciation, remainingPrincipal float64) SaleOutcome {
	saleValue := mathutil.CompoundAnnually(in.Property.HousePrice, adjustedAppreciation, in.Market.SaleYear)
	saleValue *= 1 + in.Fees.RenovationUplift/constants.PercentageMultiplier
	saleFees := mathutil.ApplyPercentage(saleValue, in.Fees.SaleFeeRate)
	return SaleOutcome{
		SaleValue:          saleValue,
		SaleFees:           saleFees,
		RemainingPrincipal: remainingPrincipal,
		GrossProceeds:      saleValue - saleFees - remainingPrincipal,
	}
}

// solveIRR prices the levered purchase as a cash flow series: the deposit
// plus one-off fees out at completion, nothing in between, and the gross
// proceeds back at sale. Recurring maintenance is not part of the initial
// outlay. A nil return means the metric is undefined for these inputs, not
// that the evaluation failed.
func solveIRR(logger *zap.Logger, in Input, costs CostBundle, sale SaleOutcome) *float64 {
	if in.Property.Deposit <= 0 || in.Market.SaleYear < 1 {
		return nil
	}
	outlay := in.Property.Deposit + costs.StampDuty + costs.TransactionFees + costs.RenovationCosts
	flows := irr.Cashflows(outlay, sale.GrossProceeds, in.Market.SaleYear)
	rate, ok := irr.Solve(flows)
	if !ok {
		logger.Debug("internal rate of return undefined for cash flow series",
			zap.String("op", "engine.solveIRR"),
			zap.Float64("outlay", outlay),
			zap.Float64("proceeds", sale.GrossProceeds),
			zap.Int("periods", in.Market.SaleYear),
		)
		return nil
	}
	percent := mathutil.ToPercentage(rate)
	return &percent
}

// Package irr solves for the internal rate of return of a cash-flow
// sequence: the per-period discount rate at which the sequence's net present
// value is zero.
package irr

import (
	"math"

	"github.com/sarandavies/london-house-buying/pkg/constants"
)

// bracketFloor is just above the -100% pole of the NPV function; rates at or
// below it are not meaningful discount rates.
const bracketFloor = -0.9999

// Cashflows builds the canonical sequence for a property hold: one initial
// outlay, zero interior flows, one terminal inflow after the given number of
// periods.
func Cashflows(outlay, proceeds float64, periods int) []float64 {
	if periods < 1 {
		periods = 1
	}
	flows := make([]float64, periods+1)
	flows[0] = -outlay
	flows[periods] = proceeds
	return flows
}

// NPV returns the net present value of flows discounted at rate per period.
// flows[0] is at time zero and is not discounted.
func NPV(rate float64, flows []float64) float64 {
	npv := 0.00
	for period, flow := range flows {
		npv += flow / math.Pow(1+rate, float64(period))
	}
	return npv
}

// Solve returns the rate at which the flows' net present value is zero. The
// second return reports whether a rate was found; it is false rather than an
// error when the sequence has no sign change, when no root lies in the
// bracketed domain, or when bisection fails to converge within its budget.
func Solve(flows []float64) (float64, bool) {
	if len(flows) < 2 {
		return 0, false
	}

	hasOutflow, hasInflow := false, false
	for _, flow := range flows {
		if flow < 0 {
			hasOutflow = true
		}
		if flow > 0 {
			hasInflow = true
		}
	}
	if !hasOutflow || !hasInflow {
		return 0, false
	}

	lower := bracketFloor
	upper := 1.00
	npvLower := NPV(lower, flows)

	// Widen the upper bound until the NPV changes sign across the bracket.
	expansions := 0
	for npvLower*NPV(upper, flows) > 0 {
		expansions++
		if expansions > constants.MaxSolverIterations {
			return 0, false
		}
		upper *= 2
	}

	for iteration := 0; iteration < constants.MaxSolverIterations*2; iteration++ {
		mid := lower + (upper-lower)/2
		npvMid := NPV(mid, flows)
		if math.Abs(npvMid) < constants.SolverTolerance || (upper-lower)/2 < constants.SolverTolerance {
			return mid, true
		}
		if npvLower*npvMid < 0 {
			upper = mid
		} else {
			lower = mid
			npvLower = npvMid
		}
	}

	return 0, false
}

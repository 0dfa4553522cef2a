// Package breakeven finds the annual appreciation rate at which buying and
// renting come out level, holding every other input fixed.
package breakeven

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/sarandavies/london-house-buying/internal/engine"
	"github.com/sarandavies/london-house-buying/pkg/constants"
	"github.com/sarandavies/london-house-buying/pkg/mathutil"
	"github.com/sarandavies/london-house-buying/pkg/validation"
)

// Solution summarizes one break-even search. Rate is the appreciation rate,
// in percent per year, at which the buy-vs-rent differential crosses zero.
// When the differential never changes sign inside the bounds, Converged is
// false and Rate holds the bound whose differential sits closest to zero.
type Solution struct {
	Rate         float64 `json:"rate"`
	Differential float64 `json:"differential"`
	Iterations   int     `json:"iterations"`
	Converged    bool    `json:"converged"`
}

// Solve bisects the appreciation rate between lower and upper until the
// differential is within a penny of zero or the iteration budget runs out.
// The input's own appreciation rate is ignored; everything else, including
// the scenario's appreciation delta, applies to every probe.
func Solve(logger *zap.Logger, in engine.Input, lower, upper float64) (Solution, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if upper <= lower {
		return Solution{}, fmt.Errorf("%w: break-even upper bound %.2f must exceed lower bound %.2f",
			validation.ErrInvalidInput, upper, lower)
	}

	lowerDiff, err := probe(logger, in, lower)
	if err != nil {
		return Solution{}, err
	}
	upperDiff, err := probe(logger, in, upper)
	if err != nil {
		return Solution{}, err
	}

	if lowerDiff*upperDiff > 0 {
		// No crossing inside the bounds: report the closer endpoint so the
		// caller still sees how far off level the range is.
		solution := Solution{Rate: upper, Differential: upperDiff}
		if math.Abs(lowerDiff) < math.Abs(upperDiff) {
			solution = Solution{Rate: lower, Differential: lowerDiff}
		}
		logger.Debug("break-even differential does not cross zero within bounds",
			zap.String("op", "breakeven.Solve"),
			zap.Float64("lowerDifferential", lowerDiff),
			zap.Float64("upperDifferential", upperDiff),
		)
		return solution, nil
	}

	solution := Solution{Rate: lower, Differential: lowerDiff}
	for solution.Iterations < constants.MaxSolverIterations && math.Abs(upper-lower) > constants.SolverTolerance {
		mid := lower + (upper-lower)/2
		midDiff, err := probe(logger, in, mid)
		if err != nil {
			return Solution{}, err
		}
		solution.Iterations++
		solution.Rate = mid
		solution.Differential = midDiff

		if mathutil.IsZero(midDiff) {
			break
		}
		if lowerDiff*midDiff < 0 {
			upper = mid
		} else {
			lower = mid
			lowerDiff = midDiff
		}
	}
	solution.Converged = true

	logger.Debug("solved break-even appreciation",
		zap.String("op", "breakeven.Solve"),
		zap.Float64("rate", solution.Rate),
		zap.Float64("differential", solution.Differential),
		zap.Int("iterations", solution.Iterations),
	)
	return solution, nil
}

func probe(logger *zap.Logger, in engine.Input, appreciationRate float64) (float64, error) {
	in.Market.AppreciationRate = appreciationRate
	result, err := engine.Evaluate(logger, in)
	if err != nil {
		return 0, fmt.Errorf("break-even probe at %.4f%%: %w", appreciationRate, err)
	}
	return result.Differential, nil
}

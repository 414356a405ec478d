package bonds

import (
	"fmt"

	"trinity-backtest/internal/model"
	"trinity-backtest/internal/numeric"
)

// ReturnPlaces is the precision simulated total returns are rounded to.
const ReturnPlaces = 4

// SimulateReturns simulates the annual total returns of a bond fund holding a
// rolling ladder of ten bonds with 1-10 years until maturity.
//
// Each year the bond with one year left is sold, and all coupons plus the
// matured principal buy a new 10-year bond at the current long rate. The fund
// is valued by summing the present value of every bond, interpolating the 2-9
// year rates linearly between the 1-year and 10-year rates.
//
// The first pair bootstraps the ladder, so the result has one element fewer
// than rates. Element k is the return from year k to year k+1, rounded to
// ReturnPlaces. An empty input fails with model.ErrInsufficientData.
func SimulateReturns(rates []model.RatePair) ([]float64, error) {
	if len(rates) == 0 {
		return nil, fmt.Errorf("simulate bond returns: no rates: %w", model.ErrInsufficientData)
	}

	first := rates[0]
	ladder := NewLadder(first.Long)
	nav := ladder.NAV(first.Short, first.Long)

	returns := make([]float64, 0, len(rates)-1)
	for _, r := range rates[1:] {
		ladder.Step(r.Long)
		next := ladder.NAV(r.Short, r.Long)
		returns = append(returns, numeric.Round(next/nav-1, ReturnPlaces))
		nav = next
	}
	return returns, nil
}

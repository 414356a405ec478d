package bonds

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trinity-backtest/internal/model"
)

func TestPV_ZeroRate(t *testing.T) {
	for n := 1; n <= 30; n++ {
		assert.Equal(t, -(100+2.5*float64(n)), PV(0, n, 2.5, 100), "n=%d", n)
	}
}

func TestPV_ParBondIsWorthPar(t *testing.T) {
	for _, rate := range []float64{0.01, 0.05, 0.1375} {
		for n := 1; n <= 10; n++ {
			assert.InDelta(t, -250.0, PV(rate, n, rate*250, 250), 1e-9, "rate=%v n=%d", rate, n)
		}
	}
}

func TestPV_KnownValues(t *testing.T) {
	// Zero coupon: 110 in one year at 10% is worth 100 today.
	assert.InDelta(t, -100.0, PV(0.10, 1, 0, 110), 1e-12)
	// Annuity of 10 for 2 years at 10% plus nothing at the end.
	assert.InDelta(t, -(10/1.1 + 10/1.21), PV(0.10, 2, 10, 0), 1e-12)
}

func TestInterpolatedRate(t *testing.T) {
	assert.Equal(t, 0.02, InterpolatedRate(0.02, 0.11, 1))
	assert.Equal(t, 0.11, InterpolatedRate(0.02, 0.11, 10))
	assert.InDelta(t, 0.05, InterpolatedRate(0.02, 0.11, 4), 1e-15)
	// Inverted curve.
	assert.InDelta(t, 0.08, InterpolatedRate(0.09, 0.0, 2), 1e-15)

	for m := 1; m <= 10; m++ {
		assert.Equal(t, 0.0437, InterpolatedRate(0.0437, 0.0437, m), "maturity=%d", m)
	}
}

func TestNewLadder(t *testing.T) {
	l := NewLadder(0.05)

	require.Equal(t, Rungs, l.Len())
	for n, b := range l.Bonds() {
		assert.Equal(t, math.Pow(1.05, float64(n)), b.Par, "position %d", n)
		assert.Equal(t, 0.05, b.Coupon, "position %d", n)
	}
}

func TestLadderStep_RollsOldestIntoNewest(t *testing.T) {
	l := NewLadder(0.04)
	before := l.Bonds()

	l.Step(0.07)
	after := l.Bonds()

	require.Len(t, after, Rungs)
	assert.Equal(t, before[1:], after[:Rungs-1], "remaining bonds shift one position closer to maturity")

	capital := before[0].Par
	for _, b := range before {
		capital += b.Coupon * b.Par
	}
	assert.InDelta(t, capital, after[Rungs-1].Par, 1e-12)
	assert.Equal(t, 0.07, after[Rungs-1].Coupon)
}

func TestLadderStep_SizeInvariant(t *testing.T) {
	l := NewLadder(0.03)
	for i := 0; i < 37; i++ {
		l.Step(0.03 + float64(i%5)/100)
		assert.Equal(t, Rungs, l.Len())
		assert.Len(t, l.Bonds(), Rungs)
	}
}

func TestLadderStep_FlatRateCompounds(t *testing.T) {
	// With a flat curve, coupons plus matured principal equal (1+r)^10, so every
	// step scales the whole ladder by (1+r).
	l := NewLadder(0.05)
	l.Step(0.05)
	for n, b := range l.Bonds() {
		assert.InDelta(t, math.Pow(1.05, float64(n+1)), b.Par, 1e-12, "position %d", n)
	}
}

func TestNAV_FlatCurveIsSumOfPar(t *testing.T) {
	l := NewLadder(0.06)
	sum := 0.0
	for _, b := range l.Bonds() {
		sum += b.Par
	}
	assert.InDelta(t, sum, l.NAV(0.06, 0.06), 1e-9)
}

func TestNAV_FallsWhenRatesRise(t *testing.T) {
	l := NewLadder(0.05)
	assert.Less(t, l.NAV(0.07, 0.07), l.NAV(0.05, 0.05))
	assert.Greater(t, l.NAV(0.03, 0.03), l.NAV(0.05, 0.05))
}

func flatRates(rate float64, years int) []model.RatePair {
	out := make([]model.RatePair, years)
	for i := range out {
		out[i] = model.RatePair{Short: rate, Long: rate}
	}
	return out
}

func TestSimulateReturns_FlatCurve(t *testing.T) {
	got, err := SimulateReturns(flatRates(0.05, 12))
	require.NoError(t, err)
	require.Len(t, got, 11)
	for i, r := range got {
		assert.Equal(t, 0.05, r, "year %d", i)
	}
}

func TestSimulateReturns_ZeroRates(t *testing.T) {
	got, err := SimulateReturns(flatRates(0, 5))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0}, got)
}

func TestSimulateReturns_SinglePair(t *testing.T) {
	got, err := SimulateReturns(flatRates(0.05, 1))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSimulateReturns_Empty(t *testing.T) {
	_, err := SimulateReturns(nil)
	assert.ErrorIs(t, err, model.ErrInsufficientData)
}

func TestSimulateReturns_RateShock(t *testing.T) {
	rates := []model.RatePair{
		{Short: 0.05, Long: 0.05},
		{Short: 0.07, Long: 0.08},
		{Short: 0.03, Long: 0.04},
	}
	got, err := SimulateReturns(rates)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Rising rates mark existing bonds down, falling rates mark them up.
	assert.Less(t, got[0], 0.05)
	assert.Greater(t, got[1], 0.08)
	for _, r := range got {
		assert.Equal(t, math.Round(r*1e4)/1e4, r, "returns are rounded to 4 places")
	}
}

func TestSimulateReturns_Deterministic(t *testing.T) {
	rates := []model.RatePair{
		{Short: 0.0431, Long: 0.0386}, {Short: 0.0298, Long: 0.0412},
		{Short: 0.0601, Long: 0.0555}, {Short: 0.0150, Long: 0.0295},
		{Short: 0.0822, Long: 0.0710}, {Short: 0.0045, Long: 0.0230},
	}
	a, err := SimulateReturns(rates)
	require.NoError(t, err)
	b, err := SimulateReturns(rates)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPortfolio_DefaultsBalance(t *testing.T) {
	p, err := NewPortfolio(PortfolioParams{StockAllocation: 0.75, WithdrawalRate: 0.04})
	require.NoError(t, err)
	assert.Equal(t, DefaultInitialBalance, p.Params.InitialBalance)
	assert.Equal(t, DefaultInitialBalance, p.State.Balance)
}

func TestNewPortfolio_Validation(t *testing.T) {
	cases := []PortfolioParams{
		{InitialBalance: -1, StockAllocation: 0.5},
		{StockAllocation: 1.5},
		{StockAllocation: -0.1},
		{StockAllocation: 0.5, WithdrawalRate: -0.01},
	}
	for _, pp := range cases {
		_, err := NewPortfolio(pp)
		assert.Error(t, err, "%+v", pp)
	}
}

func TestApplyYear(t *testing.T) {
	p, err := NewPortfolio(PortfolioParams{InitialBalance: 1000, StockAllocation: 0.75})
	require.NoError(t, err)

	res := p.ApplyYear(AnnualReturns{Stocks: 0.10, Bonds: -0.02}, 40)

	assert.Equal(t, 1000.0, res.BalanceStart)
	assert.InDelta(t, 825.0, res.StockValue, 1e-9)
	assert.InDelta(t, 245.0, res.BondValue, 1e-9)
	assert.InDelta(t, 1030.0, res.BalanceEnd, 1e-9)
	assert.Equal(t, res.BalanceEnd, p.State.Balance)
}

func TestOutcomeFromBalances(t *testing.T) {
	assert.Equal(t, OutcomeGrowing, OutcomeFromBalances(100, 100))
	assert.Equal(t, OutcomeShrinking, OutcomeFromBalances(100, 90))
	assert.Equal(t, OutcomeDepleted, OutcomeFromBalances(100, 0))
	assert.Equal(t, OutcomeDepleted, OutcomeFromBalances(100, -5))
}

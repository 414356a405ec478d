package model

import "errors"

// DefaultInitialBalance is the starting balance used for every replay.
// Success rates are independent of portfolio size, so any realistic value works.
const DefaultInitialBalance = 1_000_000.0

// PortfolioParams defines the allocation and withdrawal policy of a retiree.
// Units:
// - InitialBalance: currency units
// - StockAllocation: fraction 0..1 held in equities, rebalanced annually
// - WithdrawalRate: fraction of the initial balance withdrawn each year
type PortfolioParams struct {
	InitialBalance  float64
	StockAllocation float64
	WithdrawalRate  float64
}

// PortfolioState captures mutable state.
type PortfolioState struct {
	Balance float64
}

// Portfolio is a convenience wrapper bundling params + state.
type Portfolio struct {
	Params PortfolioParams
	State  PortfolioState
}

func NewPortfolio(params PortfolioParams) (*Portfolio, error) {
	if params.InitialBalance == 0 {
		params.InitialBalance = DefaultInitialBalance
	}
	p := &Portfolio{
		Params: params,
		State:  PortfolioState{Balance: params.InitialBalance},
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Portfolio) Validate() error {
	return p.Params.Validate()
}

func (pp PortfolioParams) Validate() error {
	if pp.InitialBalance <= 0 {
		return errors.New("InitialBalance must be > 0")
	}
	if pp.StockAllocation < 0 || pp.StockAllocation > 1 {
		return errors.New("StockAllocation must be in [0, 1]")
	}
	if pp.WithdrawalRate < 0 {
		return errors.New("WithdrawalRate must be >= 0")
	}
	return nil
}

// YearResult captures what happened to the portfolio in one year.
type YearResult struct {
	BalanceStart float64
	StockValue   float64 // equity sleeve at year end, before withdrawal
	BondValue    float64 // bond sleeve at year end, before withdrawal
	Withdrawal   float64
	BalanceEnd   float64
}

// ApplyYear grows the portfolio by one year of returns and then takes the
// withdrawal at year end. The portfolio is rebalanced to StockAllocation at the
// start of every year.
//
// A depleted balance keeps going negative; callers decide what that means.
func (p *Portfolio) ApplyYear(r AnnualReturns, withdrawal float64) YearResult {
	b := p.State.Balance
	res := YearResult{
		BalanceStart: b,
		StockValue:   b * p.Params.StockAllocation * (1 + r.Stocks),
		BondValue:    b * (1 - p.Params.StockAllocation) * (1 + r.Bonds),
		Withdrawal:   withdrawal,
	}
	res.BalanceEnd = res.StockValue + res.BondValue - withdrawal
	p.State.Balance = res.BalanceEnd
	return res
}

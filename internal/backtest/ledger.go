package backtest

import "trinity-backtest/internal/model"

// LedgerRow is one row of per-year output.
// This is the primary artifact for "what happened" in a replay.
type LedgerRow struct {
	Index int
	Year  int

	StockReturn float64
	BondReturn  float64

	BalanceStart float64
	StockValue   float64
	BondValue    float64
	Withdrawal   float64
	BalanceEnd   float64

	CumWithdrawn float64

	Outcome model.Outcome
}

type Result struct {
	Period       Period
	Ledger       []LedgerRow
	FinalBalance float64
	Survived     bool
}

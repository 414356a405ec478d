package models

// YearWindow restricts a request to [StartYear, EndYear]. Zero values fall
// back to the server's configured study window.
type YearWindow struct {
	StartYear int `json:"start_year,omitempty" form:"start_year"`
	EndYear   int `json:"end_year,omitempty" form:"end_year"`
}

// SuccessRateRequest represents the request body for POST /api/v1/success-rate
type SuccessRateRequest struct {
	// Pointers so that an explicit 0 (all bonds, no withdrawals) is accepted.
	StockAllocation *float64 `json:"stock_allocation" binding:"required"`
	Years           int      `json:"years" binding:"required"`
	WithdrawalRate  *float64 `json:"withdrawal_rate" binding:"required"`
	YearWindow
	Strategy      string `json:"strategy,omitempty"`
	IncludeLedger bool   `json:"include_ledger,omitempty"`
}

// PeriodsRequest represents the query of GET /api/v1/periods
type PeriodsRequest struct {
	YearWindow
	Duration int `form:"duration" binding:"required"`
}

// BondsRequest represents the request body for POST /api/v1/bonds/simulate
type BondsRequest struct {
	Rates []RatePair `json:"rates" binding:"required"`
	// Percent means rates are given in percent (5.0 == 5%).
	Percent bool `json:"percent,omitempty"`
}

type RatePair struct {
	Short float64 `json:"short"`
	Long  float64 `json:"long"`
}

// GridRequest represents the request body for POST /api/v1/grid.
// Empty lists use the configured grid.
type GridRequest struct {
	StockAllocations []float64 `json:"stock_allocations,omitempty"`
	Years            []int     `json:"years,omitempty"`
	WithdrawalRates  []float64 `json:"withdrawal_rates,omitempty"`
	YearWindow
	RankBy string `json:"rank_by,omitempty"` // "table" (default) or "success_rate"
}

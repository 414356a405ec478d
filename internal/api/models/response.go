package models

// SuccessRateResponse represents the result of replaying every period in a window
type SuccessRateResponse struct {
	ID              string         `json:"id"`
	SuccessRate     float64        `json:"success_rate"`
	StockAllocation float64        `json:"stock_allocation"`
	Years           int            `json:"years"`
	WithdrawalRate  float64        `json:"withdrawal_rate"`
	Strategy        string         `json:"strategy"`
	Window          YearWindow     `json:"window"`
	Periods         int            `json:"periods"`
	Successes       int            `json:"successes"`
	FailedPeriods   []string       `json:"failed_periods"`
	Ledgers         []PeriodLedger `json:"ledgers,omitempty"`
	Cached          bool           `json:"cached"`
}

// PeriodLedger is the year-by-year replay of one period
type PeriodLedger struct {
	Period       string      `json:"period"`
	Survived     bool        `json:"survived"`
	FinalBalance float64     `json:"final_balance"`
	Rows         []LedgerRow `json:"rows"`
}

// LedgerRow represents one year in a period ledger
type LedgerRow struct {
	Index        int     `json:"index"`
	Year         int     `json:"year"`
	StockReturn  float64 `json:"stock_return"`
	BondReturn   float64 `json:"bond_return"`
	BalanceStart float64 `json:"balance_start"`
	StockValue   float64 `json:"stock_value"`
	BondValue    float64 `json:"bond_value"`
	Withdrawal   float64 `json:"withdrawal"`
	BalanceEnd   float64 `json:"balance_end"`
	CumWithdrawn float64 `json:"cum_withdrawn"`
	Outcome      string  `json:"outcome"` // "GROWING", "SHRINKING", "DEPLETED"
}

// YearReturns is one year of real returns
type YearReturns struct {
	Year   int     `json:"year"`
	Stocks float64 `json:"stocks"`
	Bonds  float64 `json:"bonds"`
}

type ReturnsResponse struct {
	Window  YearWindow    `json:"window"`
	Returns []YearReturns `json:"returns"`
}

type Period struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type PeriodsResponse struct {
	Count   int      `json:"count"`
	Periods []Period `json:"periods"`
}

type BondsResponse struct {
	Returns []float64 `json:"returns"`
}

// GridCell is the success rate of one allocation/duration/rate combination
type GridCell struct {
	StockAllocation float64 `json:"stock_allocation"`
	Years           int     `json:"years"`
	WithdrawalRate  float64 `json:"withdrawal_rate"`
	Periods         int     `json:"periods"`
	Successes       int     `json:"successes"`
	SuccessRate     float64 `json:"success_rate"`
}

type GridResponse struct {
	ID      string     `json:"id"`
	Window  YearWindow `json:"window"`
	Count   int        `json:"count"`
	Results []GridCell `json:"results"`
}

// StrategyInfo represents information about a strategy
type StrategyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     bool   `json:"default"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

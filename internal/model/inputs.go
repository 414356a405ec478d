package model

// SimulationInputs represents a canonical "inputs to the system" object:
// the market history plus the portfolio being replayed against it.
type SimulationInputs struct {
	Records   []MarketRecord
	Portfolio PortfolioParams
	StartYear int
	EndYear   int
}

package handlers

import (
	"fmt"

	"trinity-backtest/internal/api/models"
	"trinity-backtest/internal/model"
)

// Dataset is the market history the API answers from. It is built once at
// startup and only read afterwards, so handlers share it without locking.
type Dataset struct {
	Returns model.Returns
	// Default window for requests that do not name one.
	StartYear int
	EndYear   int
}

// window fills unset bounds from the dataset defaults.
func (d *Dataset) window(w models.YearWindow) (models.YearWindow, error) {
	if w.StartYear == 0 {
		w.StartYear = d.StartYear
	}
	if w.EndYear == 0 {
		w.EndYear = d.EndYear
	}
	if w.EndYear < w.StartYear {
		return w, fmt.Errorf("end_year %d is before start_year %d", w.EndYear, w.StartYear)
	}
	return w, nil
}

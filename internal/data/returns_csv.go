package data

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"trinity-backtest/internal/model"
)

// WriteReturnsCSV writes real returns as year,stocks,bonds rows in year order.
func WriteReturnsCSV(path string, returns model.Returns) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return EncodeReturnsCSV(f, returns)
}

func EncodeReturnsCSV(out io.Writer, returns model.Returns) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"year", "stocks", "bonds"}); err != nil {
		return err
	}
	for _, y := range returns.Years() {
		r := returns[y]
		row := []string{
			strconv.Itoa(y),
			strconv.FormatFloat(r.Stocks, 'f', 6, 64),
			strconv.FormatFloat(r.Bonds, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

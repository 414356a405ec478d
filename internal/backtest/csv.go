package backtest

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return EncodeLedgerCSV(f, ledger)
}

func EncodeLedgerCSV(out io.Writer, ledger []LedgerRow) error {
	w := csv.NewWriter(out)

	header := []string{
		"index",
		"year",
		"stock_return",
		"bond_return",
		"balance_start",
		"stock_value",
		"bond_value",
		"withdrawal",
		"balance_end",
		"cum_withdrawn",
		"outcome",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Index),
			strconv.Itoa(r.Year),
			fmtRate(r.StockReturn),
			fmtRate(r.BondReturn),
			fmtMoney(r.BalanceStart),
			fmtMoney(r.StockValue),
			fmtMoney(r.BondValue),
			fmtMoney(r.Withdrawal),
			fmtMoney(r.BalanceEnd),
			fmtMoney(r.CumWithdrawn),
			string(r.Outcome),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtRate(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

func fmtMoney(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}

package numeric

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// exactDigits is enough decimals to tell a float64 from a rounding tie.
const exactDigits = 30

// Round rounds x to the given number of decimal places, half to even, based on
// the exact binary value of x. 0.125 is a true tie and becomes 0.12, while
// 2.675 is stored as 2.67499... and becomes 2.67.
func Round(x float64, places int32) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	d := decimal.RequireFromString(strconv.FormatFloat(x, 'f', exactDigits, 64))
	return d.RoundBank(places).InexactFloat64()
}

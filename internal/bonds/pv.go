package bonds

import "math"

// PV returns the present value of a fixed-coupon bond, using the spreadsheet
// sign convention (money received is negative):
//
//	rate == 0:  PV = -(fv + pmt*n)
//	otherwise:  g  = (1+rate)^n
//	            PV = -(fv + pmt*(g-1)/rate) / g
//
// rate is per period, n the number of periods, pmt the coupon paid each period
// and fv the principal repaid after the last period. rate must be > -1.
func PV(rate float64, n int, pmt, fv float64) float64 {
	if rate == 0 {
		return -(fv + pmt*float64(n))
	}
	g := math.Pow(1+rate, float64(n))
	return -(fv + pmt*(g-1)/rate) / g
}

package bonds

// InterpolatedRate approximates the current yield of a bond with the given
// maturity (1..10 years) by linear interpolation between the 1-year and
// 10-year rates. It returns short at maturity 1 and long at maturity 10.
func InterpolatedRate(short, long float64, maturity int) float64 {
	return short + (long-short)*float64(maturity-1)/9
}

package reconcile

import (
	"math"

	"github.com/invertedv/chfs"
)

// winsorLimit clips the debt ratio's lower and upper 1% tails.
const winsorLimit = 0.01

// smallConstant shifts the winsorized ratio before the log so zero ratios
// stay in the sample.
const smallConstant = 0.001

// Winsorize clips x to the winsorLimit quantiles of its finite,
// non-missing subset.  Missing and infinite entries take no part in the
// bounds and come back missing in the output.  The bounds are sample
// values, so winsorizing twice at the same limits is a no-op.
func Winsorize(x []float64) []float64 {
	finite := chfs.Finite(x)

	out := make([]float64, len(x))
	if len(finite) == 0 {
		for ind := range out {
			out[ind] = chfs.Missing()
		}

		return out
	}

	lo := chfs.EmpiricalQuantile(winsorLimit, finite)
	hi := chfs.EmpiricalQuantile(1-winsorLimit, finite)

	for ind, xv := range x {
		switch {
		case chfs.IsMissing(xv) || math.IsInf(xv, 0):
			out[ind] = chfs.Missing()
		case xv < lo:
			out[ind] = lo
		case xv > hi:
			out[ind] = hi
		default:
			out[ind] = xv
		}
	}

	return out
}

// LogAssets is ln(assets + 1), defined everywhere since total assets are
// floored at zero.
func LogAssets(assets []float64) []float64 {
	out := make([]float64, len(assets))
	for ind, a := range assets {
		out[ind] = math.Log(a + 1)
	}

	return out
}

// LogRatio is ln(ratio + smallConstant) where the argument is strictly
// positive; elsewhere missing rather than a domain error.
func LogRatio(ratio []float64) []float64 {
	out := make([]float64, len(ratio))
	for ind, r := range ratio {
		arg := r + smallConstant
		if chfs.IsMissing(r) || arg <= 0 {
			out[ind] = chfs.Missing()
			continue
		}

		out[ind] = math.Log(arg)
	}

	return out
}

// indicator maps x to 1 where test holds, 0 where it doesn't, and keeps
// missing as missing.
func indicator(x []float64, test func(float64) bool) []float64 {
	out := make([]float64, len(x))
	for ind, xv := range x {
		switch {
		case chfs.IsMissing(xv):
			out[ind] = chfs.Missing()
		case test(xv):
			out[ind] = 1
		default:
			out[ind] = 0
		}
	}

	return out
}

// MaleIndicator is 1 for sex code 1, 0 otherwise, missing preserved.
func MaleIndicator(sex []float64) []float64 {
	return indicator(sex, func(v float64) bool { return v == 1 })
}

// MarriedIndicator is 1 for the married codes (first marriage, remarried,
// cohabiting), 0 otherwise, missing preserved.
func MarriedIndicator(marital []float64) []float64 {
	return indicator(marital, func(v float64) bool { return v == 2 || v == 3 || v == 7 })
}

// BusinessIndicator is 1 when the household operates a business.
func BusinessIndicator(hasBusiness []float64) []float64 {
	return indicator(hasBusiness, func(v float64) bool { return v == 1 })
}

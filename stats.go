package chfs

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Finite drops missing and infinite entries from x.
func Finite(x []float64) []float64 {
	var out []float64
	for _, xv := range x {
		if IsMissing(xv) || math.IsInf(xv, 0) {
			continue
		}

		out = append(out, xv)
	}

	return out
}

// Quantile is the p-th quantile of x with linear interpolation.
func Quantile(p float64, x []float64) float64 {
	if sort.Float64sAreSorted(x) {
		return stat.Quantile(p, stat.LinInterp, x, nil)
	}

	vSort := make([]float64, len(x))
	copy(vSort, x)
	sort.Float64s(vSort)

	return stat.Quantile(p, stat.LinInterp, vSort, nil)
}

// EmpiricalQuantile is the p-th quantile of x as an actual sample value.
// Clipping at a sample value leaves the quantile itself unchanged, which
// makes winsorization with these bounds idempotent.
func EmpiricalQuantile(p float64, x []float64) float64 {
	vSort := make([]float64, len(x))
	copy(vSort, x)
	sort.Float64s(vSort)

	return stat.Quantile(p, stat.Empirical, vSort, nil)
}

func Mean(x []float64) float64 {
	return stat.Mean(x, nil)
}

func SDev(x []float64) float64 {
	return math.Sqrt(stat.Variance(x, nil))
}

// FillZero replaces missing entries with 0, returning a new slice.
func FillZero(x []float64) []float64 {
	out := make([]float64, len(x))
	for ind, xv := range x {
		out[ind] = xv
		if IsMissing(xv) {
			out[ind] = 0
		}
	}

	return out
}

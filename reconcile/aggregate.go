package reconcile

import (
	"github.com/invertedv/chfs"
)

// epsilon keeps the ratio denominator away from exact zero; the zero-asset
// cases have their own rules below.
const epsilon = 1e-9

// Totals holds the per-household aggregates.  Debt and Assets are always
// defined; Ratio is missing for the positive-debt, zero-asset households
// where it would be unbounded.
type Totals struct {
	Debt   []float64
	Assets []float64
	Ratio  []float64
}

// Aggregate sums the reconciled debt and asset columns per household,
// treating missing components as zero: a household that answered nothing
// for a concept is taken to hold nothing in that concept.  vehicleAdj is
// the vehicle value double-counted as both a personal and a business
// asset; it is subtracted once and total assets floored at zero.
func Aggregate(debtCols, assetCols [][]float64, vehicleAdj []float64) *Totals {
	n := len(vehicleAdj)
	tot := &Totals{
		Debt:   make([]float64, n),
		Assets: make([]float64, n),
		Ratio:  make([]float64, n),
	}

	for row := 0; row < n; row++ {
		tot.Debt[row] = sumRow(debtCols, row)

		assets := sumRow(assetCols, row)
		if adj := vehicleAdj[row]; !chfs.IsMissing(adj) {
			assets -= adj
		}
		if assets < 0 {
			assets = 0
		}
		tot.Assets[row] = assets

		tot.Ratio[row] = ratio(tot.Debt[row], assets)
	}

	return tot
}

func sumRow(cols [][]float64, row int) float64 {
	s := 0.0
	for _, col := range cols {
		if x := col[row]; !chfs.IsMissing(x) {
			s += x
		}
	}

	return s
}

// ratio is debt / (assets + epsilon) with two carve-outs: a household with
// neither debt nor assets has ratio 0, and a household with debt but no
// assets has no meaningful ratio at all -- missing, not a huge number.
func ratio(debt, assets float64) float64 {
	if debt == 0 && assets == 0 {
		return 0
	}

	if debt > 0 && assets == 0 {
		return chfs.Missing()
	}

	return debt / (assets + epsilon)
}

package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/invertedv/chfs"
)

// huberT is the tuning constant of Huber's T norm, 95% efficient at the
// normal.
const huberT = 1.345

const (
	huberMaxIter = 50
	huberTol     = 1e-8
)

// HuberResults holds a robust fit under Huber's T norm.
type HuberResults struct {
	Names []string // "const" first, then the IVs
	Coef  []float64
	Scale float64 // MAD residual scale at the last iteration
	Iter  int
	N     int
}

// Huber fits y on the IVs by iteratively reweighted least squares under
// Huber's T norm: residuals within huberT scale units keep full weight,
// larger ones are downweighted in proportion, so a few extreme households
// cannot drag the line.  The residual scale is the normalized MAD,
// re-estimated each iteration.
func Huber(f *Frame) (*HuberResults, error) {
	n, k := f.N(), len(f.IVs)
	if n < k+2 {
		return nil, fmt.Errorf("too few rows (%d) for %d regressors", n, k)
	}

	x := f.design()
	y := mat.NewVecDense(n, f.y)

	// start from the least-squares fit
	var beta mat.VecDense
	if e := beta.SolveVec(x, y); e != nil {
		return nil, fmt.Errorf("singular design: %w", e)
	}

	res := &HuberResults{
		Names: append([]string{"const"}, f.IVs...),
		Coef:  make([]float64, k+1),
		N:     n,
	}

	resid := make([]float64, n)

	for iter := 1; iter <= huberMaxIter; iter++ {
		res.Iter = iter

		var fitted mat.VecDense
		fitted.MulVec(x, &beta)
		for row := 0; row < n; row++ {
			resid[row] = f.y[row] - fitted.AtVec(row)
		}

		scale := madScale(resid)
		if scale == 0 {
			// an exact fit needs no reweighting
			break
		}
		res.Scale = scale

		// weighted least squares via sqrt-weight row scaling
		xw := mat.NewDense(n, k+1, nil)
		yw := mat.NewVecDense(n, nil)
		for row := 0; row < n; row++ {
			w := 1.0
			if u := math.Abs(resid[row]) / scale; u > huberT {
				w = huberT / u
			}

			rt := math.Sqrt(w)
			yw.SetVec(row, rt*f.y[row])
			for j := 0; j <= k; j++ {
				xw.Set(row, j, rt*x.At(row, j))
			}
		}

		var next mat.VecDense
		if e := next.SolveVec(xw, yw); e != nil {
			return nil, fmt.Errorf("singular weighted design: %w", e)
		}

		delta := 0.0
		for j := 0; j <= k; j++ {
			if d := math.Abs(next.AtVec(j) - beta.AtVec(j)); d > delta {
				delta = d
			}
		}
		beta.CloneFromVec(&next)

		if delta < huberTol {
			break
		}
	}

	for j := 0; j <= k; j++ {
		res.Coef[j] = beta.AtVec(j)
	}

	return res, nil
}

// madScale is the median absolute residual scaled to the normal.
func madScale(resid []float64) float64 {
	abs := make([]float64, len(resid))
	for ind, r := range resid {
		abs[ind] = math.Abs(r)
	}

	return chfs.Quantile(0.5, abs) / 0.6745
}

package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/invertedv/chfs"
)

// RidgeResults holds a ridge fit on standardized regressors.
type RidgeResults struct {
	Names     []string
	Coef      []float64 // coefficients on the standardized scale
	Intercept float64
	Alpha     float64 // penalty chosen by GCV
	R2        float64
	N         int
}

// Alphas is the default penalty grid, 10^-6 .. 10^6.
func Alphas() []float64 {
	var out []float64
	for p := -6.0; p <= 6.0; p++ {
		out = append(out, math.Pow(10, p))
	}

	return out
}

// RidgeCV fits a ridge regression for each alpha on standardized
// regressors and centered response, picking the alpha with the best
// generalized-cross-validation score.
func RidgeCV(f *Frame, alphas []float64) (*RidgeResults, error) {
	n, k := f.N(), len(f.IVs)
	if n < k+2 {
		return nil, fmt.Errorf("too few rows (%d) for %d regressors", n, k)
	}

	if alphas == nil {
		alphas = Alphas()
	}

	// standardize X, center y; the intercept is then the response mean
	xs := mat.NewDense(n, k, nil)
	for j := 0; j < k; j++ {
		mu, sd := chfs.Mean(f.x[j]), chfs.SDev(f.x[j])
		if sd == 0 {
			return nil, fmt.Errorf("regressor %s is constant", f.IVs[j])
		}

		for row := 0; row < n; row++ {
			xs.Set(row, j, (f.x[j][row]-mu)/sd)
		}
	}

	yBar := chfs.Mean(f.y)
	yc := mat.NewVecDense(n, nil)
	tss := 0.0
	for row := 0; row < n; row++ {
		yc.SetVec(row, f.y[row]-yBar)
		tss += yc.AtVec(row) * yc.AtVec(row)
	}

	var svd mat.SVD
	if !svd.Factorize(xs, mat.SVDThin) {
		return nil, fmt.Errorf("SVD of the design failed")
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	sig := svd.Values(nil)

	// uty = U'y, reused for every alpha
	var uty mat.VecDense
	uty.MulVec(u.T(), yc)

	best := &RidgeResults{Alpha: math.NaN()}
	bestScore := math.Inf(1)

	for _, alpha := range alphas {
		// shrinkage per singular value and the effective dof
		edf := 0.0
		shrunk := mat.NewVecDense(len(sig), nil)
		for i, s := range sig {
			d := s * s / (s*s + alpha)
			edf += d
			shrunk.SetVec(i, d*uty.AtVec(i))
		}

		var fitted mat.VecDense
		fitted.MulVec(&u, shrunk)

		rss := 0.0
		for row := 0; row < n; row++ {
			r := yc.AtVec(row) - fitted.AtVec(row)
			rss += r * r
		}

		denom := float64(n) - edf
		if denom <= 0 {
			continue
		}

		score := float64(n) * rss / (denom * denom)
		if score >= bestScore {
			continue
		}
		bestScore = score

		// beta = V diag(sigma/(sigma^2+alpha)) U'y
		scaled := mat.NewVecDense(len(sig), nil)
		for i, s := range sig {
			scaled.SetVec(i, s/(s*s+alpha)*uty.AtVec(i))
		}

		var beta mat.VecDense
		beta.MulVec(&v, scaled)

		best = &RidgeResults{
			Names:     append([]string{}, f.IVs...),
			Coef:      make([]float64, k),
			Intercept: yBar,
			Alpha:     alpha,
			N:         n,
		}
		for j := 0; j < k; j++ {
			best.Coef[j] = beta.AtVec(j)
		}

		if tss > 0 {
			best.R2 = 1 - rss/tss
		}
	}

	if math.IsNaN(best.Alpha) {
		return nil, fmt.Errorf("no alpha produced a usable fit")
	}

	return best, nil
}

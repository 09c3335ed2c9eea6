// Package model is the regression layer consuming the reconciled analysis
// frame: listwise deletion, OLS with a VIF check, a cross-validated ridge
// fit on standardized regressors, and descriptive statistics.  It treats
// the frame as read-only.
package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/invertedv/chfs"
)

// Frame is a regression-ready design: the rows of the analysis table where
// the dependent variable and every regressor are finite (listwise
// deletion; infinities drop with the missings).
type Frame struct {
	DV  string
	IVs []string

	y []float64
	x [][]float64 // column-major, one slice per IV

	dropped int
}

// NewFrame pulls dv and ivs from t and listwise-deletes incomplete rows.
func NewFrame(t *chfs.Table, dv string, ivs []string) (*Frame, error) {
	var (
		yCol *chfs.Col
		e    error
	)

	if yCol, e = t.Column(dv); e != nil {
		return nil, e
	}

	xCols := make([]*chfs.Col, len(ivs))
	for ind, nm := range ivs {
		if xCols[ind], e = t.Column(nm); e != nil {
			return nil, e
		}
	}

	f := &Frame{DV: dv, IVs: ivs, x: make([][]float64, len(ivs))}

	yData := yCol.Floats()
	for row := 0; row < t.RowCount(); row++ {
		keep := finite(yData[row])
		for _, xc := range xCols {
			keep = keep && finite(xc.Floats()[row])
		}

		if !keep {
			f.dropped++
			continue
		}

		f.y = append(f.y, yData[row])
		for ind, xc := range xCols {
			f.x[ind] = append(f.x[ind], xc.Floats()[row])
		}
	}

	return f, nil
}

func finite(x float64) bool {
	return !chfs.IsMissing(x) && !math.IsInf(x, 0)
}

// N is the number of complete rows.
func (f *Frame) N() int {
	return len(f.y)
}

// Dropped is the number of rows lost to listwise deletion.
func (f *Frame) Dropped() int {
	return f.dropped
}

// design builds the n x (k+1) matrix with a leading intercept column.
func (f *Frame) design() *mat.Dense {
	n, k := f.N(), len(f.IVs)
	x := mat.NewDense(n, k+1, nil)
	for row := 0; row < n; row++ {
		x.Set(row, 0, 1)
		for j := 0; j < k; j++ {
			x.Set(row, j+1, f.x[j][row])
		}
	}

	return x
}

// OLSResults holds an ordinary-least-squares fit.
type OLSResults struct {
	Names []string // "const" first, then the IVs
	Coef  []float64
	R2    float64
	N     int
}

// OLS fits y on the IVs with an intercept.
func OLS(f *Frame) (*OLSResults, error) {
	k := len(f.IVs)
	if f.N() < k+2 {
		return nil, fmt.Errorf("too few rows (%d) for %d regressors", f.N(), k)
	}

	x := f.design()
	y := mat.NewVecDense(f.N(), f.y)

	var beta mat.VecDense
	if e := beta.SolveVec(x, y); e != nil {
		return nil, fmt.Errorf("singular design: %w", e)
	}

	res := &OLSResults{
		Names: append([]string{"const"}, f.IVs...),
		Coef:  make([]float64, k+1),
		N:     f.N(),
	}
	for j := 0; j <= k; j++ {
		res.Coef[j] = beta.AtVec(j)
	}

	var fitted mat.VecDense
	fitted.MulVec(x, &beta)

	yBar := chfs.Mean(f.y)
	rss, tss := 0.0, 0.0
	for row := 0; row < f.N(); row++ {
		r := f.y[row] - fitted.AtVec(row)
		rss += r * r
		d := f.y[row] - yBar
		tss += d * d
	}

	if tss > 0 {
		res.R2 = 1 - rss/tss
	}

	return res, nil
}

// VIF returns the variance inflation factor of each IV: 1/(1-R2) from
// regressing that IV on the others.  Values above 5 flag collinearity.
func VIF(f *Frame) (map[string]float64, error) {
	out := make(map[string]float64)

	for j, nm := range f.IVs {
		var others []string
		sub := &Frame{y: f.x[j]}
		for i := range f.IVs {
			if i == j {
				continue
			}

			others = append(others, f.IVs[i])
			sub.x = append(sub.x, f.x[i])
		}
		sub.IVs = others

		var (
			res *OLSResults
			e   error
		)

		if res, e = OLS(sub); e != nil {
			return nil, e
		}

		if res.R2 >= 1 {
			out[nm] = math.Inf(1)
			continue
		}

		out[nm] = 1 / (1 - res.R2)
	}

	return out, nil
}

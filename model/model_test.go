package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/invertedv/chfs"
)

func newTestTable(names []string, data ...[]float64) *chfs.Table {
	var cols []*chfs.Col
	for ind, nm := range names {
		var (
			c *chfs.Col
			e error
		)

		if c, e = chfs.NewCol(nm, data[ind]); e != nil {
			panic(e)
		}

		cols = append(cols, c)
	}

	t, e := chfs.NewTable(cols...)
	if e != nil {
		panic(e)
	}

	return t
}

func TestNewFrame(t *testing.T) {
	miss := chfs.Missing()
	tbl := newTestTable(
		[]string{"y", "x1", "x2"},
		[]float64{1, 2, miss, 4, 5, 6},
		[]float64{1, 1, 1, miss, 1, math.Inf(1)},
		[]float64{0, 1, 0, 1, 0, 1},
	)

	f, e := NewFrame(tbl, "y", []string{"x1", "x2"})
	assert.Nil(t, e)

	// rows 2, 3 and 5 are incomplete
	assert.Equal(t, 3, f.N())
	assert.Equal(t, 3, f.Dropped())
	assert.Equal(t, []float64{1, 2, 5}, f.y)
	assert.Equal(t, []float64{1, 1, 1}, f.x[0])
	assert.Equal(t, []float64{0, 1, 0}, f.x[1])

	_, e = NewFrame(tbl, "nope", []string{"x1"})
	assert.NotNil(t, e)

	_, e = NewFrame(tbl, "y", []string{"nope"})
	assert.NotNil(t, e)
}

func TestOLS(t *testing.T) {
	// y = 2 + 3x, exactly
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := make([]float64, len(x))
	for ind, xv := range x {
		y[ind] = 2 + 3*xv
	}

	tbl := newTestTable([]string{"y", "x"}, y, x)

	f, e := NewFrame(tbl, "y", []string{"x"})
	assert.Nil(t, e)

	res, eFit := OLS(f)
	assert.Nil(t, eFit)
	assert.Equal(t, []string{"const", "x"}, res.Names)
	assert.InDelta(t, 2.0, res.Coef[0], 1e-9)
	assert.InDelta(t, 3.0, res.Coef[1], 1e-9)
	assert.InDelta(t, 1.0, res.R2, 1e-12)
	assert.Equal(t, 8, res.N)
}

func TestOLS_TooFewRows(t *testing.T) {
	tbl := newTestTable(
		[]string{"y", "x1", "x2"},
		[]float64{1, 2, 3},
		[]float64{1, 0, 1},
		[]float64{0, 1, 0},
	)

	f, e := NewFrame(tbl, "y", []string{"x1", "x2"})
	assert.Nil(t, e)

	_, eFit := OLS(f)
	assert.NotNil(t, eFit)
}

func TestVIF(t *testing.T) {
	x1 := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	x2 := []float64{1, -1, -1, 1, 1, -1, -1, 1} // orthogonal to x1
	y := []float64{3, 1, 4, 1, 5, 9, 2, 6}

	tbl := newTestTable([]string{"y", "x1", "x2"}, y, x1, x2)

	f, e := NewFrame(tbl, "y", []string{"x1", "x2"})
	assert.Nil(t, e)

	vif, eVIF := VIF(f)
	assert.Nil(t, eVIF)
	assert.InDelta(t, 1.0, vif["x1"], 1e-9)
	assert.InDelta(t, 1.0, vif["x2"], 1e-9)
}

func TestVIF_Collinear(t *testing.T) {
	x1 := []float64{1, 2, 3, 4, 5, 6}
	x2 := make([]float64, len(x1))
	for ind, xv := range x1 {
		x2[ind] = 2 * xv
	}
	y := []float64{1, 0, 1, 0, 1, 0}

	tbl := newTestTable([]string{"y", "x1", "x2"}, y, x1, x2)

	f, e := NewFrame(tbl, "y", []string{"x1", "x2"})
	assert.Nil(t, e)

	vif, eVIF := VIF(f)
	assert.Nil(t, eVIF)
	assert.True(t, math.IsInf(vif["x1"], 1) || vif["x1"] > 1e6)
	assert.True(t, math.IsInf(vif["x2"], 1) || vif["x2"] > 1e6)
}

func TestRidgeCV(t *testing.T) {
	x1 := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	x2 := []float64{1, -1, -1, 1, 1, -1, -1, 1}
	y := make([]float64, len(x1))
	for ind := range x1 {
		y[ind] = 2 + 3*x1[ind] - x2[ind]
	}

	tbl := newTestTable([]string{"y", "x1", "x2"}, y, x1, x2)

	f, e := NewFrame(tbl, "y", []string{"x1", "x2"})
	assert.Nil(t, e)

	res, eFit := RidgeCV(f, nil)
	assert.Nil(t, eFit)

	// noiseless data: GCV lands on the lightest penalty
	assert.Equal(t, 8, res.N)
	assert.LessOrEqual(t, res.Alpha, 1e-3)
	assert.Greater(t, res.R2, 0.999)
	assert.InDelta(t, chfs.Mean(y), res.Intercept, 1e-12)

	// coefficients come back on the standardized scale
	assert.InDelta(t, 3*chfs.SDev(x1), res.Coef[0], 1e-3)
	assert.InDelta(t, -chfs.SDev(x2), res.Coef[1], 1e-3)
}

func TestRidgeCV_ConstantRegressor(t *testing.T) {
	tbl := newTestTable(
		[]string{"y", "x1", "x2"},
		[]float64{1, 2, 3, 4, 5},
		[]float64{7, 7, 7, 7, 7},
		[]float64{1, 2, 3, 4, 5},
	)

	f, e := NewFrame(tbl, "y", []string{"x1", "x2"})
	assert.Nil(t, e)

	_, eFit := RidgeCV(f, nil)
	assert.NotNil(t, eFit)
}

func TestHuber(t *testing.T) {
	// y = 2 + 3x, exactly: the robust fit is the least-squares fit
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := make([]float64, len(x))
	for ind, xv := range x {
		y[ind] = 2 + 3*xv
	}

	tbl := newTestTable([]string{"y", "x"}, y, x)

	f, e := NewFrame(tbl, "y", []string{"x"})
	assert.Nil(t, e)

	res, eFit := Huber(f)
	assert.Nil(t, eFit)
	assert.Equal(t, []string{"const", "x"}, res.Names)
	assert.InDelta(t, 2.0, res.Coef[0], 1e-9)
	assert.InDelta(t, 3.0, res.Coef[1], 1e-9)
	assert.Equal(t, 8, res.N)
}

func TestHuber_Outlier(t *testing.T) {
	x := make([]float64, 20)
	y := make([]float64, 20)
	for ind := range x {
		x[ind] = float64(ind + 1)
		y[ind] = 2 + 3*x[ind]
	}
	y[9] = 1000 // one wild household

	tbl := newTestTable([]string{"y", "x"}, y, x)

	f, e := NewFrame(tbl, "y", []string{"x"})
	assert.Nil(t, e)

	ols, eOLS := OLS(f)
	assert.Nil(t, eOLS)

	hub, eHub := Huber(f)
	assert.Nil(t, eHub)

	// the outlier drags the least-squares intercept; the robust fit
	// downweights it and stays near the true line
	assert.Greater(t, math.Abs(ols.Coef[0]-2), 10.0)
	assert.InDelta(t, 2.0, hub.Coef[0], 0.1)
	assert.InDelta(t, 3.0, hub.Coef[1], 0.05)
	assert.Greater(t, hub.Scale, 0.0)
	assert.GreaterOrEqual(t, hub.Iter, 2)
}

func TestFrame_Describe(t *testing.T) {
	miss := chfs.Missing()
	tbl := newTestTable(
		[]string{"y", "x"},
		[]float64{1, 2, miss, 4},
		[]float64{10, 20, 30, 40},
	)

	f, e := NewFrame(tbl, "y", []string{"x"})
	assert.Nil(t, e)

	out := f.Describe()
	assert.Equal(t, 2, len(out))

	// the summaries cover the listwise-deleted sample, not the full table
	assert.Equal(t, "y", out[0].Name)
	assert.Equal(t, f.N(), out[0].N)
	assert.Equal(t, f.N(), out[1].N)
	assert.Equal(t, 40.0, out[1].Max)
	assert.InDelta(t, 70.0/3.0, out[1].Mean, 1e-12)
}

func TestDescribe(t *testing.T) {
	miss := chfs.Missing()
	tbl := newTestTable(
		[]string{"a", "b"},
		[]float64{1, 2, 3, 4, 5, miss},
		[]float64{miss, miss, miss, miss, miss, miss},
	)

	out, e := Describe(tbl, "a", "b")
	assert.Nil(t, e)
	assert.Equal(t, 2, len(out))

	a := out[0]
	assert.Equal(t, "a", a.Name)
	assert.Equal(t, 5, a.N)
	assert.Equal(t, 3.0, a.Mean)
	assert.InDelta(t, math.Sqrt(2.5), a.SDev, 1e-12)
	assert.Equal(t, 1.0, a.Min)
	assert.Equal(t, 5.0, a.Max)
	assert.InDelta(t, 3.0, a.Q50, 0.5)

	b := out[1]
	assert.Equal(t, 0, b.N)
	assert.Equal(t, 0.0, b.Mean)

	_, e = Describe(tbl, "nope")
	assert.NotNil(t, e)
}

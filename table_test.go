package chfs

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestTable(names []string, data ...[]float64) *Table {
	var cols []*Col
	for ind, nm := range names {
		var (
			c *Col
			e error
		)

		if c, e = NewCol(nm, data[ind]); e != nil {
			panic(e)
		}

		cols = append(cols, c)
	}

	t, e := NewTable(cols...)
	if e != nil {
		panic(e)
	}

	return t
}

func TestTable_Basics(t *testing.T) {
	tbl := newTestTable([]string{"a", "b"}, []float64{1, 2, 3}, []float64{4, 5, 6})

	assert.Equal(t, 3, tbl.RowCount())
	assert.Equal(t, 2, tbl.ColumnCount())
	assert.Equal(t, []string{"a", "b"}, tbl.ColumnNames())

	col, e := tbl.Column("b")
	assert.Nil(t, e)
	assert.Equal(t, []float64{4, 5, 6}, col.Floats())

	_, e = tbl.Column("c")
	assert.NotNil(t, e)

	assert.NotNil(t, tbl.AppendColumn(ConstCol("a", 0, 3)))
	assert.NotNil(t, tbl.AppendColumn(ConstCol("c", 0, 2)))
	assert.Nil(t, tbl.AppendColumn(ConstCol("c", 7, 3)))
	assert.Equal(t, 3, tbl.ColumnCount())

	assert.Nil(t, tbl.DropColumns("c"))
	assert.False(t, tbl.HasColumn("c"))
}

func TestTable_Sort(t *testing.T) {
	tbl := newTestTable([]string{"k", "v"}, []float64{3, 1, 2}, []float64{30, 10, 20})

	assert.Nil(t, tbl.Sort("k"))

	k, _ := tbl.Column("k")
	v, _ := tbl.Column("v")
	assert.Equal(t, []float64{1, 2, 3}, k.Floats())
	assert.Equal(t, []float64{10, 20, 30}, v.Floats())
}

func TestTable_LeftJoin(t *testing.T) {
	left := newTestTable([]string{"hhid", "x"}, []float64{1, 2, 3, 4}, []float64{10, 20, 30, 40})
	right := newTestTable([]string{"hhid", "y"}, []float64{2, 1, 2}, []float64{200, 100, 999})

	joined, dups, e := left.LeftJoin(right, "hhid")
	assert.Nil(t, e)

	// every left row survives; the duplicated right key is counted and
	// its first occurrence used
	assert.Equal(t, 4, joined.RowCount())
	assert.Equal(t, 1, dups)

	y, _ := joined.Column("y")
	assert.Equal(t, 100.0, y.Floats()[0])
	assert.Equal(t, 200.0, y.Floats()[1])
	assert.True(t, IsMissing(y.Floats()[2]))
	assert.True(t, IsMissing(y.Floats()[3]))

	// the source tables are untouched
	assert.Equal(t, []string{"hhid", "x"}, left.ColumnNames())
}

func TestQuantile(t *testing.T) {
	x := []float64{5, 1, 3, 2, 4}

	assert.Equal(t, 1.0, Quantile(0, x))
	assert.InDelta(t, 3.0, Quantile(0.5, x), 0.5)
	assert.Equal(t, 5.0, Quantile(1, x))

	// input order is preserved
	assert.Equal(t, []float64{5, 1, 3, 2, 4}, x)
}

func TestFinite(t *testing.T) {
	x := []float64{1, Missing(), math.Inf(1), 2, math.Inf(-1)}
	assert.Equal(t, []float64{1, 2}, Finite(x))
	assert.Nil(t, Finite([]float64{Missing()}))
}

func TestFiles_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	fileName := filepath.Join(dir, "out.csv")

	tbl := newTestTable([]string{"hhid", "v"}, []float64{1, 2, 3}, []float64{1.5, Missing(), -2})

	f := NewFiles()
	assert.Nil(t, f.Save(fileName, tbl))

	back, e := f.Load(fileName)
	assert.Nil(t, e)
	assert.Equal(t, 3, back.RowCount())

	v, _ := back.Column("v")
	assert.Equal(t, 1.5, v.Floats()[0])
	assert.True(t, IsMissing(v.Floats()[1]))
	assert.Equal(t, -2.0, v.Floats()[2])

	_ = os.Remove(fileName)
}

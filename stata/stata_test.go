package stata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/invertedv/chfs"
)

func TestLoad_CSV(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "hh.csv")
	csv := "hhid,b3031a_2,track\n1,1000,urban\n2,,rural\n3,500,urban\n"
	if e := os.WriteFile(fileName, []byte(csv), 0644); e != nil {
		panic(e)
	}

	tbl, e := Load(fileName)
	assert.Nil(t, e)
	assert.Equal(t, 3, tbl.RowCount())

	hhid, _ := tbl.Column("hhid")
	assert.Equal(t, []float64{1, 2, 3}, hhid.Floats())

	// the blank entry reads as missing, not zero
	debt, _ := tbl.Column("b3031a_2")
	assert.Equal(t, 1000.0, debt.Floats()[0])
	assert.True(t, chfs.IsMissing(debt.Floats()[1]))
	assert.Equal(t, 500.0, debt.Floats()[2])

	track, _ := tbl.Column("track")
	assert.Equal(t, chfs.DTstring, track.DataType())
}

func TestLoad_Unsupported(t *testing.T) {
	_, e := Load("extract.xlsx")
	assert.NotNil(t, e)

	_, e = Load(filepath.Join(t.TempDir(), "absent.dta"))
	assert.NotNil(t, e)
}

// Package stata loads the CHFS survey extracts into chfs Tables.  The
// extracts ship as Stata .dta files; a CSV with the same columns works as
// a fallback for testing and subsets.
package stata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kshedden/datareader"

	"github.com/invertedv/chfs"
)

// Load reads fileName into a Table, dispatching on the extension.
// Numeric columns load as float with Stata missing codes as missing;
// value labels are left unapplied, matching the raw-code field catalogs.
func Load(fileName string) (*chfs.Table, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".dta":
		return loadDta(fileName)
	case ".csv":
		return chfs.NewFiles().Load(fileName)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", fileName)
	}
}

func loadDta(fileName string) (t *chfs.Table, err error) {
	var f *os.File
	if f, err = os.Open(fileName); err != nil {
		return nil, err
	}

	defer func() {
		if e := f.Close(); e != nil && err == nil {
			err = e
		}
	}()

	var rdr *datareader.StataReader
	if rdr, err = datareader.NewStataReader(f); err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}

	var series []*datareader.Series
	if series, err = rdr.Read(-1); err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}

	names := rdr.ColumnNames()

	var cols []*chfs.Col
	for ind, ser := range series {
		var col *chfs.Col
		if col, err = toCol(names[ind], ser); err != nil {
			return nil, fmt.Errorf("%s column %s: %w", fileName, names[ind], err)
		}

		cols = append(cols, col)
	}

	return chfs.NewTable(cols...)
}

// toCol converts one Series to a Col.  Numeric series widen to float64,
// with the series' missing mask mapped to the missing sentinel.
func toCol(name string, ser *datareader.Series) (*chfs.Col, error) {
	miss := ser.Missing()

	switch data := ser.Data().(type) {
	case []string:
		return chfs.NewCol(name, data)
	default:
		ser = ser.UpcastNumeric()
	}

	data, ok := ser.Data().([]float64)
	if !ok {
		return nil, fmt.Errorf("unsupported series type %T", ser.Data())
	}

	out := make([]float64, len(data))
	copy(out, data)
	for ind := range out {
		if miss != nil && miss[ind] {
			out[ind] = chfs.Missing()
		}
	}

	return chfs.NewCol(name, out)
}

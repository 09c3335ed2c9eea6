package chfs

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// All code interacting with files is here

const (
	Sep         = ','
	EOL         = '\n'
	FloatFormat = "%v"
	Header      = true
)

// Files reads and writes Tables as delimited text.  Missing float entries
// are written as empty fields and read back as missing.
type Files struct {
	Sep         byte
	EOL         byte
	FloatFormat string
	Header      bool

	file     *os.File
	fileName string
}

func NewFiles() *Files {
	f := &Files{
		Sep:         byte(Sep),
		EOL:         byte(EOL),
		FloatFormat: FloatFormat,
		Header:      Header,
	}

	return f
}

func (f *Files) FileName() string {
	return f.fileName
}

func (f *Files) Save(fileName string, t *Table) (err error) {
	f.fileName = fileName
	if f.file, err = os.Create(fileName); err != nil {
		return err
	}

	defer func() {
		if e := f.file.Close(); e != nil && err == nil {
			err = e
		}
	}()

	if f.Header {
		if _, err = f.file.WriteString(strings.Join(t.ColumnNames(), string(rune(f.Sep))) + string(rune(f.EOL))); err != nil {
			return err
		}
	}

	for row := 0; row < t.RowCount(); row++ {
		var line []byte
		first := true
		for c := t.Next(true); c != nil; c = t.Next(false) {
			if !first {
				line = append(line, f.Sep)
			}
			first = false

			switch v := c.Element(row).(type) {
			case float64:
				if IsMissing(v) {
					continue
				}
				line = append(line, []byte(fmt.Sprintf(f.FloatFormat, v))...)
			case int:
				line = append(line, []byte(fmt.Sprintf("%d", v))...)
			case string:
				line = append(line, []byte(v)...)
			default:
				line = append(line, []byte("#err#")...)
			}
		}

		line = append(line, f.EOL)
		if _, err = f.file.Write(line); err != nil {
			return err
		}
	}

	return nil
}

// Load reads a delimited file with a header row.  A column whose every
// non-empty field parses as a number becomes a float column with empty
// fields as missing; anything else becomes a string column.
func (f *Files) Load(fileName string) (t *Table, err error) {
	f.fileName = fileName
	if f.file, err = os.Open(fileName); err != nil {
		return nil, err
	}

	defer func() {
		if e := f.file.Close(); e != nil && err == nil {
			err = e
		}
	}()

	rdr := csv.NewReader(f.file)
	rdr.Comma = rune(f.Sep)

	var rows [][]string
	if rows, err = rdr.ReadAll(); err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("%s has no data rows", fileName)
	}

	names := rows[0]
	rows = rows[1:]

	var cols []*Col
	for j := 0; j < len(names); j++ {
		floats := make([]float64, len(rows))
		strs := make([]string, len(rows))
		isFloat := true

		for i := 0; i < len(rows); i++ {
			fld := rows[i][j]
			strs[i] = fld

			if fld == "" {
				floats[i] = Missing()
				continue
			}

			var x float64
			if x, err = strconv.ParseFloat(fld, 64); err != nil {
				isFloat = false
				continue
			}

			floats[i] = x
		}
		err = nil

		var (
			col *Col
			e   error
		)

		if isFloat {
			col, e = NewCol(names[j], floats)
		} else {
			col, e = NewCol(names[j], strs)
		}

		if e != nil {
			return nil, e
		}

		cols = append(cols, col)
	}

	return NewTable(cols...)
}

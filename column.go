package chfs

import (
	"fmt"
	"math"
)

// DataTypes are the types of data that the package supports
type DataTypes uint8

// values of DataTypes
const (
	DTunknown DataTypes = 0 + iota
	DTfloat
	DTint
	DTstring
)

func (dt DataTypes) String() string {
	switch dt {
	case DTfloat:
		return "float"
	case DTint:
		return "int"
	case DTstring:
		return "string"
	default:
		return "unknown"
	}
}

// Missing is the sentinel used for a missing value in a float column.
func Missing() float64 {
	return math.NaN()
}

func IsMissing(x float64) bool {
	return math.IsNaN(x)
}

// Col is one named column of a Table, backed by a typed slice.  Float columns
// use NaN for missing values; int and string columns have no missing state.
type Col struct {
	name  string
	dType DataTypes
	data  any
}

func NewCol(name string, data any) (*Col, error) {
	var dt DataTypes
	if dt = WhatAmI(data); dt == DTunknown {
		return nil, fmt.Errorf("unsupported data type in NewCol")
	}

	c := &Col{
		name:  name,
		dType: dt,
		data:  data,
	}

	return c, nil
}

// MissingCol returns a float column of length n that is entirely missing.
func MissingCol(name string, n int) *Col {
	data := make([]float64, n)
	for ind := 0; ind < n; ind++ {
		data[ind] = Missing()
	}

	c, _ := NewCol(name, data)

	return c
}

// ConstCol returns a float column of length n filled with x.
func ConstCol(name string, x float64, n int) *Col {
	data := make([]float64, n)
	for ind := 0; ind < n; ind++ {
		data[ind] = x
	}

	c, _ := NewCol(name, data)

	return c
}

// WhatAmI returns the DataTypes of data, DTunknown if unsupported.
func WhatAmI(data any) DataTypes {
	switch data.(type) {
	case []float64:
		return DTfloat
	case []int:
		return DTint
	case []string:
		return DTstring
	default:
		return DTunknown
	}
}

func (m *Col) Name(renameTo string) string {
	if renameTo != "" {
		m.name = renameTo
	}

	return m.name
}

func (m *Col) DataType() DataTypes {
	return m.dType
}

func (m *Col) Len() int {
	switch m.dType {
	case DTfloat:
		return len(m.data.([]float64))
	case DTint:
		return len(m.data.([]int))
	case DTstring:
		return len(m.data.([]string))
	default:
		return -1
	}
}

func (m *Col) Data() any {
	return m.data
}

// Floats returns the backing slice of a float column.
func (m *Col) Floats() []float64 {
	if m.dType != DTfloat {
		panic(fmt.Errorf("column %s is %v, not float", m.name, m.dType))
	}

	return m.data.([]float64)
}

func (m *Col) Element(row int) any {
	switch m.dType {
	case DTfloat:
		return m.data.([]float64)[row]
	case DTint:
		return m.data.([]int)[row]
	case DTstring:
		return m.data.([]string)[row]
	default:
		panic(fmt.Errorf("unsupported data type in Element"))
	}
}

func (m *Col) Copy() *Col {
	var copiedData any
	n := m.Len()
	switch m.dType {
	case DTfloat:
		copiedData = make([]float64, n)
		copy(copiedData.([]float64), m.data.([]float64))
	case DTint:
		copiedData = make([]int, n)
		copy(copiedData.([]int), m.data.([]int))
	case DTstring:
		copiedData = make([]string, n)
		copy(copiedData.([]string), m.data.([]string))
	default:
		panic(fmt.Errorf("unsupported data type in Copy"))
	}

	col := &Col{
		name:  m.name,
		dType: m.dType,
		data:  copiedData,
	}

	return col
}

func (m *Col) Less(i, j int) bool {
	switch m.dType {
	case DTfloat:
		return m.data.([]float64)[i] <= m.data.([]float64)[j]
	case DTint:
		return m.data.([]int)[i] <= m.data.([]int)[j]
	case DTstring:
		return m.data.([]string)[i] <= m.data.([]string)[j]
	default:
		panic(fmt.Errorf("unsupported data type in Less"))
	}
}

// CountMissing returns the number of missing entries.  Only float columns
// can hold missing values.
func (m *Col) CountMissing() int {
	if m.dType != DTfloat {
		return 0
	}

	n := 0
	for _, x := range m.data.([]float64) {
		if IsMissing(x) {
			n++
		}
	}

	return n
}

// Package chfs holds the columnar table core used by the CHFS reconciliation
// pipeline: an in-memory Table of typed columns with missing-value semantics,
// sorting, a left-preserving join, and CSV / ClickHouse persistence.
package chfs

import (
	"fmt"
	"sort"
	"strings"
)

// Table is an in-memory columnar table.  Columns live on a doubly-linked
// list so they can be appended and dropped without reslicing.
type Table struct {
	head    *columnList
	current *columnList

	by []*Col
}

type columnList struct {
	col *Col

	prior *columnList
	next  *columnList
}

func NewTable(cols ...*Col) (t *Table, err error) {
	if cols == nil {
		return nil, fmt.Errorf("no columns in NewTable")
	}

	rowCount := cols[0].Len()

	var head, priorNode *columnList
	for ind := 0; ind < len(cols); ind++ {
		if cols[ind].Len() != rowCount {
			return nil, fmt.Errorf("all columns must have same length")
		}

		node := &columnList{
			col: cols[ind],

			prior: priorNode,
			next:  nil,
		}

		if priorNode != nil {
			priorNode.next = node
		}

		priorNode = node

		if ind == 0 {
			head = node
		}
	}

	return &Table{head: head}, nil
}

// Next iterates the columns; reset starts over.  Returns nil when exhausted.
func (t *Table) Next(reset bool) *Col {
	if reset || t.current == nil {
		t.current = t.head
		return t.current.col
	}

	if t.current.next == nil {
		t.current = nil
		return nil
	}

	t.current = t.current.next
	return t.current.col
}

func (t *Table) RowCount() int {
	return t.head.col.Len()
}

func (t *Table) ColumnCount() int {
	cols := 0
	for c := t.head; c != nil; c = c.next {
		cols++
	}

	return cols
}

func (t *Table) ColumnNames() []string {
	var names []string

	for h := t.head; h != nil; h = h.next {
		names = append(names, h.col.Name(""))
	}

	return names
}

func (t *Table) Column(colName string) (col *Col, err error) {
	for h := t.head; h != nil; h = h.next {
		if h.col.Name("") == colName {
			return h.col, nil
		}
	}

	return nil, fmt.Errorf("column %s not found", colName)
}

func (t *Table) HasColumn(colName string) bool {
	_, e := t.Column(colName)
	return e == nil
}

func (t *Table) AppendColumn(col *Col) error {
	if t.HasColumn(col.Name("")) {
		return fmt.Errorf("duplicate column name: %s", col.Name(""))
	}

	if col.Len() != t.RowCount() {
		return fmt.Errorf("length mismatch: table - %d, append col - %d", t.RowCount(), col.Len())
	}

	var tail *columnList
	for tail = t.head; tail.next != nil; tail = tail.next {
	}

	node := &columnList{
		col:   col,
		prior: tail,
		next:  nil,
	}

	tail.next = node

	return nil
}

func (t *Table) node(colName string) (node *columnList, err error) {
	for h := t.head; h != nil; h = h.next {
		if h.col.Name("") == colName {
			return h, nil
		}
	}

	return nil, fmt.Errorf("column %s not found", colName)
}

func (t *Table) DropColumns(colNames ...string) error {
	for _, cName := range colNames {
		var (
			node *columnList
			e    error
		)

		if node, e = t.node(cName); e != nil {
			return fmt.Errorf("column %s not found", cName)
		}

		if node == t.head {
			if t.head.next == nil {
				t.head = nil
				return fmt.Errorf("no columns left")
			}

			t.head = t.head.next
			t.head.prior = nil
			continue
		}

		node.prior.next = node.next
		if node.next != nil {
			node.next.prior = node.prior
		}
	}

	return nil
}

// KeepColumns returns a new Table holding only colNames, in that order.
// The columns are shared, not copied.
func (t *Table) KeepColumns(colNames ...string) (*Table, error) {
	var subHead, tail *columnList

	for ind := 0; ind < len(colNames); ind++ {
		var (
			col *Col
			err error
		)

		if col, err = t.Column(colNames[ind]); err != nil {
			return nil, err
		}

		newNode := &columnList{
			col:   col,
			prior: nil,
			next:  nil,
		}

		if subHead == nil {
			subHead, tail = newNode, newNode
			continue
		}

		newNode.prior = tail
		tail.next = newNode
		tail = newNode
	}

	return &Table{head: subHead}, nil
}

func (t *Table) Copy() *Table {
	var cols []*Col
	for c := t.Next(true); c != nil; c = t.Next(false) {
		cols = append(cols, c.Copy())
	}

	// will not fail: lengths agree by construction
	cp, _ := NewTable(cols...)

	return cp
}

// ********** sorting **********

func (t *Table) Less(i, j int) bool {
	for ind := 0; ind < len(t.by); ind++ {
		if !t.by[ind].Less(i, j) {
			return false
		}

		// if < (rather than <=) it's true
		if t.by[ind].Less(i, j) && !t.by[ind].Less(j, i) {
			return true
		}

		// equal -- keep checking
	}

	return true
}

func (t *Table) Swap(i, j int) {
	for h := t.Next(true); h != nil; h = t.Next(false) {
		data := h.data
		switch h.DataType() {
		case DTfloat:
			data.([]float64)[i], data.([]float64)[j] = data.([]float64)[j], data.([]float64)[i]
		case DTint:
			data.([]int)[i], data.([]int)[j] = data.([]int)[j], data.([]int)[i]
		case DTstring:
			data.([]string)[i], data.([]string)[j] = data.([]string)[j], data.([]string)[i]
		default:
			panic(fmt.Errorf("unsupported data type in Swap"))
		}
	}
}

// Len is required for sort
func (t *Table) Len() int {
	return t.RowCount()
}

func (t *Table) Sort(keys ...string) error {
	var by []*Col

	for ind := 0; ind < len(keys); ind++ {
		var (
			x *Col
			e error
		)

		if x, e = t.Column(keys[ind]); e != nil {
			return e
		}

		by = append(by, x)
	}

	t.by = by
	sort.Sort(t)

	return nil
}

// ********** join **********

// LeftJoin joins right onto t by the key column, preserving every row of t.
// Rows of t with no match in right get missing values for the joined
// columns; for that reason the non-key columns of right must be float.
// When the key repeats in right, the first occurrence wins; dupKeys counts
// the repeated keys so the caller can surface a cardinality warning.
func (t *Table) LeftJoin(right *Table, key string) (joined *Table, dupKeys int, err error) {
	var leftKey, rightKey *Col

	if leftKey, err = t.Column(key); err != nil {
		return nil, 0, err
	}

	if rightKey, err = right.Column(key); err != nil {
		return nil, 0, err
	}

	if leftKey.DataType() != rightKey.DataType() {
		return nil, 0, fmt.Errorf("join key %s has mismatched types", key)
	}

	rowOf := make(map[any]int)
	for row := 0; row < rightKey.Len(); row++ {
		k := rightKey.Element(row)
		if fk, isFloat := k.(float64); isFloat && IsMissing(fk) {
			continue
		}

		if _, dup := rowOf[k]; dup {
			dupKeys++
			continue
		}

		rowOf[k] = row
	}

	joined = t.Copy()

	for c := right.Next(true); c != nil; c = right.Next(false) {
		if c.Name("") == key {
			continue
		}

		if c.DataType() != DTfloat {
			return nil, dupKeys, fmt.Errorf("joined column %s must be float", c.Name(""))
		}

		src := c.Floats()
		data := make([]float64, t.RowCount())
		for row := 0; row < t.RowCount(); row++ {
			data[row] = Missing()
			if rRow, ok := rowOf[leftKey.Element(row)]; ok {
				data[row] = src[rRow]
			}
		}

		var col *Col
		if col, err = NewCol(c.Name(""), data); err != nil {
			return nil, dupKeys, err
		}

		if err = joined.AppendColumn(col); err != nil {
			return nil, dupKeys, err
		}
	}

	return joined, dupKeys, nil
}

// String prints the first few rows, mostly for debugging and examples.
func (t *Table) String() string {
	const maxShow = 10

	var sb strings.Builder
	sb.WriteString(strings.Join(t.ColumnNames(), ","))
	sb.WriteString("\n")

	n := t.RowCount()
	if n > maxShow {
		n = maxShow
	}

	for row := 0; row < n; row++ {
		var flds []string
		for c := t.Next(true); c != nil; c = t.Next(false) {
			flds = append(flds, fmt.Sprintf("%v", c.Element(row)))
		}
		sb.WriteString(strings.Join(flds, ","))
		sb.WriteString("\n")
	}

	if t.RowCount() > maxShow {
		sb.WriteString(fmt.Sprintf("... %d rows\n", t.RowCount()))
	}

	return sb.String()
}

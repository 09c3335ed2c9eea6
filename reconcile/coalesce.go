package reconcile

import (
	"github.com/invertedv/chfs"
	"github.com/invertedv/chfs/brackets"
)

// EnsureColumns appends an all-missing float column for every catalog
// field absent from the household table, so a field the wave never
// collected behaves like a field nobody answered.  Returns the number of
// columns synthesized.
func EnsureColumns(hh *chfs.Table, concepts []Concept) (synthesized int, err error) {
	need := make(map[string]bool)
	for _, cpt := range concepts {
		need[cpt.Exact] = true
		if cpt.Interval != "" {
			need[cpt.Interval] = true
		}
	}

	for fieldID := range need {
		if hh.HasColumn(fieldID) {
			continue
		}

		if e := hh.AppendColumn(chfs.MissingCol(fieldID, hh.RowCount())); e != nil {
			return synthesized, e
		}
		synthesized++
	}

	return synthesized, nil
}

// Coalesce reconciles one concept into a single value per household: the
// exact response when present, else the bracket-table estimate of the
// interval code, else missing.  The exact strictly dominates -- when both
// are populated the interval code is ignored.
func Coalesce(hh *chfs.Table, cpt Concept) ([]float64, error) {
	var (
		exact *chfs.Col
		e     error
	)

	if exact, e = hh.Column(cpt.Exact); e != nil {
		return nil, e
	}

	out := make([]float64, exact.Len())
	copy(out, exact.Floats())

	if cpt.Interval == "" {
		return out, nil
	}

	var interval *chfs.Col
	if interval, e = hh.Column(cpt.Interval); e != nil {
		return nil, e
	}

	codes := interval.Floats()
	for row := 0; row < len(out); row++ {
		if chfs.IsMissing(out[row]) {
			out[row] = brackets.Resolve(codes[row], cpt.Interval)
		}
	}

	return out, nil
}

// CoalesceAll applies Coalesce over a catalog, returning one reconciled
// column per concept in catalog order.
func CoalesceAll(hh *chfs.Table, concepts []Concept) ([][]float64, error) {
	out := make([][]float64, len(concepts))
	for ind, cpt := range concepts {
		var e error
		if out[ind], e = Coalesce(hh, cpt); e != nil {
			return nil, e
		}
	}

	return out, nil
}

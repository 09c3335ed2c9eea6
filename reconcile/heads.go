package reconcile

import (
	"fmt"

	"github.com/invertedv/chfs"
)

// minHeadAge is the questionnaire's floor for a valid respondent.
const minHeadAge = 16

// siblingAgeCap: the sibling questions were only asked of respondents aged
// 40 or under, so an older head's count is unasked, not zero.
const siblingAgeCap = 40

// ExtractHeads builds the one-row-per-household head-proxy frame from the
// individual table.  The respondent (relationship code 1) stands in for
// the household head; respondents younger than 16, or with no usable birth
// year, are dropped and counted, and when a household somehow has several
// respondents the first row wins.
//
// The relationship-code and birth-year fields are structural
// preconditions: without them there is no meaningful result and the run
// aborts.  The remaining controls degrade to missing.
func ExtractHeads(ind *chfs.Table, rpt *Report) (*chfs.Table, error) {
	var (
		hhid, relation, birthYear *chfs.Col
		e                         error
	)

	if hhid, e = ind.Column(FieldHHID); e != nil {
		return nil, fmt.Errorf("individual table: %w", e)
	}

	if relation, e = ind.Column(FieldRelation); e != nil {
		return nil, fmt.Errorf("cannot identify the head proxy: %w", e)
	}

	if birthYear, e = ind.Column(FieldBirthYear); e != nil {
		return nil, fmt.Errorf("cannot compute the head proxy's age: %w", e)
	}

	n := ind.RowCount()
	sex := optional(ind, FieldSex, rpt)
	educ := optional(ind, FieldEduc, rpt)
	marital := optional(ind, FieldMarital, rpt)
	health := optional(ind, FieldHealth, rpt)

	// an absent sibling-count field reads as zero siblings of that kind
	brothers := chfs.FillZero(optionalZero(ind, FieldBrothers, n))
	sisters := chfs.FillZero(optionalZero(ind, FieldSisters, n))

	ids := hhid.Floats()
	rel := relation.Floats()
	born := birthYear.Floats()

	seen := make(map[float64]bool)
	var (
		outID, outAge, outSex, outEduc, outMarital, outHealth, outSiblings []float64
	)

	for row := 0; row < n; row++ {
		if rel[row] != 1 {
			continue
		}
		rpt.Respondents++

		// a missing birth year fails the comparison and drops with the underage
		age := SurveyYear - born[row]
		if !(age >= minHeadAge) {
			rpt.UnderageDropped++
			continue
		}

		// first occurrence wins
		if seen[ids[row]] {
			continue
		}
		seen[ids[row]] = true

		siblings := chfs.Missing()
		if age <= siblingAgeCap {
			siblings = brothers[row] + sisters[row]
		}

		outID = append(outID, ids[row])
		outAge = append(outAge, age)
		outSex = append(outSex, sex[row])
		outEduc = append(outEduc, educ[row])
		outMarital = append(outMarital, marital[row])
		outHealth = append(outHealth, health[row])
		outSiblings = append(outSiblings, siblings)
	}

	if outID == nil {
		return nil, fmt.Errorf("no head proxies found in the individual table")
	}
	rpt.HeadHouseholds = len(outID)

	var cols []*chfs.Col
	for _, spec := range []struct {
		name string
		data []float64
	}{
		{FieldHHID, outID},
		{"head_age", outAge},
		{"head_sex", outSex},
		{"head_educ", outEduc},
		{"head_marital", outMarital},
		{"head_health", outHealth},
		{"head_siblings", outSiblings},
	} {
		var col *chfs.Col
		if col, e = chfs.NewCol(spec.name, spec.data); e != nil {
			return nil, e
		}

		cols = append(cols, col)
	}

	return chfs.NewTable(cols...)
}

// optional returns the field's data, or an all-missing slice when the wave
// did not collect it.
func optional(t *chfs.Table, fieldID string, rpt *Report) []float64 {
	var (
		col *chfs.Col
		e   error
	)

	if col, e = t.Column(fieldID); e != nil {
		rpt.SynthesizedColumns++
		return chfs.MissingCol(fieldID, t.RowCount()).Floats()
	}

	return col.Floats()
}

// optionalZero returns the field's data, or zeros when absent.
func optionalZero(t *chfs.Table, fieldID string, n int) []float64 {
	var (
		col *chfs.Col
		e   error
	)

	if col, e = t.Column(fieldID); e != nil {
		return make([]float64, n)
	}

	return col.Floats()
}

package reconcile

import (
	"fmt"

	"github.com/invertedv/chfs"
)

// RegressionVars are the variables the downstream models use; the report
// carries a missing count for each so the listwise-deletion cost is
// visible before any model runs.
var RegressionVars = []string{
	"debt_ratio_winsorized", "log_debt_ratio_winsorized", "head_siblings",
	"head_age", "head_is_male", "head_educ", "head_is_married", "head_health",
	"has_business", "num_houses", "log_total_assets",
}

// finalColumns is the analysis frame, in output order.
var finalColumns = []string{
	"hhid", "head_siblings", "debt_ratio", "debt_ratio_winsorized",
	"log_debt_ratio_winsorized", "total_debt", "total_assets",
	"head_age", "head_is_male", "head_educ", "head_is_married", "head_health",
	"has_business", "num_houses", "log_total_assets",
}

// Run reconciles the two raw extracts into the analysis frame.  The raw
// tables are not modified beyond appending synthesized catalog columns;
// every derived quantity lands in new columns.  Non-fatal conditions
// accumulate in the returned Report; the only fatal errors are structural
// (a missing identifying field).
func Run(hh, ind *chfs.Table) (*chfs.Table, *Report, error) {
	rpt := NewReport()

	if !hh.HasColumn(FieldHHID) {
		return nil, nil, fmt.Errorf("household table has no %s column", FieldHHID)
	}

	var (
		heads *chfs.Table
		e     error
	)

	if heads, e = ExtractHeads(ind, rpt); e != nil {
		return nil, nil, e
	}

	var joined *chfs.Table
	if joined, rpt.DuplicateJoinKeys, e = hh.LeftJoin(heads, FieldHHID); e != nil {
		return nil, nil, e
	}

	debtCatalog, assetCatalog := DebtConcepts(), AssetConcepts()
	allConcepts := append(append([]Concept{}, debtCatalog...), assetCatalog...)
	allConcepts = append(allConcepts, VehicleInBusiness)

	var synthesized int
	if synthesized, e = EnsureColumns(joined, allConcepts); e != nil {
		return nil, nil, e
	}
	rpt.SynthesizedColumns += synthesized

	var debtCols, assetCols [][]float64
	if debtCols, e = CoalesceAll(joined, debtCatalog); e != nil {
		return nil, nil, e
	}

	if assetCols, e = CoalesceAll(joined, assetCatalog); e != nil {
		return nil, nil, e
	}

	var vehicleAdj []float64
	if vehicleAdj, e = Coalesce(joined, VehicleInBusiness); e != nil {
		return nil, nil, e
	}

	tot := Aggregate(debtCols, assetCols, vehicleAdj)

	derived := map[string][]float64{
		"total_debt":            tot.Debt,
		"total_assets":          tot.Assets,
		"debt_ratio":            tot.Ratio,
		"debt_ratio_winsorized": Winsorize(tot.Ratio),
		"log_total_assets":      LogAssets(tot.Assets),
		"head_is_male":          MaleIndicator(columnOr(joined, "head_sex", rpt)),
		"head_is_married":       MarriedIndicator(columnOr(joined, "head_marital", rpt)),
		"has_business":          BusinessIndicator(columnOr(joined, FieldHasBusiness, rpt)),
		"num_houses":            chfs.FillZero(columnOr(joined, FieldNumHouses, rpt)),
	}
	derived["log_debt_ratio_winsorized"] = LogRatio(derived["debt_ratio_winsorized"])

	for name, data := range derived {
		var col *chfs.Col
		if col, e = chfs.NewCol(name, data); e != nil {
			return nil, nil, e
		}

		if e = joined.AppendColumn(col); e != nil {
			return nil, nil, e
		}
	}

	var out *chfs.Table
	if out, e = joined.KeepColumns(finalColumns...); e != nil {
		return nil, nil, e
	}
	out = out.Copy()

	rpt.Rows = out.RowCount()
	for _, nm := range RegressionVars {
		var col *chfs.Col
		if col, e = out.Column(nm); e != nil {
			return nil, nil, e
		}

		rpt.Missing[nm] = col.CountMissing()
	}

	return out, rpt, nil
}

// columnOr returns a column's data, synthesizing all-missing when the
// wave lacks the field.
func columnOr(t *chfs.Table, fieldID string, rpt *Report) []float64 {
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

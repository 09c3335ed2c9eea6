package reconcile

import (
	"fmt"
	"sort"
	"strings"
)

// Report accumulates the non-fatal diagnostics of a reconciliation run so
// callers can audit how much of the sample each policy touched before
// trusting downstream estimates.
type Report struct {
	// head-proxy extraction
	Respondents     int // individuals with the respondent relationship code
	UnderageDropped int // respondents excluded by the age-16 floor or an unknown birth year
	HeadHouseholds  int // households with a head proxy after dedup

	// household-table reconciliation
	SynthesizedColumns int // catalog fields absent from the wave, created all-missing
	DuplicateJoinKeys  int // repeated hhid values seen on the head-proxy side of the join

	// final analysis frame
	Rows    int
	Missing map[string]int // missing count per regression variable
}

func NewReport() *Report {
	return &Report{Missing: make(map[string]int)}
}

// MissingPct is the share of rows missing colName, in percent.
func (r *Report) MissingPct(colName string) float64 {
	if r.Rows == 0 {
		return 0
	}

	return 100 * float64(r.Missing[colName]) / float64(r.Rows)
}

func (r *Report) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("respondents: %d (underage dropped: %d), head households: %d\n",
		r.Respondents, r.UnderageDropped, r.HeadHouseholds))
	sb.WriteString(fmt.Sprintf("synthesized columns: %d, duplicate join keys: %d, rows: %d\n",
		r.SynthesizedColumns, r.DuplicateJoinKeys, r.Rows))

	var names []string
	for nm, cnt := range r.Missing {
		if cnt > 0 {
			names = append(names, nm)
		}
	}
	sort.Slice(names, func(i, j int) bool { return r.Missing[names[i]] > r.Missing[names[j]] })

	for _, nm := range names {
		sb.WriteString(fmt.Sprintf("  missing %-28s %7d (%.1f%%)\n", nm, r.Missing[nm], r.MissingPct(nm)))
	}

	return sb.String()
}

// Package brackets resolves CHFS 2017 interval-coded responses to point
// estimates.  When a respondent declines an exact amount, the questionnaire
// falls back to a coarse bracket; each bracket maps to its midpoint, and the
// open-ended top bracket to 1.5x its lower bound.  The tables below are the
// questionnaire's brackets reproduced exactly -- they are instrument
// constants, not something to infer or extrapolate.
package brackets

import (
	"github.com/invertedv/chfs"
)

// Table maps an interval code to the bracket's estimated value.  Units are
// yuan except where noted.
type Table map[int]float64

var (
	// business values, stocks, bonds, funds, gold et al. (Q158, Q172, Q181 etc.)
	amounts1 = Table{1: 5000, 2: 20000, 3: 40000, 4: 60000, 5: 85000,
		6: 200000, 7: 400000, 8: 750000, 9: 3000000, 10: 7500000, 11: 15000000}

	// business loans, vehicles, deposits, durables and most debt items (Q164, Q178 etc.)
	amounts3 = Table{1: 5000, 2: 15000, 3: 35000, 4: 75000, 5: 150000,
		6: 250000, 7: 400000, 8: 750000, 9: 1500000, 10: 3500000, 11: 7500000}

	// cash, receivables, misc finance products (Q190, Q122 etc.)
	amounts4 = Table{1: 2500, 2: 7500, 3: 15000, 4: 35000, 5: 75000,
		6: 125000, 7: 175000, 8: 250000, 9: 400000, 10: 750000, 11: 1500000}

	// small business receivables (Q230)
	amounts5 = Table{1: 500, 2: 1500, 3: 3500, 4: 7500, 5: 15000, 6: 35000, 7: 75000, 8: 150000}

	// floor area of the residence, unit sqm (Q282)
	area6 = Table{1: 25, 2: 60.5, 3: 80.5, 4: 95.5, 5: 110.5, 6: 132, 7: 172, 8: 300}

	// residence value (Q284)
	amounts7 = Table{1: 50000, 2: 200000, 3: 400000, 4: 600000, 5: 850000,
		6: 1250000, 7: 2250000, 8: 4000000, 9: 6000000, 10: 8500000,
		11: 12500000, 12: 17500000, 13: 30000000}

	// land value (Q320)
	amounts8 = Table{1: 5000, 2: 15000, 3: 35000, 4: 75000, 5: 150000,
		6: 250000, 7: 400000, 8: 750000, 9: 1500000, 10: 3500000,
		11: 6000000, 12: 8500000, 13: 12500000, 14: 17500000, 15: 30000000}

	// house purchase price and current value (Q335, Q338)
	amounts9 = Table{1: 5000, 2: 20000, 3: 40000, 4: 60000, 5: 85000,
		6: 200000, 7: 400000, 8: 750000, 9: 3000000, 10: 7500000,
		11: 12500000, 12: 17500000, 13: 30000000}

	// house loans (Q344, Q347, Q361)
	amounts10 = Table{1: 50000, 2: 150000, 3: 350000, 4: 650000, 5: 900000,
		6: 1250000, 7: 1750000, 8: 3500000, 9: 6500000, 10: 9000000, 11: 15000000}

	// rent (Q355)
	amounts11 = Table{1: 500, 2: 2000, 3: 4000, 4: 6500, 5: 9000,
		6: 12500, 7: 17500, 8: 25000, 9: 40000, 10: 75000}

	// non-bank house borrowing (Q364, Q366)
	amounts12 = Table{1: 25000, 2: 75000, 3: 150000, 4: 250000, 5: 400000,
		6: 650000, 7: 900000, 8: 1250000, 9: 1750000, 10: 3500000, 11: 7500000}

	// other property and securities positions (Q468, Q470, Q616, Q620)
	amounts13 = Table{1: 5000, 2: 15000, 3: 35000, 4: 75000, 5: 150000,
		6: 250000, 7: 400000, 8: 750000, 9: 1500000, 10: 3500000, 11: 7500000}

	// durables, transfers, insurance premia (Q534, Q809 etc.)
	amounts14 = Table{1: 1000, 2: 3500, 3: 7500, 4: 15000, 5: 35000,
		6: 75000, 7: 125000, 8: 175000, 9: 250000, 10: 400000, 11: 750000}

	// foreign-currency deposits (Q625)
	amounts15 = Table{1: 10000, 2: 35000, 3: 75000, 4: 150000, 5: 350000,
		6: 750000, 7: 1500000, 8: 3500000, 9: 7500000, 10: 15000000, 11: 30000000}

	// other household borrowing (Q706)
	amounts16 = Table{1: 5000, 2: 15000, 3: 35000, 4: 75000, 5: 150000,
		6: 250000, 7: 400000, 8: 750000, 9: 1500000, 10: 3500000, 11: 7500000}

	// monthly wage income (Q713)
	amounts17 = Table{1: 25, 2: 75, 3: 125, 4: 225, 5: 400, 6: 650, 7: 1150,
		8: 2250, 9: 4000, 10: 7500, 11: 15000, 12: 25000, 13: 40000, 14: 75000}

	// agricultural expenses (Q737); the instrument skips code 4
	amounts18 = Table{1: 100, 2: 250, 3: 400,
		5: 750, 6: 1500, 7: 2500, 8: 4000, 9: 6500, 10: 11500, 11: 17500, 12: 30000}

	// agricultural income (Q740); the instrument skips code 4
	amounts19 = Table{1: 500, 2: 2000, 3: 4000,
		5: 7500, 6: 15000, 7: 35000, 8: 75000, 9: 125000, 10: 175000,
		11: 250000, 12: 400000, 13: 750000, 14: 1500000}

	// social insurance contributions (Q902)
	amounts20 = Table{1: 250, 2: 750, 3: 1500, 4: 3500, 5: 7500, 6: 15000, 7: 30000}

	// pension benefits (Q906, Q909)
	amounts21 = Table{1: 250, 2: 750, 3: 2000, 4: 4000, 5: 7500, 6: 15000, 7: 35000, 8: 75000}

	// medical insurance (Q918, Q920, Q922)
	amounts22 = Table{1: 50, 2: 300, 3: 750, 4: 3000, 5: 7500, 6: 30000, 7: 75000}

	// commercial insurance premia (Q826)
	amounts23 = Table{1: 150, 2: 450, 3: 800, 4: 1250, 5: 2250, 6: 4500,
		7: 8000, 8: 15000, 9: 35000, 10: 75000, 11: 150000}
)

// bound is the immutable binding from normalized interval field id to its
// bracket table, built once at process start.
var bound = map[string]Table{}

func bind(t Table, fieldIDs ...string) {
	for _, id := range fieldIDs {
		bound[id] = t
	}
}

func init() {
	bind(amounts1, "b2003ait", "b2050it", "b2059it", "b2063it", "b2080it",
		"d3109it", "d3110it", "d4103it", "d5107it", "d5108it", "d6100ait",
		"d8104it", "d9103it", "d9110ait", "k2102cit", "c3019ait",
		// Q162, Q175 share the same brackets
		"b2003bit", "b2052it")
	bind(amounts3, "b2003eit", "b2055it", "a3136it", "d3117it", "b2046it",
		"b3004bit", "b3005bit", "b3005it", "b3006ait", "b3030dit", "b3030eit",
		"b3031ait", "b3045cit", "b3056ait", "c3017cait", "c3019cit", "c3019eit",
		"c7052bit", "c7060it", "c7061it", "c7062it", "c8007it", "d1105it",
		"d2104it", "d3103it", "d7106hit", "d7110ait", "e1006it", "e1022it",
		"e3003cit", "e4003it", "h2004it", "c2035ait")
	bind(amounts4, "b2093it", "a3136ait", "a3136bit", "a3137it", "b2110it",
		"d5109it", "d7106jit", "d7112it", "d9105it", "d9108it", "d9110bit",
		"k1101it", "k2208it", "f1010it", "f1031it")
	bind(amounts5, "b3008fit")
	bind(area6, "c1000bbit")
	bind(amounts7, "c1000bdit")
	bind(amounts8, "c2000fit")
	bind(amounts9, "c2013it", "c2016it")
	bind(amounts10, "c2027dit", "c2032it", "c2064it")
	bind(amounts11, "c2045it")
	bind(amounts12, "c3002it", "c3002ait")
	bind(amounts13, "c3024it", "c3025it", "d4111it", "d6116it")
	bind(amounts14, "c8002ait", "g1017it", "g1018it", "g1019it", "g1019ait",
		"g1020it", "c8005ait", "f2006it", "f4011it")
	bind(amounts15, "d8106it")
	bind(amounts16, "e3005cit")
	bind(amounts17, "f1005it")
	bind(amounts18, "f4005it")
	bind(amounts19, "f4008it")
	bind(amounts20, "h3351it")
	bind(amounts21, "h3354it", "h3356it")
	bind(amounts22, "h3367it", "h3368it", "h3369it")
	bind(amounts23, "g1024it")
}

// Normalize strips the trailing household-member-slot suffix so slot
// variants of one concept share a table: c2016it_1 -> c2016it.
func Normalize(fieldID string) string {
	if n := len(fieldID); n > 2 && fieldID[n-2] == '_' {
		return fieldID[:n-2]
	}

	return fieldID
}

// Bound reports whether fieldID has a bracket table.
func Bound(fieldID string) bool {
	_, ok := bound[Normalize(fieldID)]
	return ok
}

// Resolve maps an interval code to the estimated value for fieldID.  A
// missing code, a field with no bracket table, or a code absent from the
// table (including 0 and the gaps some tables have) all resolve to
// missing -- never to 0 or a neighboring bracket.
func Resolve(code float64, fieldID string) float64 {
	if chfs.IsMissing(code) {
		return chfs.Missing()
	}

	c := int(code)
	if float64(c) != code {
		return chfs.Missing()
	}

	var (
		t  Table
		ok bool
	)

	if t, ok = bound[Normalize(fieldID)]; !ok {
		return chfs.Missing()
	}

	var v float64
	if v, ok = t[c]; !ok {
		return chfs.Missing()
	}

	return v
}

// Package reconcile turns the two raw CHFS 2017 extracts into one
// analysis-ready household table: it coalesces exact and interval-coded
// amounts, totals debts and assets per household, attaches the household
// head proxy's controls, and derives the bounded debt-ratio columns.
package reconcile

import "fmt"

// SurveyYear is the CHFS wave reference year; ages are SurveyYear minus
// birth year.
const SurveyYear = 2017

// Concept pairs one financial concept's exact-amount field with its
// interval-coded twin.  Interval is empty when the questionnaire collects
// no bracketed fallback for the concept.
type Concept struct {
	Exact    string
	Interval string
}

// slots builds the slot variants of a repeated field pair, e.g. the six
// house entries c2016_1..c2016_6 / c2016it_1..c2016it_6.
func slots(exact, interval string, n int) []Concept {
	var out []Concept
	for i := 1; i <= n; i++ {
		out = append(out, Concept{
			Exact:    fmt.Sprintf("%s_%d", exact, i),
			Interval: fmt.Sprintf("%s_%d", interval, i),
		})
	}

	return out
}

// DebtConcepts is the fixed catalog of household debt components:
// business loans, house loans by slot, shop loans, vehicle loans, durable
// goods credit, margin and other financial debt, education loans, medical
// debt and other debts.
func DebtConcepts() []Concept {
	out := []Concept{
		{Exact: "b3005b_2"},                        // business bank loan
		{Exact: "b3031a_2", Interval: "b3031ait_2"}, // business private loan
	}
	out = append(out, slots("c2064", "c2064it", 6)...)   // house bank loans
	out = append(out, slots("c3002a", "c3002ait", 6)...) // house non-bank loans
	out = append(out, []Concept{
		{Exact: "c2023e", Interval: "c2023eit"},   // other-house aggregate debt
		{Exact: "c3017ca", Interval: "c3017cait"}, // house-collateral loan
		{Exact: "c3019c", Interval: "c3019cit"},   // shop bank loan
		{Exact: "c3019e", Interval: "c3019eit"},   // shop other loan
		{Exact: "c7060", Interval: "c7060it"},     // car loan
		{Exact: "c7061", Interval: "c7061it"},     // other vehicle loan
		{Exact: "c8007", Interval: "c8007it"},     // durable goods debt
		{Exact: "d3116b"},                         // margin debt on non-public stock
		{Exact: "d9108", Interval: "d9108it"},     // other financial debt
		{Exact: "e1006", Interval: "e1006it"},     // education bank loan
		{Exact: "e1022", Interval: "e1022it"},     // education private loan
		{Exact: "e4003", Interval: "e4003it"},     // medical debt
		{Exact: "e3003c", Interval: "e3003cit"},   // other debt
	}...)

	return out
}

// AssetConcepts is the fixed catalog of household asset components:
// business assets, houses by slot, shops, vehicles, durables, deposits,
// stocks, funds, bonds by slot, derivatives, foreign currency, gold, cash
// and receivables.
func AssetConcepts() []Concept {
	out := []Concept{
		{Exact: "b2003d", Interval: "b2003dit"}, // business net assets
	}
	out = append(out, slots("c2016", "c2016it", 6)...) // house values
	out = append(out, []Concept{
		{Exact: "c2023d", Interval: "c2023dit"},   // other-house aggregate value
		{Exact: "c3019a", Interval: "c3019ait"},   // shop value
		{Exact: "c7052b", Interval: "c7052bit"},   // car value
		{Exact: "c7059"},                          // commercial vehicle value
		{Exact: "c7058"},                          // other vehicle value
		{Exact: "c8002"},                          // durable goods value
		{Exact: "c8005"},                          // other non-financial assets
		{Exact: "d1105", Interval: "d1105it"},     // checking deposits
		{Exact: "d2104", Interval: "d2104it"},     // savings deposits
		{Exact: "d3103", Interval: "d3103it"},     // cash in stock accounts
		{Exact: "d3109", Interval: "d3109it"},     // stock market value
		{Exact: "d3116", Interval: "d3116it"},     // non-public stock value
		{Exact: "d5107", Interval: "d5107it"},     // fund value
		{Exact: "d7106h", Interval: "d7106hit"},   // internet finance products
		{Exact: "d7110a", Interval: "d7110ait"},   // other finance products
	}...)
	out = append(out, slots("d4103", "d4103it", 5)...) // bond values
	out = append(out, []Concept{
		{Exact: "d6100a", Interval: "d6100ait"}, // derivatives
		{Exact: "d8104", Interval: "d8104it"},   // non-RMB assets
		{Exact: "d9103", Interval: "d9103it"},   // gold
		{Exact: "d9110a", Interval: "d9110ait"}, // other financial assets
		{Exact: "k1101", Interval: "k1101it"},   // cash on hand
		{Exact: "k2102c", Interval: "k2102cit"}, // receivables
	}...)

	return out
}

// VehicleInBusiness is the vehicle value reported both as a personal asset
// and inside business assets; the aggregator subtracts it once.
var VehicleInBusiness = Concept{Exact: "c7062", Interval: "c7062it"}

// Individual-table fields consumed by the head-proxy extractor.
const (
	FieldHHID      = "hhid"
	FieldRelation  = "a2001"  // relationship code, 1 marks the respondent
	FieldBirthYear = "a2005"
	FieldSex       = "a2003"  // 1 = male, 2 = female
	FieldEduc      = "a2012"
	FieldBrothers  = "a2028"
	FieldSisters   = "a2029"
	FieldMarital   = "a2024"
	FieldHealth    = "a2025b" // self-rated vs peers, 1 = very good .. 5 = very poor
)

// Household-table fields consumed by the control builder.
const (
	FieldHasBusiness = "b2000b" // 1 = operates a business
	FieldNumHouses   = "c2002"
)

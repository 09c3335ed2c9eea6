package model

import (
	"fmt"
	"strings"

	"github.com/invertedv/chfs"
)

// Summary is the usual descriptive block for one variable, computed over
// its finite entries.
type Summary struct {
	Name string
	N    int

	Mean, SDev              float64
	Min, Q25, Q50, Q75, Max float64
}

// Describe summarizes the named columns of t.
func Describe(t *chfs.Table, colNames ...string) ([]*Summary, error) {
	var out []*Summary

	for _, nm := range colNames {
		var (
			col *chfs.Col
			e   error
		)

		if col, e = t.Column(nm); e != nil {
			return nil, e
		}

		out = append(out, summarize(nm, col.Floats()))
	}

	return out, nil
}

// Describe summarizes the frame's retained rows, so the descriptives
// cover the same sample the fits used rather than the full table.
func (f *Frame) Describe() []*Summary {
	out := []*Summary{summarize(f.DV, f.y)}
	for ind, nm := range f.IVs {
		out = append(out, summarize(nm, f.x[ind]))
	}

	return out
}

func summarize(name string, data []float64) *Summary {
	x := chfs.Finite(data)
	s := &Summary{Name: name, N: len(x)}
	if len(x) > 0 {
		s.Mean = chfs.Mean(x)
		s.SDev = chfs.SDev(x)
		s.Min = chfs.Quantile(0, x)
		s.Q25 = chfs.Quantile(0.25, x)
		s.Q50 = chfs.Quantile(0.5, x)
		s.Q75 = chfs.Quantile(0.75, x)
		s.Max = chfs.Quantile(1, x)
	}

	return s
}

func (s *Summary) String() string {
	return fmt.Sprintf("%-28s n %7d  mean %14.4f  sd %14.4f  min %12.4f  q50 %12.4f  max %14.4f",
		s.Name, s.N, s.Mean, s.SDev, s.Min, s.Q50, s.Max)
}

func (r *OLSResults) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("OLS  n = %d, R2 = %.4f\n", r.N, r.R2))
	for ind, nm := range r.Names {
		sb.WriteString(fmt.Sprintf("  %-24s %14.6f\n", nm, r.Coef[ind]))
	}

	return sb.String()
}

func (r *HuberResults) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("huber  n = %d, scale = %.6f, iterations = %d\n", r.N, r.Scale, r.Iter))
	for ind, nm := range r.Names {
		sb.WriteString(fmt.Sprintf("  %-24s %14.6f\n", nm, r.Coef[ind]))
	}

	return sb.String()
}

func (r *RidgeResults) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ridge  n = %d, alpha = %v, R2 = %.4f, intercept = %.6f\n",
		r.N, r.Alpha, r.R2, r.Intercept))
	for ind, nm := range r.Names {
		sb.WriteString(fmt.Sprintf("  %-24s %14.6f\n", nm, r.Coef[ind]))
	}

	return sb.String()
}

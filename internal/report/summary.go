package report

import (
	"math"

	"github.com/alexanderramin/suivi/internal/domain"
)

// Summary holds the dashboard's scalar metrics.
type Summary struct {
	RowCount      int
	OwnerCount    int
	TotalBudget   float64
	MeanProgress  float64 // NaN when no row has a progress value
	TotalVariance float64
}

// HasMeanProgress reports whether MeanProgress is defined.
func (s Summary) HasMeanProgress() bool { return !math.IsNaN(s.MeanProgress) }

// Summarize computes the metrics of ds. Missing values are excluded from
// sums and the mean. A missing or blank owner counts as one distinct owner.
func Summarize(ds *domain.Dataset) Summary {
	s := Summary{RowCount: ds.Len(), MeanProgress: math.NaN()}

	owners := make(map[string]struct{})
	for _, v := range ds.Column(domain.ColOwner) {
		owners[v.Label()] = struct{}{}
	}
	if ds.Len() > 0 {
		s.OwnerCount = len(owners)
	}

	s.TotalBudget = sum(ds.Column(domain.ColBudget))
	s.TotalVariance = sum(ds.Column(domain.ColBudgetVariance))

	var total float64
	var n int
	for _, v := range ds.Column(domain.ColProgress) {
		if f, ok := v.Float(); ok {
			total += f
			n++
		}
	}
	if n > 0 {
		s.MeanProgress = total / float64(n)
	}
	return s
}

func sum(values []domain.Value) float64 {
	var total float64
	for _, v := range values {
		if f, ok := v.Float(); ok {
			total += f
		}
	}
	return total
}

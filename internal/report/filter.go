package report

import (
	"time"

	"github.com/alexanderramin/suivi/internal/domain"
)

// Filter narrows ds by status, then owner, then planned date range. Row
// order is preserved and no row is duplicated. An empty selection returns
// a dataset equal to ds.
func Filter(ds *domain.Dataset, sel domain.FilterSelection) *domain.Dataset {
	statuses := toSet(sel.Statuses)
	owners := toSet(sel.Owners)

	var minStart, maxEnd *time.Time
	if sel.MinStart != nil {
		d := day(*sel.MinStart)
		minStart = &d
	}
	if sel.MaxEnd != nil {
		d := day(*sel.MaxEnd)
		maxEnd = &d
	}

	kept := make([]domain.Row, 0, ds.Len())
	for _, row := range ds.Rows {
		if statuses != nil && !statuses[row.Get(ds, domain.ColStatus).Label()] {
			continue
		}
		if owners != nil && !owners[row.Get(ds, domain.ColOwner).Label()] {
			continue
		}
		if minStart != nil {
			start, ok := row.Get(ds, domain.ColPlannedStart).Time()
			if !ok || day(start).Before(*minStart) {
				continue
			}
		}
		if maxEnd != nil {
			end, ok := row.Get(ds, domain.ColPlannedEnd).Time()
			if !ok || day(end).After(*maxEnd) {
				continue
			}
		}
		kept = append(kept, row)
	}
	return ds.WithRows(kept)
}

// Bounds is the observed planned date range of a dataset.
type Bounds struct {
	MinStart *time.Time
	MaxEnd   *time.Time
}

// DateBounds returns the earliest planned start and latest planned end.
// Either is nil when the column has no dates.
func DateBounds(ds *domain.Dataset) Bounds {
	var b Bounds
	for _, v := range ds.Column(domain.ColPlannedStart) {
		if t, ok := v.Time(); ok && (b.MinStart == nil || t.Before(*b.MinStart)) {
			t := t
			b.MinStart = &t
		}
	}
	for _, v := range ds.Column(domain.ColPlannedEnd) {
		if t, ok := v.Time(); ok && (b.MaxEnd == nil || t.After(*b.MaxEnd)) {
			t := t
			b.MaxEnd = &t
		}
	}
	return b
}

// FilterOptions lists the values selection widgets offer.
type FilterOptions struct {
	Statuses []string
	Owners   []string
}

// Options returns the distinct statuses and owners of ds in order of first
// appearance. Missing values are skipped.
func Options(ds *domain.Dataset) FilterOptions {
	return FilterOptions{
		Statuses: distinctLabels(ds.Column(domain.ColStatus)),
		Owners:   distinctLabels(ds.Column(domain.ColOwner)),
	}
}

func distinctLabels(values []domain.Value) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		l := v.Label()
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package domain

import "fmt"

// ChartSpec is the user's axis and kind configuration for one chart.
// Column lists are already resolved against the catalog.
type ChartSpec struct {
	Title      string
	Kind       ChartKind
	X          []Column
	Y          []Column
	SecondaryY []Column
}

// Complete reports whether the spec can produce a chart: at least one X
// column and at least one Y column on either axis.
func (s ChartSpec) Complete() bool {
	return len(s.X) > 0 && (len(s.Y) > 0 || len(s.SecondaryY) > 0)
}

// ParseChartSpec resolves raw column names from a selection widget. X
// columns may be any known column; Y columns must be numeric.
func ParseChartSpec(title, kind string, xs, ys, y2s []string) (ChartSpec, error) {
	spec := ChartSpec{Title: title, Kind: ChartBar}
	if kind != "" {
		k, err := ParseChartKind(kind)
		if err != nil {
			return ChartSpec{}, err
		}
		spec.Kind = k
	}

	for _, name := range xs {
		c, err := LookupColumn(name)
		if err != nil {
			return ChartSpec{}, fmt.Errorf("x axis: %w", err)
		}
		spec.X = append(spec.X, c)
	}
	for _, name := range ys {
		c, err := LookupNumericColumn(name)
		if err != nil {
			return ChartSpec{}, fmt.Errorf("y axis: %w", err)
		}
		spec.Y = append(spec.Y, c)
	}
	for _, name := range y2s {
		c, err := LookupNumericColumn(name)
		if err != nil {
			return ChartSpec{}, fmt.Errorf("secondary y axis: %w", err)
		}
		spec.SecondaryY = append(spec.SecondaryY, c)
	}
	return spec, nil
}

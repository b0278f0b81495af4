package domain

import "time"

// FilterSelection narrows a dataset. Empty slices and nil dates mean "no
// constraint"; the zero value keeps every row.
type FilterSelection struct {
	Statuses []string
	Owners   []string
	MinStart *time.Time
	MaxEnd   *time.Time
}

// IsEmpty reports whether the selection constrains nothing.
func (s FilterSelection) IsEmpty() bool {
	return len(s.Statuses) == 0 && len(s.Owners) == 0 && s.MinStart == nil && s.MaxEnd == nil
}

package testutil

import (
	"time"

	"github.com/alexanderramin/suivi/internal/domain"
)

// Record is a test row keyed by column. Columns left unset are Missing.
type Record map[domain.Column]domain.Value

// RecordOption customizes a test record.
type RecordOption func(Record)

func WithTask(task string) RecordOption {
	return func(r Record) { r[domain.ColTask] = domain.Text(task) }
}

func WithOwner(owner string) RecordOption {
	return func(r Record) { r[domain.ColOwner] = domain.Text(owner) }
}

func WithStatus(status string) RecordOption {
	return func(r Record) { r[domain.ColStatus] = domain.Text(status) }
}

func WithBudget(b float64) RecordOption {
	return func(r Record) { r[domain.ColBudget] = domain.Number(b) }
}

func WithProgress(p float64) RecordOption {
	return func(r Record) { r[domain.ColProgress] = domain.Number(p) }
}

func WithRealDays(d float64) RecordOption {
	return func(r Record) { r[domain.ColRealDays] = domain.Number(d) }
}

func WithVariance(v float64) RecordOption {
	return func(r Record) { r[domain.ColBudgetVariance] = domain.Number(v) }
}

func WithConsumed(c float64) RecordOption {
	return func(r Record) { r[domain.ColConsumedBudget] = domain.Number(c) }
}

// WithDates sets planned start and end from YYYY-MM-DD strings.
func WithDates(start, end string) RecordOption {
	return func(r Record) {
		r[domain.ColPlannedStart] = domain.Date(Day(start))
		r[domain.ColPlannedEnd] = domain.Date(Day(end))
	}
}

// WithCell sets any column to an arbitrary value, including Missing.
func WithCell(col domain.Column, v domain.Value) RecordOption {
	return func(r Record) { r[col] = v }
}

// WithMissing clears the given columns.
func WithMissing(cols ...domain.Column) RecordOption {
	return func(r Record) {
		for _, c := range cols {
			r[c] = domain.Missing()
		}
	}
}

// NewTestRecord returns a fully populated, already-normalized record.
func NewTestRecord(subTask string, opts ...RecordOption) Record {
	r := Record{
		domain.ColProjectTitle:     domain.Text("Projet Alpha"),
		domain.ColTask:             domain.Text("Conception"),
		domain.ColSubTask:          domain.Text(subTask),
		domain.ColBudget:           domain.Number(1000),
		domain.ColOwner:            domain.Text("Rivo"),
		domain.ColPlannedStart:     domain.Date(Day("2024-01-01")),
		domain.ColPlannedEnd:       domain.Date(Day("2024-01-31")),
		domain.ColStatus:           domain.Text("Open"),
		domain.ColProgress:         domain.Number(50),
		domain.ColEstimatedDays:    domain.Number(30),
		domain.ColRealDays:         domain.Number(20),
		domain.ColConsumedBudget:   domain.Number(500),
		domain.ColBudgetVariance:   domain.Number(500),
		domain.ColBudgetConsumePct: domain.Number(50),
		domain.ColComment:          domain.Missing(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RequiredHeaders returns the fifteen required header names in order.
func RequiredHeaders() []string {
	headers := make([]string, len(domain.RequiredColumns))
	for i, c := range domain.RequiredColumns {
		headers[i] = string(c)
	}
	return headers
}

// NewTestDataset builds a dataset with every required column from records.
func NewTestDataset(sheet string, records ...Record) *domain.Dataset {
	rows := make([]domain.Row, len(records))
	for i, rec := range records {
		row := make(domain.Row, len(domain.RequiredColumns))
		for j, c := range domain.RequiredColumns {
			row[j] = rec[c]
		}
		rows[i] = row
	}
	return domain.NewDataset(sheet, RequiredHeaders(), rows)
}

// Day parses a YYYY-MM-DD date and panics on malformed input.
func Day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// DayPtr is Day returning a pointer.
func DayPtr(s string) *time.Time {
	t := Day(s)
	return &t
}

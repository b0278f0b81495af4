package api

import (
	"time"

	"github.com/alexanderramin/suivi/internal/app"
	"github.com/alexanderramin/suivi/internal/domain"
)

type dashboardJSON struct {
	Sheet      string      `json:"sheet"`
	SourceRows int         `json:"source_rows"`
	Summary    summaryJSON `json:"summary"`
	Options    optionsJSON `json:"options"`
	Bounds     boundsJSON  `json:"bounds"`
	Schedule   []itemJSON  `json:"schedule"`
	Headers    []string    `json:"headers"`
	Rows       [][]any     `json:"rows"`
}

type summaryJSON struct {
	RowCount      int      `json:"row_count"`
	OwnerCount    int      `json:"owner_count"`
	TotalBudget   float64  `json:"total_budget"`
	MeanProgress  *float64 `json:"mean_progress"`
	TotalVariance float64  `json:"total_variance"`
}

type optionsJSON struct {
	Statuses []string `json:"statuses"`
	Owners   []string `json:"owners"`
}

type boundsJSON struct {
	MinStart *string `json:"min_start"`
	MaxEnd   *string `json:"max_end"`
}

type itemJSON struct {
	Task          string   `json:"task"`
	Start         *string  `json:"start"`
	End           *string  `json:"end"`
	RealDays      *float64 `json:"real_days"`
	AchievedDays  *float64 `json:"achieved_days"`
	RemainingDays *float64 `json:"remaining_days"`
	Color         string   `json:"color"`
}

func newDashboardJSON(resp *app.DashboardResponse) dashboardJSON {
	out := dashboardJSON{
		Sheet:      resp.Sheet,
		SourceRows: resp.Source,
		Summary: summaryJSON{
			RowCount:      resp.Summary.RowCount,
			OwnerCount:    resp.Summary.OwnerCount,
			TotalBudget:   resp.Summary.TotalBudget,
			TotalVariance: resp.Summary.TotalVariance,
		},
		Options: optionsJSON{
			Statuses: nonNil(resp.Options.Statuses),
			Owners:   nonNil(resp.Options.Owners),
		},
		Bounds: boundsJSON{
			MinStart: dateString(resp.Bounds.MinStart),
			MaxEnd:   dateString(resp.Bounds.MaxEnd),
		},
		Schedule: []itemJSON{},
		Headers:  resp.Filtered.Headers,
		Rows:     make([][]any, 0, resp.Filtered.Len()),
	}
	if resp.Summary.HasMeanProgress() {
		mean := resp.Summary.MeanProgress
		out.Summary.MeanProgress = &mean
	}
	for _, it := range resp.Schedule.Items {
		out.Schedule = append(out.Schedule, itemJSON{
			Task:          it.Task,
			Start:         dateString(it.Start),
			End:           dateString(it.End),
			RealDays:      it.RealDays,
			AchievedDays:  it.AchievedDays,
			RemainingDays: it.RemainingDays(),
			Color:         resp.Schedule.Colors[it.Task].String(),
		})
	}
	for _, row := range resp.Filtered.Rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = cellJSON(v)
		}
		out.Rows = append(out.Rows, cells)
	}
	return out
}

// cellJSON maps a cell to null, a number, or a string; dates use
// YYYY-MM-DD.
func cellJSON(v domain.Value) any {
	switch v.Kind {
	case domain.ValueNumber:
		return v.Number
	case domain.ValueText, domain.ValueDate:
		return v.String()
	default:
		return nil
	}
}

func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

package report

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/suivi/internal/domain"
)

// Color is an RGBA color with alpha in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

// String renders the color in CSS rgba() notation.
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c.R, c.G, c.B, c.A)
}

const taskAlpha = 0.6

// TaskColors assigns each label a color interpolated from blue to red by
// its rank among labels. Identical label orderings yield identical colors.
func TaskColors(labels []string) map[string]Color {
	colors := make(map[string]Color, len(labels))
	n := float64(len(labels))
	for i, l := range labels {
		if _, seen := colors[l]; seen {
			continue
		}
		f := float64(i) / n
		colors[l] = Color{R: uint8(255 * f), B: uint8(255 * (1 - f)), A: taskAlpha}
	}
	return colors
}

// Schedule is the per-row schedule projection of a dataset.
type Schedule struct {
	Items []domain.ScheduleItem
	// Tasks lists the distinct task labels in order of first appearance.
	Tasks  []string
	Colors map[string]Color
}

// Project derives one schedule item per row. Achieved duration is
// real duration times progress over 100, rounded half to even, and is nil
// when either operand is missing.
func Project(ds *domain.Dataset) *Schedule {
	s := &Schedule{Items: make([]domain.ScheduleItem, 0, ds.Len())}
	seen := make(map[string]bool)
	for _, row := range ds.Rows {
		item := domain.ScheduleItem{
			Task:     row.Get(ds, domain.ColSubTask).Label(),
			Start:    row.Get(ds, domain.ColPlannedStart).TimePtr(),
			End:      row.Get(ds, domain.ColPlannedEnd).TimePtr(),
			RealDays: row.Get(ds, domain.ColRealDays).FloatPtr(),
		}
		if progress, ok := row.Get(ds, domain.ColProgress).Float(); ok && item.RealDays != nil {
			achieved := AchievedDays(*item.RealDays, progress)
			item.AchievedDays = &achieved
		}
		s.Items = append(s.Items, item)

		if !seen[item.Task] {
			seen[item.Task] = true
			s.Tasks = append(s.Tasks, item.Task)
		}
	}
	s.Colors = TaskColors(s.Tasks)
	return s
}

// AchievedDays is round(real * progress / 100) with ties to even.
func AchievedDays(realDays, progressPct float64) float64 {
	return math.RoundToEven(realDays * progressPct / 100)
}

// Interval is one bar of the interval view.
type Interval struct {
	Task  string
	Start time.Time
	End   time.Time
	Color Color
}

// Intervals returns the interval view. Items missing a planned date are
// omitted.
func (s *Schedule) Intervals() []Interval {
	var out []Interval
	for _, it := range s.Items {
		if it.Start == nil || it.End == nil {
			continue
		}
		out = append(out, Interval{Task: it.Task, Start: *it.Start, End: *it.End, Color: s.Colors[it.Task]})
	}
	return out
}

// Segment is one stacked bar of the progress view. Completed and
// Remaining are nil when the achieved duration is undefined. Remaining is
// not clamped and may be negative.
type Segment struct {
	Task      string
	Completed *float64
	Remaining *float64
}

// Stacked returns the completed/remaining view, one segment per item.
func (s *Schedule) Stacked() []Segment {
	out := make([]Segment, 0, len(s.Items))
	for _, it := range s.Items {
		out = append(out, Segment{Task: it.Task, Completed: it.AchievedDays, Remaining: it.RemainingDays()})
	}
	return out
}

package domain

import "time"

// ScheduleItem is the per-row projection used by the schedule views.
// Optional fields are nil when the source cell is missing.
type ScheduleItem struct {
	Task         string
	Start        *time.Time
	End          *time.Time
	AchievedDays *float64
	RealDays     *float64
}

// RemainingDays is real minus achieved duration. It may be negative when
// progress exceeds 100% and is nil when either operand is missing.
func (s ScheduleItem) RemainingDays() *float64 {
	if s.AchievedDays == nil || s.RealDays == nil {
		return nil
	}
	r := *s.RealDays - *s.AchievedDays
	return &r
}

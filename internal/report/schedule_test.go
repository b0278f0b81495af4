package report

import (
	"testing"

	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/alexanderramin/suivi/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAchievedDays_RoundsHalfToEven(t *testing.T) {
	assert.Equal(t, 2.0, AchievedDays(5, 50))  // 2.5
	assert.Equal(t, 4.0, AchievedDays(7, 50))  // 3.5
	assert.Equal(t, 3.0, AchievedDays(10, 33)) // 3.3
	assert.Equal(t, 0.0, AchievedDays(10, 0))
}

func TestProject_MissingOperandPropagates(t *testing.T) {
	ds := testutil.NewTestDataset("P",
		testutil.NewTestRecord("a", testutil.WithRealDays(20), testutil.WithProgress(50)),
		testutil.NewTestRecord("b", testutil.WithMissing(domain.ColProgress)),
		testutil.NewTestRecord("c", testutil.WithMissing(domain.ColRealDays)),
	)
	s := Project(ds)
	require.Len(t, s.Items, 3)

	require.NotNil(t, s.Items[0].AchievedDays)
	assert.Equal(t, 10.0, *s.Items[0].AchievedDays)
	assert.Equal(t, 10.0, *s.Items[0].RemainingDays())

	assert.Nil(t, s.Items[1].AchievedDays)
	assert.Nil(t, s.Items[1].RemainingDays())
	assert.Nil(t, s.Items[2].AchievedDays)
	assert.Nil(t, s.Items[2].RealDays)
}

func TestProject_NegativeRemainingPreserved(t *testing.T) {
	ds := testutil.NewTestDataset("P",
		testutil.NewTestRecord("over", testutil.WithRealDays(10), testutil.WithProgress(150)),
	)
	seg := Project(ds).Stacked()
	require.Len(t, seg, 1)
	assert.Equal(t, 15.0, *seg[0].Completed)
	assert.Equal(t, -5.0, *seg[0].Remaining)
}

func TestTaskColors_InterpolatesByRank(t *testing.T) {
	colors := TaskColors([]string{"a", "b", "c", "d"})
	assert.Equal(t, "rgba(0, 0, 255, 0.6)", colors["a"].String())
	assert.Equal(t, "rgba(63, 0, 191, 0.6)", colors["b"].String())
	assert.Equal(t, "rgba(127, 0, 127, 0.6)", colors["c"].String())
	assert.Equal(t, "rgba(191, 0, 63, 0.6)", colors["d"].String())
}

func TestProject_ColorsStableAcrossRuns(t *testing.T) {
	ds := testutil.NewTestDataset("P",
		testutil.NewTestRecord("Maquette"),
		testutil.NewTestRecord("Revue"),
		testutil.NewTestRecord("Maquette", testutil.WithDates("2024-02-01", "2024-02-10")),
		testutil.NewTestRecord("Livraison"),
	)
	first := Project(ds)
	second := Project(ds.Clone())

	assert.Equal(t, []string{"Maquette", "Revue", "Livraison"}, first.Tasks)
	assert.Equal(t, first.Colors, second.Colors)
	assert.Len(t, first.Colors, 3)
}

func TestSchedule_IntervalsSkipUndated(t *testing.T) {
	ds := testutil.NewTestDataset("P",
		testutil.NewTestRecord("a", testutil.WithDates("2024-01-01", "2024-01-10")),
		testutil.NewTestRecord("b", testutil.WithMissing(domain.ColPlannedEnd)),
		testutil.NewTestRecord("a", testutil.WithDates("2024-02-01", "2024-02-10")),
	)
	s := Project(ds)
	iv := s.Intervals()

	require.Len(t, iv, 2)
	assert.Equal(t, testutil.Day("2024-01-01"), iv[0].Start)
	assert.Equal(t, testutil.Day("2024-02-10"), iv[1].End)
	assert.Equal(t, iv[0].Color, iv[1].Color, "same task shares a color")
	assert.Len(t, s.Stacked(), 3)
}

func TestProject_Empty(t *testing.T) {
	s := Project(testutil.NewTestDataset("P"))
	assert.Empty(t, s.Items)
	assert.Empty(t, s.Intervals())
	assert.Empty(t, s.Stacked())
}

package report

import (
	"math"
	"testing"

	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/alexanderramin/suivi/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSummarize_IgnoresMissingBudget(t *testing.T) {
	ds := testutil.NewTestDataset("P",
		testutil.NewTestRecord("a", testutil.WithBudget(1000)),
		testutil.NewTestRecord("b", testutil.WithMissing(domain.ColBudget)),
	)
	s := Summarize(ds)
	assert.Equal(t, 1000.0, s.TotalBudget)
	assert.False(t, math.IsNaN(s.TotalBudget))
}

func TestSummarize_AllProgressMissingIsUndefined(t *testing.T) {
	ds := testutil.NewTestDataset("P",
		testutil.NewTestRecord("a", testutil.WithMissing(domain.ColProgress)),
		testutil.NewTestRecord("b", testutil.WithMissing(domain.ColProgress)),
	)
	s := Summarize(ds)
	assert.True(t, math.IsNaN(s.MeanProgress))
	assert.NotEqual(t, 0.0, s.MeanProgress)
	assert.False(t, s.HasMeanProgress())
}

func TestSummarize_MeanExcludesMissing(t *testing.T) {
	ds := testutil.NewTestDataset("P",
		testutil.NewTestRecord("a", testutil.WithProgress(20)),
		testutil.NewTestRecord("b", testutil.WithProgress(60)),
		testutil.NewTestRecord("c", testutil.WithMissing(domain.ColProgress)),
	)
	s := Summarize(ds)
	assert.True(t, s.HasMeanProgress())
	assert.InDelta(t, 40.0, s.MeanProgress, 1e-9)
}

func TestSummarize_OwnersAndVariance(t *testing.T) {
	ds := testutil.NewTestDataset("P",
		testutil.NewTestRecord("a", testutil.WithOwner("Rivo"), testutil.WithVariance(100)),
		testutil.NewTestRecord("b", testutil.WithOwner("Hery"), testutil.WithVariance(-40)),
		testutil.NewTestRecord("c", testutil.WithOwner("Rivo"), testutil.WithMissing(domain.ColBudgetVariance)),
	)
	s := Summarize(ds)
	assert.Equal(t, 2, s.OwnerCount)
	assert.Equal(t, 60.0, s.TotalVariance)
	assert.Equal(t, 3, s.RowCount)
}

func TestSummarize_BlankOwnerCountsOnce(t *testing.T) {
	ds := testutil.NewTestDataset("P",
		testutil.NewTestRecord("a", testutil.WithMissing(domain.ColOwner)),
		testutil.NewTestRecord("b", testutil.WithOwner("")),
		testutil.NewTestRecord("c", testutil.WithOwner("Rivo")),
	)
	assert.Equal(t, 2, Summarize(ds).OwnerCount)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(testutil.NewTestDataset("P"))
	assert.Equal(t, 0, s.OwnerCount)
	assert.Equal(t, 0.0, s.TotalBudget)
	assert.Equal(t, 0.0, s.TotalVariance)
	assert.False(t, s.HasMeanProgress())
}

func TestPipeline_StatusFilterThenSummary(t *testing.T) {
	ds := testutil.NewTestDataset("P",
		testutil.NewTestRecord("first", testutil.WithStatus("Open"), testutil.WithOwner("Rivo")),
		testutil.NewTestRecord("second", testutil.WithStatus("Closed"), testutil.WithOwner("Hery")),
		testutil.NewTestRecord("third", testutil.WithStatus("Open"), testutil.WithOwner("Rivo")),
	)

	out := Filter(ds, domain.FilterSelection{Statuses: []string{"Open"}})

	assert.Equal(t, []string{"first", "third"}, subTasks(out))
	assert.Equal(t, 1, Summarize(out).OwnerCount)
}

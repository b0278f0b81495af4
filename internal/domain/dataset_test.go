package domain

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataset_PadsShortRows(t *testing.T) {
	ds := NewDataset("S", []string{"a", "b", "c"}, []Row{{Text("1")}})
	require.Len(t, ds.Rows[0], 3)
	assert.True(t, ds.Rows[0][2].IsMissing())
}

func TestDataset_GetAndColumn(t *testing.T) {
	ds := NewDataset("S", []string{string(ColOwner), string(ColBudget)}, []Row{
		{Text("Rivo"), Number(10)},
		{Text("Hery"), Missing()},
	})
	assert.Equal(t, "Rivo", ds.Get(0, ColOwner).Text)
	assert.True(t, ds.Get(1, ColBudget).IsMissing())
	assert.True(t, ds.Get(0, ColStatus).IsMissing(), "absent column reads as missing")
	assert.Len(t, ds.Column(ColBudget), 2)
	assert.Equal(t, -1, ds.Index(ColStatus))
}

func TestDataset_CloneIsIndependent(t *testing.T) {
	ds := NewDataset("S", []string{"a"}, []Row{{Text("x")}})
	c := ds.Clone()
	c.Rows[0][0] = Text("y")
	assert.Equal(t, "x", ds.Rows[0][0].Text)
	assert.False(t, ds.Equal(c))
}

func TestValue_NaNIsMissing(t *testing.T) {
	assert.True(t, Number(math.NaN()).IsMissing())
	assert.True(t, Number(math.Inf(1)).IsMissing())
	assert.True(t, Number(math.Inf(-1)).IsMissing())
	assert.False(t, Number(math.MaxFloat64).IsMissing())
	assert.False(t, Number(0).IsMissing())
	assert.False(t, Text("").IsMissing())
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "1500", Number(1500).String())
	assert.Equal(t, "2.5", Number(2.5).String())
	assert.Equal(t, "2024-03-01", Date(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)).String())
	assert.Equal(t, "", Missing().String())
}

func TestScheduleItem_RemainingDays(t *testing.T) {
	realDays, achieved := 10.0, 12.0
	item := ScheduleItem{RealDays: &realDays, AchievedDays: &achieved}
	require.NotNil(t, item.RemainingDays())
	assert.Equal(t, -2.0, *item.RemainingDays())

	assert.Nil(t, ScheduleItem{RealDays: &realDays}.RemainingDays())
}

func TestDataset_ConcurrentReads(t *testing.T) {
	ds := NewDataset("P", []string{string(ColOwner), string(ColBudget)}, []Row{
		{Text("Rivo"), Number(1)},
		{Text("Hery"), Number(2)},
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, 1, ds.Index(ColBudget))
			assert.Equal(t, "Hery", ds.Get(1, ColOwner).Text)
			assert.Equal(t, -1, ds.Index(ColStatus))
		}()
	}
	wg.Wait()
}

func TestDataset_LiteralHasNoIndex(t *testing.T) {
	ds := &Dataset{Headers: []string{string(ColOwner)}}
	assert.Equal(t, -1, ds.Index(ColOwner))
	assert.Nil(t, ds.index)
}

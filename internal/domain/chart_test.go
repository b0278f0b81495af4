package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChartKind_EnglishAndFrench(t *testing.T) {
	cases := map[string]ChartKind{
		"bar":                ChartBar,
		"Barres":             ChartBar,
		"LINE":               ChartLine,
		"Secteurs":           ChartPie,
		"Nuage de points":    ChartScatter,
		"Histogramme":        ChartHistogram,
		"Boîte à moustaches": ChartBoxPlot,
		"Combiné":            ChartCombined,
	}
	for in, want := range cases {
		got, err := ParseChartKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseChartKind("radar")
	assert.ErrorIs(t, err, ErrUnknownChartKind)
}

func TestParseChartSpec_ResolvesColumns(t *testing.T) {
	spec, err := ParseChartSpec("Budget", "combined",
		[]string{"Tâche"}, []string{"Budget (Ariary)"}, []string{"Avancement (%)"})
	require.NoError(t, err)
	assert.Equal(t, ChartCombined, spec.Kind)
	assert.Equal(t, []Column{ColTask}, spec.X)
	assert.Equal(t, []Column{ColBudget}, spec.Y)
	assert.Equal(t, []Column{ColProgress}, spec.SecondaryY)
	assert.True(t, spec.Complete())
}

func TestParseChartSpec_RejectsUnknownAndNonNumeric(t *testing.T) {
	_, err := ParseChartSpec("", "bar", []string{"Nope"}, nil, nil)
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = ParseChartSpec("", "bar", []string{"Tâche"}, []string{"Statut"}, nil)
	assert.ErrorIs(t, err, ErrNonNumericColumn)

	_, err = ParseChartSpec("", "bar", []string{"Tâche"}, nil, []string{"Commentaires"})
	assert.ErrorIs(t, err, ErrNonNumericColumn)
}

func TestChartSpec_Complete(t *testing.T) {
	assert.False(t, ChartSpec{}.Complete())
	assert.False(t, ChartSpec{X: []Column{ColTask}}.Complete())
	assert.False(t, ChartSpec{Y: []Column{ColBudget}}.Complete())
	assert.True(t, ChartSpec{X: []Column{ColTask}, SecondaryY: []Column{ColBudget}}.Complete())
}

func TestParseChartSpec_DefaultsToBar(t *testing.T) {
	spec, err := ParseChartSpec("", "", []string{"Tâche"}, []string{"Budget (Ariary)"}, nil)
	require.NoError(t, err)
	assert.Equal(t, ChartBar, spec.Kind)
}

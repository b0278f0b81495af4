package cli

import (
	"testing"

	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChartFlag(t *testing.T) {
	spec, err := parseChartFlag("kind=combined; title=Budget et durée ;x=Responsable;y=Budget (Ariary);y2=Durée réel (Jours)")
	require.NoError(t, err)
	assert.Equal(t, domain.ChartCombined, spec.Kind)
	assert.Equal(t, "Budget et durée ", spec.Title)
	assert.Equal(t, []domain.Column{domain.ColOwner}, spec.X)
	assert.Equal(t, []domain.Column{domain.ColBudget}, spec.Y)
	assert.Equal(t, []domain.Column{domain.ColRealDays}, spec.SecondaryY)
	assert.True(t, spec.Complete())
}

func TestParseChartFlag_KeepsInnerSpacing(t *testing.T) {
	spec, err := parseChartFlag("x=Statut;y=Budget Consommé  (Ariary), Écart Budgétaire  (Ariary)")
	require.NoError(t, err)
	assert.Equal(t, domain.ChartBar, spec.Kind)
	assert.Equal(t, []domain.Column{domain.ColConsumedBudget, domain.ColBudgetVariance}, spec.Y)
}

func TestParseChartFlag_FrenchKindLabel(t *testing.T) {
	spec, err := parseChartFlag("type=Secteurs;x=Statut;y=Budget (Ariary)")
	require.NoError(t, err)
	assert.Equal(t, domain.ChartPie, spec.Kind)
}

func TestParseChartFlag_IncompleteIsAccepted(t *testing.T) {
	spec, err := parseChartFlag("kind=line;x=Tâche")
	require.NoError(t, err)
	assert.False(t, spec.Complete())
}

func TestParseChartFlag_Errors(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  error
	}{
		{"missing equals", "kind bar", nil},
		{"unknown option", "color=red", nil},
		{"unknown kind", "kind=radar", domain.ErrUnknownChartKind},
		{"unknown column", "x=Priorité", domain.ErrUnknownColumn},
		{"text y axis", "x=Tâche;y=Commentaires", domain.ErrNonNumericColumn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseChartFlag(tt.value)
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestChartFlag_Repeated(t *testing.T) {
	var f chartFlag
	require.NoError(t, f.Set("x=Statut;y=Budget (Ariary)"))
	require.NoError(t, f.Set("kind=pie;x=Responsable;y=Budget (Ariary)"))

	assert.Len(t, f.specs, 2)
	assert.Equal(t, "chart", f.Type())
	assert.Contains(t, f.String(), "kind=pie")
}

func TestAppRequest_PadsChartSlots(t *testing.T) {
	req := appRequest(domain.FilterSelection{}, nil)
	require.Len(t, req.Charts, maxCharts)
	for _, c := range req.Charts {
		assert.False(t, c.Complete())
	}
}

func TestParseDateFlag(t *testing.T) {
	got, err := parseDateFlag("from", "")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseDateFlag("from", "2024-03-01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2024-03-01", got.Format(dateLayout))

	_, err = parseDateFlag("to", "2024/03/01")
	assert.ErrorContains(t, err, "--to")
}

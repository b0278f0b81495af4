package importer

import (
	"errors"
	"testing"

	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/alexanderramin/suivi/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func without(headers []string, drop ...domain.Column) []string {
	skip := make(map[string]bool)
	for _, c := range drop {
		skip[string(c)] = true
	}
	var out []string
	for _, h := range headers {
		if !skip[h] {
			out = append(out, h)
		}
	}
	return out
}

func TestValidateColumns_AllPresent(t *testing.T) {
	headers := append(testutil.RequiredHeaders(), "Extra")
	assert.NoError(t, ValidateColumns(headers))
}

func TestValidateColumns_ReportsMissingInCatalogOrder(t *testing.T) {
	// Drop in reverse order; the report must follow the catalog order.
	headers := without(testutil.RequiredHeaders(), domain.ColComment, domain.ColStatus, domain.ColTask)

	err := ValidateColumns(headers)
	require.Error(t, err)

	var mce *MissingColumnsError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, []domain.Column{domain.ColTask, domain.ColStatus, domain.ColComment}, mce.Missing)
	assert.Equal(t, "missing columns: Tâche, Statut, Commentaires", err.Error())
}

func TestValidateColumns_ExactMatchOnly(t *testing.T) {
	headers := without(testutil.RequiredHeaders(), domain.ColConsumedBudget)
	headers = append(headers, "Budget Consommé (Ariary)") // single space

	var mce *MissingColumnsError
	require.ErrorAs(t, ValidateColumns(headers), &mce)
	assert.Equal(t, []domain.Column{domain.ColConsumedBudget}, mce.Missing)
}

func TestValidateColumns_EmptyHeaderMissesEverything(t *testing.T) {
	var mce *MissingColumnsError
	require.ErrorAs(t, ValidateColumns(nil), &mce)
	assert.Equal(t, domain.RequiredColumns, mce.Missing)
}

func TestValidate_CarriesSheetName(t *testing.T) {
	ds := domain.NewDataset("Projet B", []string{"Statut"}, nil)
	var mce *MissingColumnsError
	require.ErrorAs(t, Validate(ds), &mce)
	assert.Equal(t, "Projet B", mce.Sheet)
	assert.Len(t, mce.Missing, 14)
}

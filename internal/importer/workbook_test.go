package importer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/alexanderramin/suivi/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWorkbook_ListsSheetsInOrder(t *testing.T) {
	data := testutil.NewTestWorkbook(t,
		testutil.ProjectSheet("Projet A", testutil.NewTestRecord("a")),
		testutil.ProjectSheet("Projet B"),
	)

	wb, err := ReadWorkbook(bytes.NewReader(data), "projets.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []string{"Projet A", "Projet B"}, wb.Sheets)
	assert.True(t, wb.HasSheet("Projet B"))
	assert.False(t, wb.HasSheet("Projet C"))
}

func TestWorkbook_SheetRoundTrip(t *testing.T) {
	path := testutil.WriteTestWorkbook(t, testutil.ProjectSheet("Projet A",
		testutil.NewTestRecord("Maquette", testutil.WithBudget(2500), testutil.WithDates("2024-02-01", "2024-02-20")),
		testutil.NewTestRecord("Revue", testutil.WithMissing(domain.ColProgress)),
	))

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)

	ds, err := LoadSheet(wb, "Projet A")
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())

	assert.Equal(t, "Maquette", ds.Get(0, domain.ColSubTask).Text)
	assert.Equal(t, 2500.0, ds.Get(0, domain.ColBudget).Number)
	start, ok := ds.Get(0, domain.ColPlannedStart).Time()
	require.True(t, ok)
	assert.Equal(t, "2024-02-01", start.Format("2006-01-02"))
	assert.True(t, ds.Get(1, domain.ColProgress).IsMissing())
	assert.True(t, ds.Get(1, domain.ColComment).IsMissing())
}

func TestWorkbook_UnknownSheet(t *testing.T) {
	wb, err := ReadWorkbook(bytes.NewReader(testutil.NewTestWorkbook(t, testutil.ProjectSheet("A"))), "x.xlsx")
	require.NoError(t, err)

	_, err = wb.Sheet("B")
	assert.True(t, errors.Is(err, ErrSheetNotFound))
}

func TestLoadSheet_SchemaFailureStopsPipeline(t *testing.T) {
	data := testutil.NewTestWorkbook(t, testutil.SheetData{
		Name: "Incomplet",
		Rows: [][]any{{"Titre du Projet", "Tâche"}, {"P", "T"}},
	})
	wb, err := ReadWorkbook(bytes.NewReader(data), "x.xlsx")
	require.NoError(t, err)

	ds, err := LoadSheet(wb, "Incomplet")
	assert.Nil(t, ds)
	var mce *MissingColumnsError
	require.ErrorAs(t, err, &mce)
	assert.Len(t, mce.Missing, 13)
}

func TestReadWorkbook_RejectsGarbage(t *testing.T) {
	_, err := ReadWorkbook(bytes.NewReader([]byte("not a zip")), "bad.xlsx")
	assert.Error(t, err)
}

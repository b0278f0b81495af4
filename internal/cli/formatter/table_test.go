package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/alexanderramin/suivi/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "Long header"}, [][]string{{"value", "x"}, {"v", "y"}}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Index(lines[0], "Long"), strings.Index(lines[2], "x"))
	assert.Equal(t, strings.Index(lines[0], "Long"), strings.Index(lines[3], "y"))
}

func TestRenderTable_TruncatesWideCells(t *testing.T) {
	wide := strings.Repeat("w", maxCellWidth+10)
	out := stripANSI(RenderTable([]string{"C"}, [][]string{{wide}}))
	assert.NotContains(t, out, wide)
	assert.Contains(t, out, "…")
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"a"}}))
}

func TestFormatDataset_Limit(t *testing.T) {
	ds := testutil.NewTestDataset("Projets",
		testutil.NewTestRecord("Maquette"),
		testutil.NewTestRecord("Revue"),
		testutil.NewTestRecord("Livraison"),
	)
	out := stripANSI(FormatDataset(ds, 2))
	assert.Contains(t, out, "Maquette")
	assert.Contains(t, out, "Revue")
	assert.NotContains(t, out, "Livraison")
	assert.Contains(t, out, "1 more rows")
}

func TestFormatDataset_Empty(t *testing.T) {
	ds := testutil.NewTestDataset("Projets")
	assert.Contains(t, stripANSI(FormatDataset(ds, 0)), "No rows match")
	assert.Contains(t, stripANSI(FormatDataset(nil, 0)), "No data loaded")
	assert.Contains(t, stripANSI(FormatDataset(domain.NewDataset("x", nil, nil), 0)), "No data loaded")
}

package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/alexanderramin/suivi/internal/render"
	"github.com/alexanderramin/suivi/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestExportDashboard_WritesEveryImage(t *testing.T) {
	a := testApp(t)
	ctx := context.Background()
	session, err := a.Service.Login(ctx, "admin", "2025")
	require.NoError(t, err)

	ds := testutil.NewTestDataset("Projets",
		testutil.NewTestRecord("Maquette", testutil.WithOwner("Rivo")),
		testutil.NewTestRecord("Revue", testutil.WithOwner("Hery"), testutil.WithDates("2024-02-01", "2024-02-10")),
	)
	spec, err := domain.ParseChartSpec("", "pie", []string{"Responsable"}, []string{"Budget (Ariary)"}, nil)
	require.NoError(t, err)
	resp, err := a.Service.Build(ctx, session, ds, appRequest(domain.FilterSelection{}, []domain.ChartSpec{spec}))
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "nested", "out")
	paths, err := exportDashboard(dir, resp, render.Options{Width: 320, Height: 200})
	require.NoError(t, err)

	want := []string{"chart-1.png", "chart-2.png", "gantt.png", "progress.png"}
	require.Len(t, paths, len(want))
	for i, name := range want {
		assert.Equal(t, filepath.Join(dir, name), paths[i])
		data, err := os.ReadFile(paths[i])
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, pngMagic), name)
	}
}

func TestExportDashboard_UnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := exportDashboard(filepath.Join(file, "sub"), nil, render.Options{})
	assert.ErrorContains(t, err, "creating output directory")
}

func TestWritePNGFile_FailedDrawLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart-1.png")
	errDraw := errors.New("draw failed")

	err := writePNGFile(path, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return errDraw
	})

	require.ErrorIs(t, err, errDraw)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWritePNGFile_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gantt.png")
	require.NoError(t, writePNGFile(path, func(w io.Writer) error {
		_, err := w.Write(pngMagic)
		return err
	}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, data)
}

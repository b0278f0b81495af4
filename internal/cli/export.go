package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alexanderramin/suivi/internal/app"
	"github.com/alexanderramin/suivi/internal/render"
)

// renderOptions returns the PNG size from the output config.
func (a *App) renderOptions() render.Options {
	return render.Options{Width: a.Config.Output.Width, Height: a.Config.Output.Height}
}

// exportDashboard writes every chart of resp as PNG files into dir and
// returns the written paths in order: chart-N.png, gantt.png, progress.png.
// Incomplete charts get a placeholder image carrying the selection hint.
func exportDashboard(dir string, resp *app.DashboardResponse, opts render.Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var paths []string
	write := func(name string, draw func(io.Writer) error) error {
		path := filepath.Join(dir, name)
		if err := writePNGFile(path, draw); err != nil {
			return fmt.Errorf("rendering %s: %w", name, err)
		}
		paths = append(paths, path)
		return nil
	}

	for i, c := range resp.Charts {
		name := fmt.Sprintf("chart-%d.png", i+1)
		res := c
		err := write(name, func(w io.Writer) error {
			if !res.Complete || res.Chart == nil {
				return render.Placeholder(w, fmt.Sprintf("Chart %d", i+1), render.MsgIncomplete, opts)
			}
			return render.Chart(w, res.Chart, opts)
		})
		if err != nil {
			return paths, err
		}
	}
	if err := write("gantt.png", func(w io.Writer) error { return render.Gantt(w, resp.Schedule, opts) }); err != nil {
		return paths, err
	}
	if err := write("progress.png", func(w io.Writer) error { return render.Progress(w, resp.Schedule, opts) }); err != nil {
		return paths, err
	}
	return paths, nil
}

// writePNGFile draws into path. A failed draw leaves no file behind.
func writePNGFile(path string, draw func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := draw(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

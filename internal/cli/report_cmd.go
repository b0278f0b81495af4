package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/suivi/internal/app"
	"github.com/alexanderramin/suivi/internal/cli/formatter"
	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/spf13/cobra"
)

const (
	dateLayout = "2006-01-02"
	maxCharts  = app.MaxCharts
)

func parseDateFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("--%s: expected YYYY-MM-DD, got %q", name, value)
	}
	return &t, nil
}

func newReportCmd(app *App, creds *credentials) *cobra.Command {
	var (
		sheet    string
		statuses []string
		owners   []string
		from, to string
		charts   chartFlag
		outDir   string
		rows     int
		noPNG    bool
	)

	cmd := &cobra.Command{
		Use:   "report FILE",
		Short: "Print the dashboard of one sheet and export its charts as PNG",
		Example: `  suivi report projets.xlsx --sheet Projets --status "En cours" \
    --chart "kind=bar;x=Responsable;y=Budget (Ariary)" --out ./out`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sel := domain.FilterSelection{Statuses: statuses, Owners: owners}
			var err error
			if sel.MinStart, err = parseDateFlag("from", from); err != nil {
				return err
			}
			if sel.MaxEnd, err = parseDateFlag("to", to); err != nil {
				return err
			}

			session, err := creds.login(ctx, app, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			status := func(string) {}
			stop := func() {}
			if app.IsInteractive != nil && app.IsInteractive() {
				sp := formatter.NewSpinner(cmd.ErrOrStderr(), "Reading workbook...")
				sp.Start()
				status, stop = sp.SetMessage, sp.Stop
			}
			defer stop()

			wb, err := app.Service.OpenWorkbook(ctx, session, args[0])
			if err != nil {
				return err
			}
			if sheet == "" {
				if len(wb.Sheets) == 0 {
					return fmt.Errorf("workbook %q has no sheets", wb.Name)
				}
				sheet = wb.Sheets[0]
			}
			status("Loading " + sheet + "...")
			ds, err := app.Service.LoadSheet(ctx, session, wb, sheet)
			if err != nil {
				return err
			}

			resp, err := app.Service.Build(ctx, session, ds, appRequest(sel, charts.specs))
			if err != nil {
				return err
			}
			stop()
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDashboard(resp, sel, rows, 100))

			if noPNG {
				return nil
			}
			dir := outDir
			if dir == "" {
				dir = app.Config.Output.Dir
			}
			paths, err := exportDashboard(dir, resp, app.renderOptions())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("wrote ")+p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet to load (default: first sheet)")
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "Keep rows with these statuses (repeatable)")
	cmd.Flags().StringSliceVar(&owners, "owner", nil, "Keep rows with these owners (repeatable)")
	cmd.Flags().StringVar(&from, "from", "", "Earliest planned start, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "Latest planned end, YYYY-MM-DD")
	cmd.Flags().Var(&charts, "chart", fmt.Sprintf("Chart spec \"kind=K;x=A,B;y=C;y2=D;title=T\" (at most %d)", maxCharts))
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory for PNG files (default: output.dir from config)")
	cmd.Flags().IntVar(&rows, "rows", 20, "Table rows to print (0 prints every row)")
	cmd.Flags().BoolVar(&noPNG, "no-png", false, "Skip PNG export")

	return cmd
}

// appRequest pads chart specs so every chart slot is present; unset slots
// report as incomplete.
func appRequest(sel domain.FilterSelection, specs []domain.ChartSpec) app.DashboardRequest {
	req := app.DashboardRequest{Selection: sel, Charts: specs}
	for len(req.Charts) < maxCharts {
		req.Charts = append(req.Charts, domain.ChartSpec{})
	}
	return req
}

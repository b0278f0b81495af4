package cli

import (
	"log/slog"

	"github.com/alexanderramin/suivi/internal/auth"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTUICmd(app *App, creds *credentials) *cobra.Command {
	return &cobra.Command{
		Use:   "tui FILE",
		Short: "Open the interactive dashboard",
		Long: `Open the interactive dashboard for a workbook. Without --user and
--password (or SUIVI_USER and SUIVI_PASSWORD) a sign-in form is shown first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session := auth.Anonymous()
			if c := creds.fromEnv(); c.user != "" && c.password != "" {
				s, err := app.Service.Login(cmd.Context(), c.user, c.password)
				if err != nil {
					return err
				}
				session = s
			}

			// Log lines on stderr would corrupt the alternate screen.
			saved := app.LogLevel.Level()
			app.LogLevel.Set(slog.LevelError + 4)
			defer app.LogLevel.Set(saved)

			m := newAppModel(app, args[0], session)
			p := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err := p.Run()
			return err
		},
	}
}

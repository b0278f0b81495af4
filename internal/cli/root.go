package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alexanderramin/suivi/internal/auth"
	"github.com/alexanderramin/suivi/internal/config"
	"github.com/alexanderramin/suivi/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// App holds the service and runtime configuration used by CLI commands.
type App struct {
	Config    config.Config
	Service   service.DashboardService
	Observers []service.UseCaseObserver
	Metrics   *prometheus.Registry
	Logger    *slog.Logger
	LogLevel  *slog.LevelVar

	// IsInteractive reports whether credentials may be prompted for.
	IsInteractive func() bool
	In            io.Reader
}

// NewApp wires a dashboard service for cfg. Observers are kept so the
// service can be rebuilt when --config points at another file. level is
// the variable logger's handler reads; it follows cfg.Log.Level and
// --log-level.
func NewApp(cfg config.Config, logger *slog.Logger, level *slog.LevelVar, observers ...service.UseCaseObserver) *App {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if level == nil {
		level = new(slog.LevelVar)
	}
	a := &App{
		Observers: observers,
		Logger:    logger,
		LogLevel:  level,
		In:        os.Stdin,
	}
	a.configure(cfg)
	return a
}

func (a *App) configure(cfg config.Config) {
	a.Config = cfg
	a.Service = service.NewDashboardService(auth.NewStaticGate(cfg.Users), a.Observers...)
	if level, err := config.ParseLevel(cfg.Log.Level); err == nil {
		a.LogLevel.Set(level)
	}
}

// credentials are the --user/--password persistent flags.
type credentials struct {
	user     string
	password string
}

var errNoCredentials = errors.New("credentials required: pass --user and --password or set SUIVI_USER and SUIVI_PASSWORD")

// fromEnv fills unset credentials from SUIVI_USER and SUIVI_PASSWORD.
func (c credentials) fromEnv() credentials {
	if c.user == "" {
		c.user = os.Getenv("SUIVI_USER")
	}
	if c.password == "" {
		c.password = os.Getenv("SUIVI_PASSWORD")
	}
	return c
}

// resolve fills unset credentials from the environment and, on a
// terminal, from a prompt.
func (c credentials) resolve(app *App, out io.Writer) (credentials, error) {
	c = c.fromEnv()
	if c.user != "" && c.password != "" {
		return c, nil
	}
	if app.IsInteractive == nil || !app.IsInteractive() {
		return c, errNoCredentials
	}
	p := newLinePrompt(app.In, out)
	if c.user == "" {
		c.user = p.ask("Username: ")
	}
	if c.password == "" {
		c.password = p.ask("Password: ")
	}
	return c, nil
}

// login authenticates the flag credentials against the service.
func (c credentials) login(ctx context.Context, app *App, out io.Writer) (auth.Session, error) {
	resolved, err := c.resolve(app, out)
	if err != nil {
		return auth.Anonymous(), err
	}
	return app.Service.Login(ctx, resolved.user, resolved.password)
}

// NewRootCmd creates the top-level "suivi" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var (
		configPath string
		logLevel   string
		creds      credentials
	)

	root := &cobra.Command{
		Use:   "suivi",
		Short: "Project-tracking dashboard for xlsx workbooks",
		Long: strings.TrimSpace(`
suivi reads a project-tracking workbook, validates its columns, and
builds a filtered dashboard: summary metrics, up to two configurable
charts and a schedule projection.`),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("config") {
				cfg, err := config.LoadFromFile(configPath)
				if err != nil {
					return err
				}
				config.ApplyEnv(&cfg)
				app.configure(cfg)
			}
			if cmd.Flags().Changed("log-level") {
				level, err := config.ParseLevel(logLevel)
				if err != nil {
					return err
				}
				app.LogLevel.Set(level)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (default: $SUIVI_CONFIG or ./"+config.DefaultFile+")")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	root.PersistentFlags().StringVarP(&creds.user, "user", "u", "", "Username (default: $SUIVI_USER)")
	root.PersistentFlags().StringVarP(&creds.password, "password", "p", "", "Password (default: $SUIVI_PASSWORD)")

	root.AddCommand(
		newSheetsCmd(app, &creds),
		newReportCmd(app, &creds),
		newTUICmd(app, &creds),
		newServeCmd(app),
	)

	return root
}

func newSheetsCmd(app *App, creds *credentials) *cobra.Command {
	return &cobra.Command{
		Use:   "sheets FILE",
		Short: "List the sheets of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			session, err := creds.login(ctx, app, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			wb, err := app.Service.OpenWorkbook(ctx, session, args[0])
			if err != nil {
				return err
			}
			for i, name := range wb.Sheets {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, name)
			}
			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/planfact/internal/cli/formatter"
	"github.com/alexanderramin/planfact/internal/config"
	"github.com/alexanderramin/planfact/internal/db"
	"github.com/alexanderramin/planfact/internal/discovery"
	"github.com/alexanderramin/planfact/internal/logging"
	"github.com/alexanderramin/planfact/internal/report"
	"github.com/alexanderramin/planfact/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func newRefreshCmd(app *App, flow report.Flow) *cobra.Command {
	var noMail bool

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: fmt.Sprintf("Load %s workbooks of the selected weeks", flow),
		Long: fmt.Sprintf(`Load %s workbooks of the selected weeks into the database.

Every file replaces the rows it loaded before. Files that fail are reported
and skipped; the summary is mailed when SMTP is configured.`, flow),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			if err := applyRunFlags(cmd.Flags(), cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := logging.New(logging.Options{
				Dir:     cfg.Folders.Logs,
				Flow:    string(flow),
				Now:     app.now(),
				Console: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			defer log.Close()
			log.Info("Settings have been loaded",
				zap.String("config", app.ConfigPath),
				zap.String("driver", cfg.Database.Driver),
				zap.String("dsn", cfg.Redacted()),
				zap.String("master", cfg.Folders.Master))

			run := service.RunRefresh(cmd.Context(), service.Job{
				Flow:         flow,
				Request:      service.RefreshRequest{Year: cfg.Year, Weeks: cfg.Weeks, Employees: cfg.Employees},
				Layout:       discovery.NewLayout(cfg.Folders.Master),
				CalendarPath: cfg.CalendarPath(),
				MappingsPath: cfg.MappingsPath(),
				Open: func(ctx context.Context) (*db.DB, error) {
					return openDB(ctx, cfg)
				},
				Notifier:  app.notifier(cfg, noMail, log.Logger),
				Log:       log.Logger,
				LogPath:   log.Path,
				Observers: []service.StageObserver{service.NewLogStageObserver(log.Logger)},
				Now:       app.now,
			})

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRun(run))
			if !run.Succeeded() {
				return ErrRefreshFailed
			}
			return nil
		},
	}

	cmd.Flags().Int("year", 0, "Budget year (overrides year_no)")
	cmd.Flags().IntSlice("weeks", nil, "Budget weeks, e.g. 3,4 (overrides weeks_no)")
	cmd.Flags().StringSlice("employee", nil, "Only load files of these employees (overrides employees)")
	cmd.Flags().BoolVar(&noMail, "no-mail", false, "Log the summary instead of mailing it")

	return cmd
}

// applyRunFlags copies the flags the user set over the settings file values.
func applyRunFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	var err error
	if flags.Changed("year") {
		if cfg.Year, err = flags.GetInt("year"); err != nil {
			return err
		}
	}
	if flags.Changed("weeks") {
		if cfg.Weeks, err = flags.GetIntSlice("weeks"); err != nil {
			return err
		}
	}
	if flags.Changed("employee") {
		if cfg.Employees, err = flags.GetStringSlice("employee"); err != nil {
			return err
		}
	}
	return nil
}

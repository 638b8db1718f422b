package cli

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/planfact/internal/config"
	"github.com/alexanderramin/planfact/internal/db"
	"github.com/alexanderramin/planfact/internal/notify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ErrRefreshFailed is returned when a refresh finished with failed files or
// could not run at all. The details are in the printed summary.
var ErrRefreshFailed = errors.New("refresh finished with errors")

// App holds what the commands share. Zero values select the production
// behaviour.
type App struct {
	ConfigPath string
	Now        func() time.Time
	// Notifier replaces the notifier built from the configuration.
	Notifier notify.Notifier
}

// NewRootCmd creates the top-level "planfact" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "planfact",
		Short:         "Load weekly plan and timecard workbooks into the reporting database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	configPath := app.ConfigPath
	if configPath == "" {
		configPath = "settings.json"
	}
	root.PersistentFlags().StringVar(&app.ConfigPath, "config", configPath, "Path to the settings file")

	root.AddCommand(
		newPlansCmd(app),
		newTimecardsCmd(app),
		newMigrateCmd(app),
	)
	return root
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) loadConfig() (*config.Config, error) {
	return config.Load(a.ConfigPath)
}

func (a *App) notifier(cfg *config.Config, noMail bool, log *zap.Logger) notify.Notifier {
	if a.Notifier != nil {
		return a.Notifier
	}
	if noMail || !cfg.MailEnabled() {
		return notify.NewLogNotifier(log)
	}
	return notify.NewSMTPNotifier(notify.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		To:       cfg.SendMailTo,
	})
}

func openDB(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	return db.Open(ctx, db.Dialect(cfg.Database.Driver), cfg.DSN())
}

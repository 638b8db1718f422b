package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/planfact/internal/cli/formatter"
	"github.com/alexanderramin/planfact/internal/domain"
	"github.com/alexanderramin/planfact/internal/report"
	"github.com/alexanderramin/planfact/internal/repository"
	"github.com/alexanderramin/planfact/internal/service"
	"github.com/spf13/cobra"
)

func newPlansCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Weekly plans",
	}
	cmd.AddCommand(
		newRefreshCmd(app, report.FlowPlans),
		newPlansListCmd(app),
	)
	return cmd
}

func newTimecardsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timecards",
		Short: "Timecards and plan-vs-actual rows",
	}
	cmd.AddCommand(
		newRefreshCmd(app, report.FlowTimecards),
		newTimecardsListCmd(app),
	)
	return cmd
}

// entryService opens the configured store and returns a service over it
// together with a function that closes the connection.
func entryService(cmd *cobra.Command, app *App) (service.EntryService, func(), error) {
	cfg, err := app.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	database, err := openDB(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	conn := database.Conn()
	svc := service.NewEntryService(repository.NewSQLPlanRepo(conn), repository.NewSQLTimecardRepo(conn))
	return svc, func() { database.Close() }, nil
}

func parseDate(flag, value string) (time.Time, error) {
	d, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s must be a date like 2024-01-15: %w", flag, err)
	}
	return d, nil
}

func newPlansListCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored plan rows of a week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			weekStart, err := parseDate("date", date)
			if err != nil {
				return err
			}
			svc, closeDB, err := entryService(cmd, app)
			if err != nil {
				return err
			}
			defer closeDB()

			entries, err := svc.ListPlans(cmd.Context(), weekStart)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No plan rows found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlans(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "First day of the budget week (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newTimecardsListCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored timecard rows of a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseDate("from", from)
			if err != nil {
				return err
			}
			end := start.AddDate(0, 0, 6)
			if to != "" {
				if end, err = parseDate("to", to); err != nil {
					return err
				}
			}
			svc, closeDB, err := entryService(cmd, app)
			if err != nil {
				return err
			}
			defer closeDB()

			entries, err := svc.ListTimecards(cmd.Context(), start, end)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No timecard rows found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimecards(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last date (YYYY-MM-DD, default: six days after --from)")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

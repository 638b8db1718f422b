package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planfact/internal/db"
	"github.com/alexanderramin/planfact/internal/discovery"
	"github.com/alexanderramin/planfact/internal/notify"
	"github.com/alexanderramin/planfact/internal/report"
	"go.uber.org/zap"
)

// Job describes one refresh run from reference loading to the summary
// notification.
type Job struct {
	Flow         report.Flow
	Request      RefreshRequest
	Layout       discovery.Layout
	CalendarPath string
	MappingsPath string
	Open         func(ctx context.Context) (*db.DB, error)
	Notifier     notify.Notifier
	Log          *zap.Logger
	LogPath      string
	Observers    []StageObserver
	Now          func() time.Time
}

// RunRefresh executes job and always delivers its summary, whether the run
// succeeded, partly failed or could not start.
func RunRefresh(ctx context.Context, job Job) *report.Run {
	now := job.Now
	if now == nil {
		now = time.Now
	}
	run := report.New(job.Flow, now())
	log := job.Log.With(zap.String("run_id", run.ID))

	log.Info(fmt.Sprintf("The following periods were specified: %s -> %d", job.Request.WeeksLabel(), job.Request.Year))
	if len(job.Request.Employees) > 0 {
		log.Info("The following employees were specified: " + strings.Join(job.Request.Employees, ", "))
	}

	if err := execute(ctx, job, run, log); err != nil {
		run.Fail(err)
		log.Error(fmt.Sprintf("Exception was raised:\n%v", err))
	}

	run.Finish(now())
	log.Info(fmt.Sprintf("Refresh took %g seconds", run.Duration().Seconds()))

	msg := notify.Message{Subject: run.Subject(), Body: run.Summary(job.LogPath), Attachment: job.LogPath}
	if err := job.Notifier.Send(ctx, msg); err != nil {
		log.Error("sending summary", zap.Error(err))
	}
	return run
}

func execute(ctx context.Context, job Job, run *report.Run, log *zap.Logger) error {
	ref, err := LoadReference(job.CalendarPath, job.MappingsPath)
	if err != nil {
		return err
	}
	log.Info("Calendar has been loaded")
	log.Info(fmt.Sprintf("List of all employees has been loaded [%d]", len(ref.Employees)))

	database, err := job.Open(ctx)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() {
		database.Close()
		log.Info("Database connection is closed")
	}()
	log.Info("Database connection established", zap.String("driver", string(database.Dialect)))

	uow := db.NewUnitOfWork(database)
	var refresher Refresher
	switch job.Flow {
	case report.FlowPlans:
		refresher = NewPlanRefreshService(job.Layout, ref, uow, log, job.Observers...)
	case report.FlowTimecards:
		refresher = NewTimecardRefreshService(job.Layout, ref, uow, log, job.Observers...)
	default:
		return fmt.Errorf("unknown flow %q", job.Flow)
	}
	return refresher.Refresh(ctx, run, job.Request)
}

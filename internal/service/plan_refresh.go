package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/planfact/internal/db"
	"github.com/alexanderramin/planfact/internal/discovery"
	"github.com/alexanderramin/planfact/internal/domain"
	"github.com/alexanderramin/planfact/internal/pipeline"
	"github.com/alexanderramin/planfact/internal/report"
	"github.com/alexanderramin/planfact/internal/repository"
	"github.com/alexanderramin/planfact/internal/workbook"
	"go.uber.org/zap"
)

type planRefreshService struct {
	layout   discovery.Layout
	ref      *Reference
	uow      db.UnitOfWork
	log      *zap.Logger
	observer StageObserver
}

// NewPlanRefreshService loads weekly plan workbooks into the plans table.
func NewPlanRefreshService(layout discovery.Layout, ref *Reference, uow db.UnitOfWork, log *zap.Logger, observers ...StageObserver) Refresher {
	return &planRefreshService{
		layout:   layout,
		ref:      ref,
		uow:      uow,
		log:      log,
		observer: stageObserverOrNoop(observers),
	}
}

func (s *planRefreshService) Refresh(ctx context.Context, run *report.Run, req RefreshRequest) error {
	filter := discovery.Filter{Known: s.ref.Employees, Only: req.Employees}
	for _, w := range req.Weeks {
		if err := ctx.Err(); err != nil {
			return err
		}
		label := domain.WeekLabel(req.Year, w)
		week, err := s.ref.Calendar.Week(req.Year, w)
		if err != nil {
			weekFailed(s.log, run, label, "Calendar", err)
			run.CloseWeek(label)
			continue
		}
		s.log.Info(fmt.Sprintf("[%s] Week start date: %s, week end date: %s",
			label, week.Start.Format(domain.DateLayout), week.End.Format(domain.DateLayout)))

		listing, err := s.layout.PlanFiles(label, filter)
		if err != nil {
			weekFailed(s.log, run, label, "Plans", err)
			run.CloseWeek(label)
			continue
		}
		logListing(s.log, label, "Plans", listing)

		for _, f := range listing.Files {
			record(s.log, run, s.refreshFile(ctx, week, f))
		}
		total := run.CloseWeek(label)
		s.log.Info(total.Line())
	}
	return nil
}

// refreshFile replaces the planner's rows for the week with the content of
// one plan workbook. The delete and insert share a transaction.
func (s *planRefreshService) refreshFile(ctx context.Context, week domain.Week, f discovery.File) report.Outcome {
	out := report.Outcome{Week: week.Label(), File: f.Name}
	base := StageEvent{Flow: report.FlowPlans, Week: out.Week, File: f.Name}
	start := time.Now()

	res, planner, err := s.assemble(week, f)
	if err != nil {
		return fileFailed(ctx, s.observer, base, out, err)
	}
	observeTrace(ctx, s.observer, base, res.Trace)
	if res.Empty() {
		out.Kind = report.KindEmpty
		return out
	}

	var deleted, inserted int64
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		plans := repository.NewSQLPlanRepo(tx)
		var err error
		if deleted, err = plans.DeleteByWeekPlanner(ctx, week.Start, planner); err != nil {
			return err
		}
		inserted, err = plans.InsertMany(ctx, res.Entries)
		return err
	})
	if err != nil {
		return fileFailed(ctx, s.observer, base, out, err)
	}

	emitted(ctx, s.observer, base, inserted, time.Since(start))

	out.Kind, out.Rows, out.Deleted = report.KindInserted, inserted, deleted
	return out
}

func (s *planRefreshService) assemble(week domain.Week, f discovery.File) (pipeline.PlanResult, string, error) {
	wb, err := workbook.Open(f.Path)
	if err != nil {
		return pipeline.PlanResult{}, "", err
	}
	defer wb.Close()

	planner, err := wb.NamedValue(workbook.PlannerNameRef)
	if err != nil {
		return pipeline.PlanResult{}, "", err
	}
	if planner == "" {
		return pipeline.PlanResult{}, "", fmt.Errorf("%s is empty", workbook.PlannerNameRef)
	}
	rows, err := wb.PlanRows()
	if err != nil {
		return pipeline.PlanResult{}, "", err
	}
	return pipeline.AssemblePlan(pipeline.PlanInput{Rows: rows, Planner: planner, WeekStart: week.Start}), planner, nil
}

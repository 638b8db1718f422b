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

// PlanVsActualSource names the carried-over plan-vs-actual rows in outcomes.
const PlanVsActualSource = "PlanVsActual"

type timecardRefreshService struct {
	layout   discovery.Layout
	ref      *Reference
	uow      db.UnitOfWork
	log      *zap.Logger
	observer StageObserver
}

// NewTimecardRefreshService loads weekly timecard workbooks, together with
// the planners' assessments from next week's plans, into the timecards table.
func NewTimecardRefreshService(layout discovery.Layout, ref *Reference, uow db.UnitOfWork, log *zap.Logger, observers ...StageObserver) Refresher {
	return &timecardRefreshService{
		layout:   layout,
		ref:      ref,
		uow:      uow,
		log:      log,
		observer: stageObserverOrNoop(observers),
	}
}

func (s *timecardRefreshService) Refresh(ctx context.Context, run *report.Run, req RefreshRequest) error {
	filter := discovery.Filter{Known: s.ref.Employees, Only: req.Employees}
	for _, w := range req.Weeks {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.refreshWeek(ctx, run, req.Year, w, filter)
	}
	return nil
}

func (s *timecardRefreshService) refreshWeek(ctx context.Context, run *report.Run, year, w int, filter discovery.Filter) {
	label := domain.WeekLabel(year, w)
	defer func() { s.log.Info(run.CloseWeek(label).Line()) }()

	week, err := s.ref.Calendar.Week(year, w)
	if err != nil {
		weekFailed(s.log, run, label, "Calendar", err)
		return
	}
	s.log.Info(fmt.Sprintf("[%s] Week start date: %s, week end date: %s",
		label, week.Start.Format(domain.DateLayout), week.End.Format(domain.DateLayout)))

	listing, err := s.layout.TimecardFiles(label, filter)
	if err != nil {
		weekFailed(s.log, run, label, "Timecards", err)
		return
	}
	logListing(s.log, label, "Timecards", listing)

	pva := s.loadPlanVsActual(run, year, w, label, filter)

	for _, f := range listing.Files {
		record(s.log, run, s.refreshFile(ctx, week, f, pva))
	}
	if len(pva) > 0 {
		record(s.log, run, s.carryOver(ctx, week, pva))
	}
}

// loadPlanVsActual gathers the plan-vs-actual tables of next week's plan
// workbooks. Every known employee's plan counts, whatever the run's filter.
func (s *timecardRefreshService) loadPlanVsActual(run *report.Run, year, w int, label string, filter discovery.Filter) []domain.PlanVsActualRow {
	nextYear, nextWeek, err := s.ref.Calendar.Next(year, w)
	if err != nil {
		weekFailed(s.log, run, label, PlanVsActualSource, err)
		return nil
	}
	nextLabel := domain.WeekLabel(nextYear, nextWeek)
	listing, err := s.layout.PlanFiles(nextLabel, filter.AnyEmployee())
	if err != nil {
		weekFailed(s.log, run, label, PlanVsActualSource, err)
		return nil
	}
	logListing(s.log, label, "Next week plans", listing)

	var rows []domain.PlanVsActualRow
	for _, f := range listing.Files {
		got, err := readWorkbook(f.Path, (*workbook.Workbook).PlanVsActual)
		if err != nil {
			record(s.log, run, report.Outcome{Week: label, File: f.Name, Kind: report.KindFailed, Err: err})
			continue
		}
		if len(got) == 0 {
			s.log.Warn(fmt.Sprintf("[%s] [%s] File is empty or didn`t pass validation", label, f.Name))
			continue
		}
		s.log.Info(fmt.Sprintf("[%s] [%s] Rows were added to PlanVsActual [%d]", label, f.Name, len(got)))
		rows = append(rows, got...)
	}
	s.log.Info(fmt.Sprintf("[%s] Total number of rows in the PlanVsActual table: [%d]", label, len(rows)))
	return rows
}

// refreshFile replaces the executor's timecard rows for the week with the
// content of one timecard workbook.
func (s *timecardRefreshService) refreshFile(ctx context.Context, week domain.Week, f discovery.File, pva []domain.PlanVsActualRow) report.Outcome {
	out := report.Outcome{Week: week.Label(), File: f.Name}
	base := StageEvent{Flow: report.FlowTimecards, Week: out.Week, File: f.Name}
	start := time.Now()

	res, executor, err := s.assemble(week, f, pva)
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
		timecards := repository.NewSQLTimecardRepo(tx)
		var err error
		if deleted, err = timecards.DeleteTimecards(ctx, week, executor); err != nil {
			return err
		}
		inserted, err = timecards.InsertMany(ctx, res.Entries)
		return err
	})
	if err != nil {
		return fileFailed(ctx, s.observer, base, out, err)
	}
	emitted(ctx, s.observer, base, inserted, time.Since(start))

	out.Kind, out.Rows, out.Deleted = report.KindInserted, inserted, deleted
	return out
}

func (s *timecardRefreshService) assemble(week domain.Week, f discovery.File, pva []domain.PlanVsActualRow) (pipeline.TimecardResult, *string, error) {
	wb, err := workbook.Open(f.Path)
	if err != nil {
		return pipeline.TimecardResult{}, nil, err
	}
	defer wb.Close()

	name, err := wb.NamedValue(workbook.EmployeeNameRef)
	if err != nil {
		return pipeline.TimecardResult{}, nil, err
	}
	rows, err := wb.TimecardRows()
	if err != nil {
		return pipeline.TimecardResult{}, nil, err
	}

	in := pipeline.TimecardInput{Rows: rows, PlanVsActual: pva, Executor: nonEmpty(name), Week: week}
	// The task plan is only needed once some hours were logged.
	if len(pipeline.MeltTimecard(rows)) > 0 {
		if in.Plan, err = wb.PlanTasks(); err != nil {
			return pipeline.TimecardResult{}, nil, err
		}
	}
	return pipeline.AssembleTimecards(in), in.Executor, nil
}

// carryOver replaces the week's plan-vs-actual rows with the assessed but
// unworked tasks from next week's plans.
func (s *timecardRefreshService) carryOver(ctx context.Context, week domain.Week, pva []domain.PlanVsActualRow) report.Outcome {
	out := report.Outcome{Week: week.Label(), File: PlanVsActualSource}
	base := StageEvent{Flow: report.FlowTimecards, Week: out.Week, File: PlanVsActualSource}
	start := time.Now()

	entries := pipeline.PlanVsActualCarryOver(pva, week)
	s.observer.ObserveStage(ctx, StageEvent{
		Flow: base.Flow, Week: base.Week, File: base.File,
		Stage: pipeline.StageFiltered, Step: "Assessed tasks without hours selected", Rows: int64(len(entries)),
	})

	var deleted, inserted int64
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		timecards := repository.NewSQLTimecardRepo(tx)
		var err error
		if deleted, err = timecards.DeletePlanVsActual(ctx, week); err != nil {
			return err
		}
		inserted, err = timecards.InsertMany(ctx, entries)
		return err
	})
	if err != nil {
		return fileFailed(ctx, s.observer, base, out, err)
	}
	emitted(ctx, s.observer, base, inserted, time.Since(start))

	out.Kind, out.Rows, out.Deleted = report.KindInserted, inserted, deleted
	return out
}

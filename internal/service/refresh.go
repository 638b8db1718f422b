package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planfact/internal/discovery"
	"github.com/alexanderramin/planfact/internal/pipeline"
	"github.com/alexanderramin/planfact/internal/report"
	"go.uber.org/zap"
)

// record adds an outcome to the run and logs its summary line.
func record(log *zap.Logger, run *report.Run, o report.Outcome) {
	run.Add(o)
	fields := []zap.Field{zap.String("week", o.Week), zap.String("file", o.File), zap.Int64("rows", o.Rows)}
	switch o.Kind {
	case report.KindInserted:
		log.Info(fmt.Sprintf("[%s] [%s] %-60s [%d]", o.Week, o.File, "Rows were deleted from the database", o.Deleted), fields...)
		log.Info(o.Line(), fields...)
	case report.KindEmpty:
		log.Warn(o.Line(), fields...)
	default:
		log.Error(o.Line(), fields...)
	}
}

// weekFailed records a problem that prevents a whole week from loading.
func weekFailed(log *zap.Logger, run *report.Run, week, source string, err error) {
	record(log, run, report.Outcome{Week: week, File: source, Kind: report.KindFailed, Err: err})
}

func logListing(log *zap.Logger, week, what string, l discovery.Listing) {
	log.Info(fmt.Sprintf("[%s] %s folder: %s, folder exists: %t", week, what, l.Folder, l.Exists))
	log.Info(fmt.Sprintf("[%s] The following items (%d) are in the folder:\n\t%s",
		week, len(l.Entries), strings.Join(l.Entries, "\n\t")))
	for _, name := range l.Rejected {
		log.Debug(fmt.Sprintf("[%s] [%s] skipped", week, name))
	}
}

// nonEmpty returns nil for a blank named value.
func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// fileFailed reports the error stage for a file and turns the outcome into a
// failure.
func fileFailed(ctx context.Context, obs StageObserver, base StageEvent, out report.Outcome, err error) report.Outcome {
	e := base
	e.Stage, e.Step, e.Err = pipeline.StageError, "processing failed", err
	obs.ObserveStage(ctx, e)
	out.Kind, out.Err = report.KindFailed, err
	return out
}

// emitted reports the rows a file wrote to the store.
func emitted(ctx context.Context, obs StageObserver, base StageEvent, rows int64, took time.Duration) {
	e := base
	e.Stage, e.Step, e.Rows, e.Duration = pipeline.StageEmitted, "Rows were written to the database", rows, took
	obs.ObserveStage(ctx, e)
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/planfact/internal/pipeline"
	"github.com/alexanderramin/planfact/internal/report"
	"go.uber.org/zap"
)

// StageEvent reports that a file reached a pipeline stage.
type StageEvent struct {
	Flow     report.Flow
	Week     string
	File     string
	Stage    pipeline.Stage
	Step     string
	Rows     int64
	Err      error
	Duration time.Duration
}

// StageObserver receives stage events.
type StageObserver interface {
	ObserveStage(ctx context.Context, event StageEvent)
}

// NoopStageObserver ignores all events.
type NoopStageObserver struct{}

func (NoopStageObserver) ObserveStage(context.Context, StageEvent) {}

type logStageObserver struct {
	log *zap.Logger
}

// NewLogStageObserver writes stage events to the run log.
func NewLogStageObserver(log *zap.Logger) StageObserver {
	if log == nil {
		return NoopStageObserver{}
	}
	return &logStageObserver{log: log}
}

func (o *logStageObserver) ObserveStage(_ context.Context, event StageEvent) {
	fields := []zap.Field{
		zap.String("stage", string(event.Stage)),
		zap.Int64("rows", event.Rows),
	}
	if event.Duration > 0 {
		fields = append(fields, zap.Duration("duration", event.Duration))
	}
	if event.Err != nil {
		o.log.Error(fmt.Sprintf("[%s] [%s] %s", event.Week, event.File, event.Step), append(fields, zap.Error(event.Err))...)
		return
	}
	o.log.Info(fmt.Sprintf("[%s] [%s] %-60s [%d]", event.Week, event.File, event.Step+":", event.Rows), fields...)
}

func stageObserverOrNoop(observers []StageObserver) StageObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopStageObserver{}
}

// observeTrace replays a pipeline trace as stage events.
func observeTrace(ctx context.Context, obs StageObserver, base StageEvent, trace pipeline.Trace) {
	for _, step := range trace {
		e := base
		e.Stage = step.Stage
		e.Step = step.Step
		e.Rows = int64(step.Rows)
		obs.ObserveStage(ctx, e)
	}
}

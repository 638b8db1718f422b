package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/planfact/internal/domain"
	"github.com/alexanderramin/planfact/internal/repository"
)

type entryService struct {
	plans     repository.PlanRepo
	timecards repository.TimecardRepo
}

func NewEntryService(plans repository.PlanRepo, timecards repository.TimecardRepo) EntryService {
	return &entryService{plans: plans, timecards: timecards}
}

func (s *entryService) ListPlans(ctx context.Context, weekStart time.Time) ([]domain.PlanEntry, error) {
	return s.plans.ListByWeek(ctx, weekStart)
}

func (s *entryService) ListTimecards(ctx context.Context, from, to time.Time) ([]domain.TimecardEntry, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("range end %s is before start %s", to.Format(domain.DateLayout), from.Format(domain.DateLayout))
	}
	return s.timecards.ListByRange(ctx, from, to)
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planfact/internal/domain"
	"github.com/alexanderramin/planfact/internal/report"
)

// RefreshRequest selects what a refresh run loads. An empty Employees list
// means every known employee.
type RefreshRequest struct {
	Year      int
	Weeks     []int
	Employees []string
}

// WeeksLabel renders the selected weeks as "03, 04".
func (r RefreshRequest) WeeksLabel() string {
	parts := make([]string, len(r.Weeks))
	for i, w := range r.Weeks {
		parts[i] = fmt.Sprintf("%02d", w)
	}
	return strings.Join(parts, ", ")
}

// Refresher loads one flow's workbooks into the store. File-level failures
// are recorded in run; the returned error is reserved for conditions that
// stop the run, such as a cancelled context.
type Refresher interface {
	Refresh(ctx context.Context, run *report.Run, req RefreshRequest) error
}

type EntryService interface {
	ListPlans(ctx context.Context, weekStart time.Time) ([]domain.PlanEntry, error)
	ListTimecards(ctx context.Context, from, to time.Time) ([]domain.TimecardEntry, error)
}

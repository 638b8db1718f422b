package service

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/alexanderramin/planfact/internal/calendar"
	"github.com/alexanderramin/planfact/internal/discovery"
	"github.com/alexanderramin/planfact/internal/notify"
	"github.com/alexanderramin/planfact/internal/testutil"
	"github.com/alexanderramin/planfact/internal/workbook"
)

// testReference covers budget weeks 3 and 4 of 2024 and knows two employees.
func testReference() *Reference {
	var days []calendar.Day
	for d := 15; d <= 28; d++ {
		week := 3
		if d >= 22 {
			week = 4
		}
		days = append(days, calendar.Day{Date: testutil.Date(2024, 1, d), Year: 2024, Week: week})
	}
	return &Reference{Calendar: calendar.New(days), Employees: []string{"Ivanov", "Petrov", "Sidorov"}}
}

func newLayout(t *testing.T) discovery.Layout {
	t.Helper()
	return discovery.NewLayout(t.TempDir())
}

func savePlan(t *testing.T, layout discovery.Layout, week, employee string, b *testutil.WorkbookBuilder) string {
	t.Helper()
	dir := layout.PlanFolder(week)
	mkdir(t, dir)
	return b.Save(dir, "plan_"+week+"_"+employee+".xlsm")
}

func saveTimecard(t *testing.T, layout discovery.Layout, week, employee string, b *testutil.WorkbookBuilder) string {
	t.Helper()
	dir := layout.FactFolder(week)
	mkdir(t, dir)
	return b.Save(dir, "timecard_"+week+"_"+employee+".xlsm")
}

func planBook(t *testing.T, planner string, rows ...[]any) *testutil.WorkbookBuilder {
	return testutil.NewWorkbook(t).
		Name(workbook.PlannerNameRef, workbook.PlanSheet, 3, 2, planner).
		Table(workbook.PlanSheet, workbook.PlanTable, testutil.PlanHeader("W01", "W02"), rows...)
}

func timecardBook(t *testing.T, employee string, rows ...[]any) *testutil.WorkbookBuilder {
	return testutil.NewWorkbook(t).
		Name(workbook.EmployeeNameRef, workbook.TimecardSheet, 3, 2, employee).
		Table(workbook.TimecardSheet, workbook.TimecardTable, testutil.TimecardHeader("15.01.2024", "16.01.2024"), rows...)
}

// recordingObserver keeps every stage event.
type recordingObserver struct {
	mu     sync.Mutex
	events []StageEvent
}

func (o *recordingObserver) ObserveStage(_ context.Context, e StageEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) forFile(file string) []StageEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []StageEvent
	for _, e := range o.events {
		if e.File == file {
			out = append(out, e)
		}
	}
	return out
}

// capturingNotifier keeps every message it is asked to send.
type capturingNotifier struct {
	sent []notify.Message
	err  error
}

func (n *capturingNotifier) Send(_ context.Context, msg notify.Message) error {
	n.sent = append(n.sent, msg)
	return n.err
}

func mkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("creating %s: %v", dir, err)
	}
}

// Package report accumulates per-file outcomes of a refresh run and renders
// the summary delivered at the end of it.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Flow names the kind of refresh.
type Flow string

const (
	FlowPlans     Flow = "plans"
	FlowTimecards Flow = "timecards"
)

// Title is the capitalised flow name used in subjects.
func (f Flow) Title() string {
	switch f {
	case FlowPlans:
		return "Plans"
	case FlowTimecards:
		return "Timecards"
	default:
		return string(f)
	}
}

// Kind classifies a file outcome.
type Kind string

const (
	KindInserted Kind = "inserted"
	KindEmpty    Kind = "empty"
	KindFailed   Kind = "failed"
)

// Outcome is the result of processing one file. Rows is the number of
// inserted rows, Deleted the number of rows the file replaced.
type Outcome struct {
	Week    string
	File    string
	Kind    Kind
	Rows    int64
	Deleted int64
	Err     error
}

// Line renders the outcome the way it appears in the run log and summary.
func (o Outcome) Line() string {
	switch o.Kind {
	case KindInserted:
		return fmt.Sprintf("[%s] [%s] %-60s [%d]", o.Week, o.File, "Rows were inserted to the database", o.Rows)
	case KindEmpty:
		return fmt.Sprintf("[%s] [%s] File is empty or didn`t pass validation", o.Week, o.File)
	default:
		return fmt.Sprintf("[%s] [%s] Exception was raised:\n%v", o.Week, o.File, o.Err)
	}
}

// WeekTotal is the number of rows inserted for a week.
type WeekTotal struct {
	Week string
	Rows int64
}

func (w WeekTotal) Line() string {
	return fmt.Sprintf("[%s] %-60s [%d]", w.Week, "Total number of inserted rows:", w.Rows)
}

// Run is the report of one refresh run.
type Run struct {
	ID         string
	Flow       Flow
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   []Outcome
	Weeks      []WeekTotal
	Fatal      error

	// detail keeps outcomes and week totals in the order they happened.
	detail []string
}

// New starts a report for flow.
func New(flow Flow, now time.Time) *Run {
	return &Run{ID: uuid.New().String(), Flow: flow, StartedAt: now}
}

// Add records a file outcome.
func (r *Run) Add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	if o.Kind != KindFailed {
		r.detail = append(r.detail, o.Line())
	}
}

// CloseWeek records the total rows inserted for week so far.
func (r *Run) CloseWeek(week string) WeekTotal {
	total := WeekTotal{Week: week}
	for _, o := range r.Outcomes {
		if o.Week == week && o.Kind == KindInserted {
			total.Rows += o.Rows
		}
	}
	r.Weeks = append(r.Weeks, total)
	r.detail = append(r.detail, total.Line()+"\n")
	return total
}

// Fail records an error that ended the run early.
func (r *Run) Fail(err error) {
	r.Fatal = err
}

// Finish stamps the end of the run.
func (r *Run) Finish(now time.Time) {
	r.FinishedAt = now
}

func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// TotalRows is the number of rows inserted across all files.
func (r *Run) TotalRows() int64 {
	var n int64
	for _, o := range r.Outcomes {
		if o.Kind == KindInserted {
			n += o.Rows
		}
	}
	return n
}

// ErrorCount counts failed files plus the fatal error, if any.
func (r *Run) ErrorCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Kind == KindFailed {
			n++
		}
	}
	if r.Fatal != nil {
		n++
	}
	return n
}

func (r *Run) Succeeded() bool {
	return r.ErrorCount() == 0
}

// Subject is the notification subject line.
func (r *Run) Subject() string {
	return r.Flow.Title() + " refresh result"
}

func (r *Run) errorLines() []string {
	var out []string
	for _, o := range r.Outcomes {
		if o.Kind == KindFailed {
			out = append(out, o.Line())
		}
	}
	if r.Fatal != nil {
		out = append(out, fmt.Sprintf("Exception was raised:\n%v", r.Fatal))
	}
	return out
}

// Summary renders the notification body. logPath names the run log file
// that is attached to the message.
func (r *Run) Summary(logPath string) string {
	status := "SUCCESS"
	if !r.Succeeded() {
		status = "FAILURE"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", status)
	fmt.Fprintf(&b, "%s refresh took: %g seconds.\n", r.Flow.Title(), r.Duration().Seconds())
	fmt.Fprintf(&b, "Total number of loaded rows: %d.\n", r.TotalRows())
	fmt.Fprintf(&b, "Total number of errors raised: %d.\n\n", r.ErrorCount())
	b.WriteString("Logs file could be seen in the attachements.\n")
	fmt.Fprintf(&b, "The logs file could be found at: %s\n\n", logPath)
	b.WriteString("Detailed info:\n")
	b.WriteString(strings.Join(r.detail, "\n"))
	b.WriteString("\n")
	if errs := r.errorLines(); len(errs) > 0 {
		b.WriteString("\nDetailed info about errors:\n")
		b.WriteString(strings.Join(errs, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/planfact/internal/report"
)

// FormatRun renders the console summary printed after a refresh.
func FormatRun(run *report.Run) string {
	var b strings.Builder

	facts := []string{
		fmt.Sprintf("%s  %s", StatusBadge(run.Succeeded()), Dim(run.ID)),
		fmt.Sprintf("%-10s %s", "Duration", Seconds(run.Duration())),
		fmt.Sprintf("%-10s %d", "Rows", run.TotalRows()),
		fmt.Sprintf("%-10s %d", "Errors", run.ErrorCount()),
	}
	b.WriteString(RenderBox(run.Flow.Title()+" refresh", strings.Join(facts, "\n")))
	b.WriteString("\n")

	if len(run.Outcomes) > 0 {
		rows := make([][]string, len(run.Outcomes))
		for i, o := range run.Outcomes {
			rows[i] = []string{o.Week, o.File, KindPill(o.Kind), count(o.Rows), count(o.Deleted)}
		}
		b.WriteString("\n" + Header("Files") + "\n")
		b.WriteString(Table{
			Headers: []string{"WEEK", "FILE", "RESULT", "ROWS", "REPLACED"},
			Rows:    rows,
			Right:   map[int]bool{3: true, 4: true},
		}.Render())
	}

	if len(run.Weeks) > 0 {
		rows := make([][]string, len(run.Weeks))
		for i, w := range run.Weeks {
			rows[i] = []string{w.Week, count(w.Rows)}
		}
		b.WriteString("\n" + Header("Weeks") + "\n")
		b.WriteString(Table{Headers: []string{"WEEK", "ROWS"}, Rows: rows, Right: map[int]bool{1: true}}.Render())
	}

	var errs []string
	for _, o := range run.Outcomes {
		if o.Kind == report.KindFailed {
			errs = append(errs, fmt.Sprintf("%s %s: %v", StyleRed.Render("✖"), o.File, o.Err))
		}
	}
	if run.Fatal != nil {
		errs = append(errs, fmt.Sprintf("%s %v", StyleRed.Render("✖"), run.Fatal))
	}
	if len(errs) > 0 {
		b.WriteString("\n" + Header("Errors") + "\n")
		b.WriteString(strings.Join(errs, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

func count(n int64) string {
	if n == 0 {
		return Dim("0")
	}
	return strconv.FormatInt(n, 10)
}

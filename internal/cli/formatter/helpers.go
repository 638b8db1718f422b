package formatter

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/planfact/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Text returns s or a dimmed dash for null values.
func Text(s *string) string {
	if s == nil || *s == "" {
		return Dim("--")
	}
	return *s
}

// Number formats an optional number without trailing zeros.
func Number(f *float64) string {
	if f == nil {
		return Dim("--")
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// Percent formats an optional completion share (0.35) as "35%".
func Percent(f *float64) string {
	if f == nil {
		return Dim("--")
	}
	return strconv.FormatFloat(math.Round(*f*1000)/10, 'f', -1, 64) + "%"
}

// Date formats a calendar date the way the workbooks show it.
func Date(t time.Time) string {
	return t.Format("02.01.2006")
}

// OptionalDate formats an optional date or returns a dimmed dash.
func OptionalDate(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return Date(*t)
}

// Seconds renders a duration as fractional seconds, e.g. "12.5s".
func Seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Round(time.Millisecond).Seconds(), 'f', -1, 64) + "s"
}

// EntryType renders the entry type of a timecard row.
func EntryType(t domain.EntryType) string {
	if t == domain.EntryPlanVsActual {
		return StyleYellow.Render("plan-vs-actual")
	}
	return string(t)
}

package domain

import "fmt"

// WeekLabel formats a budget week as YYYY-Www.
func WeekLabel(year, week int) string {
	return fmt.Sprintf("%d-W%02d", year, week)
}

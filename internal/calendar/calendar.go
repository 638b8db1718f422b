// Package calendar answers budget-week questions from the company calendar
// table: which dates a week spans and which week follows it.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/planfact/internal/domain"
)

var ErrWeekNotFound = errors.New("budget week not found")

// Day is one row of the calendar table.
type Day struct {
	Date time.Time
	Year int
	Week int
}

type weekKey struct{ year, week int }

// Calendar indexes calendar days by budget year and week.
type Calendar struct {
	weeks   map[weekKey]domain.Week
	maxWeek map[int]int
}

// New builds a calendar from its days. Days may come in any order.
func New(days []Day) *Calendar {
	c := &Calendar{
		weeks:   make(map[weekKey]domain.Week),
		maxWeek: make(map[int]int),
	}
	for _, d := range days {
		k := weekKey{d.Year, d.Week}
		w, ok := c.weeks[k]
		if !ok {
			w = domain.Week{Year: d.Year, No: d.Week, Start: d.Date, End: d.Date}
		}
		if d.Date.Before(w.Start) {
			w.Start = d.Date
		}
		if d.Date.After(w.End) {
			w.End = d.Date
		}
		c.weeks[k] = w
		if d.Week > c.maxWeek[d.Year] {
			c.maxWeek[d.Year] = d.Week
		}
	}
	return c
}

// Week returns the first and last calendar date of a budget week.
func (c *Calendar) Week(year, week int) (domain.Week, error) {
	w, ok := c.weeks[weekKey{year, week}]
	if !ok {
		return domain.Week{}, fmt.Errorf("%s: %w", domain.WeekLabel(year, week), ErrWeekNotFound)
	}
	return w, nil
}

// MaxWeek returns the last budget week number of year.
func (c *Calendar) MaxWeek(year int) (int, error) {
	n, ok := c.maxWeek[year]
	if !ok {
		return 0, fmt.Errorf("year %d: %w", year, ErrWeekNotFound)
	}
	return n, nil
}

// Next returns the budget week after (year, week). The week after the last
// week of a year is week 1 of the following year.
func (c *Calendar) Next(year, week int) (int, int, error) {
	last, err := c.MaxWeek(year)
	if err != nil {
		return 0, 0, err
	}
	if week < last {
		return year, week + 1, nil
	}
	return year + 1, 1, nil
}

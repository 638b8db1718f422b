package repository

import (
	"database/sql"
	"time"

	"github.com/alexanderramin/planfact/internal/domain"
)

// dateValue formats a calendar day for storage. Both dialects accept the ISO
// date text.
func dateValue(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// nullableDate converts a *time.Time to a storable value or SQL NULL.
func nullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return dateValue(*t)
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

// parseDate reads a stored date. SQLite hands back the text as written;
// postgres DATE columns arrive as RFC 3339 timestamps, so only the leading
// day part is kept.
func parseDate(s string) (time.Time, error) {
	if len(s) > len(domain.DateLayout) {
		s = s[:len(domain.DateLayout)]
	}
	return time.Parse(domain.DateLayout, s)
}

func parseNullableDate(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseDate(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

// affected sums RowsAffected, tolerating drivers that cannot report it.
func affected(res sql.Result) int64 {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}

package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Str returns a pointer to s.
func Str(s string) *string { return &s }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

// StrOrEmpty dereferences s, treating nil as the empty string.
func StrOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// EqualNullable compares two optional values where nil is a value of its
// own: nil equals nil, nil never equals a present value.
func EqualNullable[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// TaskCovers reports whether the hierarchical task key covers task.
// A nil key is a wildcard and a nil task is compared as "". The key must be
// a prefix of the task that ends on a segment boundary: "1" covers "1",
// "1.2" and "1.2.3" but not "11" or "2".
func TaskCovers(key, task *string) bool {
	if key == nil || *key == "" {
		return true
	}
	t := StrOrEmpty(task)
	if !strings.HasPrefix(t, *key) {
		return false
	}
	if len(t) == len(*key) {
		return true
	}
	last, _ := utf8.DecodeLastRuneInString(*key)
	next, _ := utf8.DecodeRuneInString(t[len(*key):])
	return isSeparator(last) || isSeparator(next)
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

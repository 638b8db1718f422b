package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/planfact/internal/domain"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRenderBox(t *testing.T) {
	result := RenderBox("test", "content here")
	assert.Contains(t, result, "TEST")
	assert.Contains(t, result, "content here")
	assert.Contains(t, result, "╭")
	assert.Contains(t, result, "╰")
}

func TestRenderBoxWithoutTitle(t *testing.T) {
	result := RenderBox("", "just content")
	assert.Contains(t, result, "just content")
	assert.Contains(t, result, "╭")
}

func TestNullableCells(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"nil text", Text(nil), "--"},
		{"empty text", Text(domain.Str("")), "--"},
		{"text", Text(domain.Str("1.2")), "1.2"},
		{"nil number", Number(nil), "--"},
		{"whole number", Number(domain.Float(8)), "8"},
		{"fraction", Number(domain.Float(2.5)), "2.5"},
		{"nil percent", Percent(nil), "--"},
		{"percent", Percent(domain.Float(0.35)), "35%"},
		{"full", Percent(domain.Float(1)), "100%"},
		{"nil date", OptionalDate(nil), "--"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripANSI(tt.got))
		})
	}
}

func TestDateAndSeconds(t *testing.T) {
	assert.Equal(t, "15.01.2024", Date(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "12.5s", Seconds(12500*time.Millisecond))
	assert.Equal(t, "0s", Seconds(0))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(Table{
		Headers: []string{"NAME", "ROWS"},
		Rows:    [][]string{{"a", "5"}, {"longer", "120"}},
		Right:   map[int]bool{1: true},
	}.Render())

	assert.Equal(t, "NAME    ROWS\n──────  ────\na          5\nlonger   120\n", out)
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

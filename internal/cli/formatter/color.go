package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planfact/internal/report"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// KindPill renders a file outcome kind such as "● inserted".
func KindPill(kind report.Kind) string {
	switch kind {
	case report.KindInserted:
		return StyleGreen.Render("● inserted")
	case report.KindEmpty:
		return StyleYellow.Render("○ empty")
	case report.KindFailed:
		return StyleRed.Render("✖ failed")
	default:
		return StyleDim.Render(string(kind))
	}
}

// StatusBadge renders the overall result of a run.
func StatusBadge(ok bool) string {
	if ok {
		return StyleGreen.Render("✔ SUCCESS")
	}
	return StyleRed.Render("✖ FAILURE")
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

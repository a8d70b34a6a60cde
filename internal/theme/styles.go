package theme

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Text styles
var (
	FailStyle = lipgloss.NewStyle().
			Foreground(ColorFail).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true).
			Padding(0, 1)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	PassStyle = lipgloss.NewStyle().
			Foreground(ColorPass).
			Bold(true)

	CellStyle = lipgloss.NewStyle().
			Foreground(ColorNormal).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)
)

// Status renders PASS or FAIL
func Status(passed bool) string {
	if passed {
		return PassStyle.Render("PASS")
	}
	return FailStyle.Render("FAIL")
}

// ExitCode renders an exit status, highlighting failures
func ExitCode(code int) string {
	style := PassStyle
	if code != 0 {
		style = FailStyle
	}
	return style.UnsetBold().Render(strconv.Itoa(code))
}

// NewTable returns a bordered table with the shared header and cell styles
func NewTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorBorder)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}
			return CellStyle
		})
}

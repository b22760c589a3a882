package runner

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("212")
	errorColor   = lipgloss.Color("196")
	mutedColor   = lipgloss.Color("241")
	okColor      = lipgloss.Color("42")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	labelFocusedStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	requiredStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	fieldStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("238")).
			PaddingLeft(1)

	fieldFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(primaryColor).
				PaddingLeft(1)

	fieldInvalidStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(errorColor).
				PaddingLeft(1)

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	optionSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("237"))

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	statusErrStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	modeStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	stepCurrentStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	stepCompleteStyle = lipgloss.NewStyle().
				Foreground(okColor)

	stepUpcomingStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250"))

	stepDisabledStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Strikethrough(true)

	paletteBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	paletteMatchStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Underline(true)

	paletteDimStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

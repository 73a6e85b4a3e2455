package common

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	accent  = lipgloss.Color("#8AADF4")
	muted   = lipgloss.Color("#6E738D")
	border  = lipgloss.Color("#494D64")
	good    = lipgloss.Color("#A6DA95")
	bad     = lipgloss.Color("#ED8796")
	link    = lipgloss.Color("#EED49F")
	primary = lipgloss.Color("#CAD3F5")
)

var (
	AppTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(1, 2, 0, 1)
	IdentityStyle = lipgloss.NewStyle().Bold(true).Foreground(good)
	TaglineStyle  = lipgloss.NewStyle().Italic(true).Foreground(muted).MarginLeft(1)

	QuestionStyle = lipgloss.NewStyle().Bold(true).Foreground(primary)
	AnswerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8C0E0")).PaddingLeft(2)
	// LabelStyle renders non-actionable like counts.
	LabelStyle = lipgloss.NewStyle().Foreground(muted)

	// SelectedStyle frames the card under the cursor; UnselectedStyle every other card.
	SelectedStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1)
	UnselectedStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().Foreground(muted).PaddingTop(1)

	ActionActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	ActionInactiveStyle = lipgloss.NewStyle().Foreground(link).Padding(0, 1)

	// PaneStyle frames the login and registration forms.
	PaneStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(border).Padding(0, 1).MarginLeft(1)

	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(bad)
	SuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(good)
)

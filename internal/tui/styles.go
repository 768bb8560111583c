package tui

import "github.com/charmbracelet/lipgloss"

var (
	primary     = lipgloss.Color("#101F38")
	accent      = lipgloss.Color("#8BC34A")
	muted       = lipgloss.Color("#8A94A6")
	destructive = lipgloss.Color("#e53935")
	warning     = lipgloss.Color("#FFC107")
	info        = lipgloss.Color("#2196F3")
)

// Styles 终端表单样式
type Styles struct {
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	Hint         lipgloss.Style
	FieldError   lipgloss.Style
	Failure      lipgloss.Style
	ResultCard   lipgloss.Style
	ResultTitle  lipgloss.Style
	Heading      lipgloss.Style
	Status       lipgloss.Style
	Help         lipgloss.Style
	Spinner      lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:        lipgloss.NewStyle().Bold(true).Foreground(accent),
		Subtitle:     lipgloss.NewStyle().Foreground(muted),
		Label:        lipgloss.NewStyle().Foreground(muted),
		FocusedLabel: lipgloss.NewStyle().Bold(true).Foreground(info),
		Hint:         lipgloss.NewStyle().Italic(true).Foreground(muted).PaddingLeft(2),
		FieldError:   lipgloss.NewStyle().Foreground(destructive).PaddingLeft(2),
		Failure:      lipgloss.NewStyle().Bold(true).Foreground(destructive),
		ResultCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1).
			MarginTop(1),
		ResultTitle: lipgloss.NewStyle().Bold(true).Foreground(primary).Background(accent).Padding(0, 1),
		Heading:     lipgloss.NewStyle().Bold(true).Underline(true),
		Status:      lipgloss.NewStyle().Foreground(warning),
		Help:        lipgloss.NewStyle().Foreground(muted).MarginTop(1),
		Spinner:     lipgloss.NewStyle().Foreground(accent),
	}
}

package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	TabActive    lipgloss.Style
	TabInactive  lipgloss.Style
	StatusLine   lipgloss.Style
	SummaryPane  lipgloss.Style
	InputPane    lipgloss.Style
	PreviewCard  lipgloss.Style
	PreviewTitle lipgloss.Style
	PreviewMeta  lipgloss.Style
	MessageInfo  lipgloss.Style
	MessageError lipgloss.Style
	Help         lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Padding(0, 2),
		StatusLine: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1),
		SummaryPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1),
		InputPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("35")).
			Padding(0, 1),
		PreviewCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("243")).
			Padding(0, 1),
		PreviewTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110")),
		PreviewMeta: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true),
		MessageInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color("35")),
		MessageError: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}

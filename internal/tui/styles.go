package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorGreen  = "#00D787"
	colorCyan   = "#00AFD7"
	colorRed    = "#FF5F5F"
	colorGray   = "240"
	colorBorder = "238"
)

type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	user     lipgloss.Style
	bot      lipgloss.Style
	body     lipgloss.Style
	help     lipgloss.Style
	status   lipgloss.Style
	failure  lipgloss.Style
	footer   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorCyan)).Bold(true).Padding(0, 1),
		subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)).Padding(0, 1),
		user:     lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)).Bold(true),
		bot:      lipgloss.NewStyle().Foreground(lipgloss.Color(colorCyan)).Bold(true),
		body:     lipgloss.NewStyle().PaddingLeft(2),
		help:     lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)).Italic(true),
		status:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)),
		failure:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed)),
		footer: lipgloss.NewStyle().
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(colorBorder)),
	}
}

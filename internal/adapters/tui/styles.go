package tui

import "github.com/charmbracelet/lipgloss"

const cardWidth = 60

var (
	styleCard = lipgloss.NewStyle().
			Width(cardWidth).
			Height(7).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			Align(lipgloss.Center, lipgloss.Center).
			Background(lipgloss.Color("252")).
			Foreground(lipgloss.Color("0"))
	styleCardBack = styleCard.
			BorderForeground(lipgloss.Color("33"))
	styleSide      = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	styleNavButton = lipgloss.NewStyle().
			Padding(0, 3).
			Background(lipgloss.Color("#007BFF")).
			Foreground(lipgloss.Color("#FFFFFF"))
	styleCounter = lipgloss.NewStyle().
			Padding(0, 1).
			Background(lipgloss.Color("240")).
			Foreground(lipgloss.Color("#FFFFFF"))
	styleAutoplayOn = lipgloss.NewStyle().
			Width(cardWidth + 10).
			Align(lipgloss.Center).
			Background(lipgloss.Color("#C22222")).
			Foreground(lipgloss.Color("#FFFFFF"))
	styleAutoplayOff = styleAutoplayOn.
				Background(lipgloss.Color("#28a745"))
	styleBarFilled = lipgloss.NewStyle().Foreground(lipgloss.Color("#4caf50"))
	styleBarEmpty  = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0e0e0"))
	styleSubtle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleError     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
)

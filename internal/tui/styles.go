package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorMagenta   = lipgloss.Color("165")
	colorPink      = lipgloss.Color("212")
	colorCyan      = lipgloss.Color("81")
	colorGreen     = lipgloss.Color("78")
	colorRed       = lipgloss.Color("196")
	colorWhite     = lipgloss.Color("15")
	colorLightGrey = lipgloss.Color("252")
	colorGrey      = lipgloss.Color("245")
	colorDimGrey   = lipgloss.Color("240")
	colorDarkGrey  = lipgloss.Color("236")
	colorFaintGrey = lipgloss.Color("241")
	colorPurple    = lipgloss.Color("62")
)

var (
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			Background(colorPurple).
			Padding(0, 1)

	StyleStatusBar = lipgloss.NewStyle().
			Background(colorDarkGrey).
			Foreground(colorLightGrey).
			Padding(0, 1)

	StyleError = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true).
			Background(colorDarkGrey).
			Padding(0, 1)

	StyleStatus = lipgloss.NewStyle().
			Foreground(colorGreen).
			Background(colorDarkGrey).
			Padding(0, 1)

	StyleHelp = lipgloss.NewStyle().
			Foreground(colorFaintGrey).
			Italic(true).
			Padding(0, 1)

	StyleSelected = lipgloss.NewStyle().
			Foreground(colorPink).
			Bold(true)

	StylePanelTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGrey).
			Padding(0, 1)

	StylePanelTitleFocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite).
				Background(colorMagenta).
				Padding(0, 1)

	StyleSeparator = lipgloss.NewStyle().
			Foreground(colorDimGrey)

	StyleCursor = lipgloss.NewStyle().
			Foreground(colorPink).
			Bold(true)

	StyleFileIncluded = lipgloss.NewStyle().
				Foreground(colorGreen)

	StyleFileExcluded = lipgloss.NewStyle().
				Foreground(colorDimGrey)

	StyleTorrentLive = lipgloss.NewStyle().
				Foreground(colorGreen)

	StyleTorrentIdle = lipgloss.NewStyle().
				Foreground(colorDimGrey)

	StyleInvalidPath = lipgloss.NewStyle().
				Foreground(colorRed)

	StyleSuggestion = lipgloss.NewStyle().
			Foreground(colorCyan)

	StylePathInfo = lipgloss.NewStyle().
			Foreground(colorGrey)

	StyleDropdownRow = lipgloss.NewStyle().
				Foreground(colorLightGrey)

	StyleDropdownSel = lipgloss.NewStyle().
				Foreground(colorWhite).
				Background(colorPurple)
)

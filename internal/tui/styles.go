package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite     = lipgloss.Color("#FFFFFF")
	colorLightGray = lipgloss.Color("#CCCCCC")
	colorGray      = lipgloss.Color("#888888")
	colorDarkGray  = lipgloss.Color("#444444")
	colorPurple    = lipgloss.Color("#8524a6")
	colorRed       = lipgloss.Color("#FF5F5F")
	colorYellow    = lipgloss.Color("#FFD75F")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			MarginTop(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorLightGray)

	labelFocusedStyle = lipgloss.NewStyle().
				Foreground(colorWhite).
				Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Bold(true).
			MarginTop(1)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorDarkGray).
			Padding(0, 2)

	buttonFocusedStyle = lipgloss.NewStyle().
				Foreground(colorWhite).
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(colorPurple).
				Padding(0, 2)

	invalidStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			PaddingLeft(2)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			MarginTop(1)

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDarkGray).
			Italic(true).
			MarginTop(1)
)

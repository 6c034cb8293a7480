package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/teletext/internal/settings"
)

// palette is one screen colour scheme.
type palette struct {
	bg      lipgloss.Color
	fg      lipgloss.Color
	header  lipgloss.Color
	accent  lipgloss.Color
	dim     lipgloss.Color
	fastext [4]lipgloss.Color // red, green, yellow, cyan
}

// classicPalette is the broadcast look: white on blue, yellow header.
var classicPalette = palette{
	bg:      lipgloss.Color("17"),
	fg:      lipgloss.Color("255"),
	header:  lipgloss.Color("226"),
	accent:  lipgloss.Color("51"),
	dim:     lipgloss.Color("245"),
	fastext: [4]lipgloss.Color{"196", "46", "226", "51"},
}

var amberPalette = palette{
	bg:      lipgloss.Color("0"),
	fg:      lipgloss.Color("214"),
	header:  lipgloss.Color("220"),
	accent:  lipgloss.Color("208"),
	dim:     lipgloss.Color("94"),
	fastext: [4]lipgloss.Color{"208", "214", "220", "172"},
}

var monoPalette = palette{
	bg:      lipgloss.Color("0"),
	fg:      lipgloss.Color("252"),
	header:  lipgloss.Color("255"),
	accent:  lipgloss.Color("250"),
	dim:     lipgloss.Color("240"),
	fastext: [4]lipgloss.Color{"250", "250", "250", "250"},
}

func paletteFor(theme settings.Theme) palette {
	switch theme {
	case settings.ThemeAmber:
		return amberPalette
	case settings.ThemeMono:
		return monoPalette
	default:
		return classicPalette
	}
}

// styles are the derived lipgloss styles for one palette.
type styles struct {
	screen  lipgloss.Style
	header  lipgloss.Style
	content lipgloss.Style
	dim     lipgloss.Style
	errorT  lipgloss.Style
	fastext [4]lipgloss.Style
}

func newStyles(p palette) styles {
	s := styles{
		screen:  lipgloss.NewStyle().Background(p.bg),
		header:  lipgloss.NewStyle().Background(p.bg).Foreground(p.header).Bold(true),
		content: lipgloss.NewStyle().Background(p.bg).Foreground(p.fg),
		dim:     lipgloss.NewStyle().Background(p.bg).Foreground(p.dim),
		errorT:  lipgloss.NewStyle().Background(p.bg).Foreground(lipgloss.Color("196")).Bold(true),
	}
	for i, c := range p.fastext {
		s.fastext[i] = lipgloss.NewStyle().Background(p.bg).Foreground(c).Bold(true)
	}
	return s
}

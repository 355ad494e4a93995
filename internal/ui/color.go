// Package ui renders the coloured tables, heatmaps and labels printed by the
// momentum CLI.
package ui

import (
	"github.com/pterm/pterm"
)

// DarkTheme selects the light variant of every colour so that output stays
// readable on a dark terminal background. It is set once from the config.
var DarkTheme bool

// shade holds the two variants of a colour.
type shade struct {
	normal func(a ...any) string
	dark   func(a ...any) string
}

var (
	green     = shade{pterm.Green, pterm.LightGreen}
	cyan      = shade{pterm.Cyan, pterm.LightCyan}
	magenta   = shade{pterm.Magenta, pterm.LightMagenta}
	blue      = shade{pterm.Blue, pterm.LightBlue}
	red       = shade{pterm.Red, pterm.LightRed}
	highlight = shade{pterm.Black, pterm.LightWhite}
)

func (s shade) paint(a any) string {
	if DarkTheme {
		return s.dark(a)
	}

	return s.normal(a)
}

// Green marks completed records and improvements.
func Green(a any) string {
	return green.paint(a)
}

// Cyan marks open records and the time left in a session.
func Cyan(a any) string {
	return cyan.paint(a)
}

// Magenta marks paused sessions.
func Magenta(a any) string {
	return magenta.paint(a)
}

// Blue is used for section headings.
func Blue(a any) string {
	return blue.paint(a)
}

// Red marks cancelled or archived records and declines.
func Red(a any) string {
	return red.paint(a)
}

// Highlight makes a value stand out from the surrounding text.
func Highlight(a any) string {
	return highlight.paint(a)
}

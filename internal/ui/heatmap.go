package ui

import "github.com/pterm/pterm"

const heatCell = "■"

// heat colours from no activity (0) to the highest level (4).
var (
	lightHeat = []pterm.RGB{
		{R: 235, G: 237, B: 240},
		{R: 155, G: 233, B: 168},
		{R: 64, G: 196, B: 99},
		{R: 48, G: 161, B: 78},
		{R: 33, G: 110, B: 57},
	}

	darkHeat = []pterm.RGB{
		{R: 22, G: 27, B: 34},
		{R: 14, G: 68, B: 41},
		{R: 0, G: 109, B: 50},
		{R: 38, G: 166, B: 65},
		{R: 57, G: 211, B: 83},
	}
)

// HeatCell renders one heatmap square for level. Levels outside 0..4 are
// clamped.
func HeatCell(level int) string {
	palette := lightHeat
	if DarkTheme {
		palette = darkHeat
	}

	level = max(0, min(level, len(palette)-1))

	return palette[level].Sprint(heatCell)
}

// HeatLegend renders the "Less ... More" key under a heatmap.
func HeatLegend(levels int) string {
	legend := "Less "
	for i := range levels {
		legend += HeatCell(i) + " "
	}

	return legend + "More"
}

package components

import (
	"math"
	"strings"

	"github.com/Veraticus/unroll/internal/tui/themes"
)

// Bar is one row of a horizontal bar chart.
type Bar struct {
	Label   string
	Display string
	Value   float64
}

// BarWidth returns how many cells a value occupies when max fills width.
func BarWidth(value, maxValue float64, width int) int {
	if maxValue <= 0 || value <= 0 || width <= 0 {
		return 0
	}
	n := int(math.Round(value / maxValue * float64(width)))
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return n
}

// RenderBars draws bars scaled to the largest value, one per line.
func RenderBars(bars []Bar, width int, theme themes.Theme) string {
	if len(bars) == 0 {
		return ""
	}
	width = max(width, 0)

	var maxValue float64
	labelWidth := 0
	for _, bar := range bars {
		maxValue = math.Max(maxValue, bar.Value)
		labelWidth = max(labelWidth, len([]rune(bar.Label)))
	}

	lines := make([]string, 0, len(bars))
	for _, bar := range bars {
		filled := BarWidth(bar.Value, maxValue, width)
		line := padRight(bar.Label, labelWidth+1) +
			theme.Bar.Render(strings.Repeat("█", filled)) +
			theme.BarEmpty.Render(strings.Repeat("░", width-filled)) +
			" " + bar.Display
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

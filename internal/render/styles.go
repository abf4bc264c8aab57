package render

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	frameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	blankStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	gridStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).MarginTop(1)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// Color ramps by theme name, low to high.
var themes = map[string][]string{
	"viridis": {"#440154", "#46327e", "#365c8d", "#277f8e", "#1fa187", "#4ac16d", "#a0da39", "#fde725"},
	"inferno": {"#000004", "#320a5e", "#781c6d", "#bc3754", "#ed6925", "#fbb61a", "#fcffa4"},
	"gray":    {"#101010", "#3a3a3a", "#6f6f6f", "#a4a4a4", "#dadada", "#ffffff"},
}

func ramp(theme string) []string {
	if r, ok := themes[theme]; ok {
		return r
	}
	return themes["viridis"]
}

// rampColor interpolates a normalized value onto a ramp, returning a hex
// color string.
func rampColor(stops []string, t float64) string {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	pos := t * float64(len(stops)-1)
	lo := int(pos)
	if lo >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	frac := pos - float64(lo)

	sr, sg, sb := parseHex(stops[lo])
	er, eg, eb := parseHex(stops[lo+1])

	r := int(float64(sr) + frac*float64(er-sr))
	g := int(float64(sg) + frac*float64(eg-sg))
	b := int(float64(sb) + frac*float64(eb-sb))

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// rampCell renders one heatmap cell at normalized value t.
func rampCell(stops []string, t float64) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(rampColor(stops, t))).Render("█")
}

func parseHex(hex string) (int, int, int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	r, _ := strconv.ParseInt(hex[1:3], 16, 32)
	g, _ := strconv.ParseInt(hex[3:5], 16, 32)
	b, _ := strconv.ParseInt(hex[5:7], 16, 32)
	return int(r), int(g), int(b)
}

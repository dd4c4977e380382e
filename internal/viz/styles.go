package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const barWidth = 20

// Bar renders v in [-1, 1] as a bar growing left or right of a center mark.
func Bar(v float64, width int, s Styles) string {
	half := width / 2
	n := int(math.Round(math.Min(math.Abs(v), 1) * float64(half)))

	left := strings.Repeat("·", half)
	right := strings.Repeat("·", half)
	switch {
	case v > 0:
		right = s.Forward.Render(strings.Repeat("█", n)) + strings.Repeat("·", half-n)
	case v < 0:
		left = strings.Repeat("·", half-n) + s.Reverse.Render(strings.Repeat("█", n))
	}
	return left + "│" + right
}

// RenderMix lays out one row per motor: name, signed bar, velocity and
// actuator command.
func RenderMix(names []string, vels, cmds []float64) string {
	return renderMix(names, vels, cmds, ThemeMinimal.Styles())
}

func renderMix(names []string, vels, cmds []float64, s Styles) string {
	width := 0
	for _, name := range names {
		width = max(width, lipgloss.Width(name))
	}

	var b strings.Builder
	for i, name := range names {
		v := 0.0
		if i < len(vels) {
			v = vels[i]
		}
		line := fmt.Sprintf("%-*s %s %+.3f", width, name, Bar(v, barWidth, s), v)
		if i < len(cmds) {
			line += s.Value.Render(fmt.Sprintf("  %8.1f", cmds[i]))
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// RenderMetrics prints metrics sorted by name.
func RenderMetrics(m map[string]float64) string {
	s := ThemeMinimal.Styles()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(s.Label.Width(12).Render(k) + s.Value.Render(fmt.Sprintf("%.4f", m[k])) + "\n")
	}
	return b.String()
}

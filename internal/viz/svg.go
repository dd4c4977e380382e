package viz

import (
	"fmt"
	"math"
	"strings"
)

var seriesColors = []string{"#00ff88", "#00ccff", "#ffcc00", "#ff6b6b", "#ff9ff3", "#88ff88", "#ffffff", "#ff8800"}

// SVG draws every set dot of the canvas as a circle, scale pixels apart.
func (c *Canvas) SVG(scale float64, fill string) string {
	w, h := c.Pixels()
	width, height := float64(w)*scale, float64(h)*scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, fill)

	r := scale * 0.4
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c.IsSet(x, y) {
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
					float64(x)*scale+scale/2, float64(y)*scale+scale/2, r)
			}
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// SeriesSVG plots each series against xs as a polyline, with the y axis
// fixed to [-1, 1] and a legend of names. Series shorter than two points are
// skipped.
func SeriesSVG(xs []float64, series [][]float64, names []string, width, height int) string {
	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
	}
	rangeX := maxX - minX
	if rangeX == 0 || math.IsInf(rangeX, 0) {
		minX, rangeX = 0, 1
	}

	w, h := float64(width), float64(height)
	project := func(x, y float64) (float64, float64) {
		return (x - minX) / rangeX * w, h / 2 * (1 - y)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444466"/>
`, width, height, width, height, h/2, width, h/2)

	for i, ys := range series {
		n := min(len(xs), len(ys))
		if n < 2 {
			continue
		}
		color := seriesColors[i%len(seriesColors)]
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color)
		for j := 0; j < n; j++ {
			x, y := project(xs[j], ys[j])
			if j > 0 {
				sb.WriteString(" L")
			}
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		}
		sb.WriteString("\"/>\n")

		if i < len(names) {
			fmt.Fprintf(&sb, "<text x=\"8\" y=\"%d\" fill=\"%s\" font-family=\"monospace\" font-size=\"12\">%s</text>\n",
				16*(i+1), color, names[i])
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

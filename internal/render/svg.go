package render

import (
	"fmt"
	"math"
	"os"
	"strings"
)

const svgCell = 8.0

// Save writes the plot as an SVG image.
func (p *SlicePlot) Save(path string) error {
	return os.WriteFile(path, []byte(p.svgDocument()), 0644)
}

func (p *SlicePlot) svgDocument() string {
	ras := p.displayRaster()
	stops := ramp(p.opts.Theme)

	width := float64(ras.Width) * svgCell
	height := float64(ras.Height) * svgCell
	margin := 24.0

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height+margin, width, height+margin))

	sb.WriteString(fmt.Sprintf(`<text x="4" y="16" fill="#cccccc" font-family="monospace" font-size="12">%s  normal=%s</text>
`, p.field, p.normal))

	for j := 0; j < ras.Height; j++ {
		for i := 0; i < ras.Width; i++ {
			v := ras.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(i)*svgCell, margin+float64(j)*svgCell, svgCell, svgCell, rampColor(stops, ras.Norm(v))))
		}
	}

	for _, box := range p.overlay {
		x0 := width * (box.u0 - p.uMin) / (p.uMax - p.uMin)
		x1 := width * (box.u1 - p.uMin) / (p.uMax - p.uMin)
		y0 := margin + height*(1-(box.v1-p.vMin)/(p.vMax-p.vMin))
		y1 := margin + height*(1-(box.v0-p.vMin)/(p.vMax-p.vMin))
		stroke := "#ffffff"
		if box.level > 0 {
			stroke = "#bbbbbb"
		}
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="1"/>
`, x0, y0, x1-x0, y1-y0, stroke))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

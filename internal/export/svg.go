// Package export renders lattices and recorded series to SVG and GIF
// files.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/isinglab/internal/ising"
	"github.com/san-kum/isinglab/internal/viz"
)

// LatticeToSVG renders a snapshot as a grid of colored cells, one rect
// per spin, using the theme's spin colors.
func LatticeToSVG(snap *ising.Snapshot, cell float64, theme viz.Theme) string {
	if snap == nil || snap.Size == 0 {
		return ""
	}

	n := snap.Size
	dim := float64(n) * cell

	up := rgbaHex(theme.UpRGBA.R, theme.UpRGBA.G, theme.UpRGBA.B)
	down := rgbaHex(theme.DownRGBA.R, theme.DownRGBA.G, theme.DownRGBA.B)
	bg := rgbaHex(theme.BgRGBA.R, theme.BgRGBA.G, theme.BgRGBA.B)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, dim, dim, dim, dim, bg))

	// Down spins merge into the grouped fill; up spins get their own group.
	sb.WriteString(fmt.Sprintf(`<g fill="%s">
`, down))
	writeCells(&sb, snap, cell, -1)
	sb.WriteString("</g>\n")
	sb.WriteString(fmt.Sprintf(`<g fill="%s">
`, up))
	writeCells(&sb, snap, cell, 1)
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func writeCells(sb *strings.Builder, snap *ising.Snapshot, cell float64, sign int8) {
	n := snap.Size
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if snap.Spins[i*n+j] != sign {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>
`, float64(j)*cell, float64(i)*cell, cell, cell))
		}
	}
}

// SeriesToSVG draws one series as a polyline scaled to the viewport.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	rng := max - min
	if rng == 0 {
		rng = 1
	}
	min -= rng * 0.1
	max += rng * 0.1
	rng = max - min

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) / float64(len(values)-1) * float64(width)
		y := float64(height) - (v-min)/rng*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG, one dot per lit
// sub-pixel.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height))

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func rgbaHex(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/clothsim/internal/lattice"
	"github.com/san-kum/clothsim/internal/viz"
)

const (
	background = "#0a0a0a"
	clothColor = "#b4b4b4"
	anchorFill = "#ffffff"
)

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.SubWidth()) * scale
	height := float64(canvas.SubHeight()) * scale

	var sb strings.Builder
	header(&sb, width, height)
	sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", clothColor))

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
						sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// LatticeToSVG draws a stored lattice as vector lines in world coordinates.
// nodes are row-major with cols entries per row.
func LatticeToSVG(nodes []lattice.Node, rows, cols int, width, height, scale float64) (string, error) {
	if rows*cols != len(nodes) {
		return "", fmt.Errorf("export: %d nodes do not fill a %dx%d lattice", len(nodes), rows, cols)
	}
	if scale <= 0 {
		scale = 1
	}

	var sb strings.Builder
	header(&sb, width*scale, height*scale)

	sb.WriteString(fmt.Sprintf("<g stroke=\"%s\" stroke-width=\"1\">\n", clothColor))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			n := nodes[r*cols+c]
			if c+1 < cols {
				segment(&sb, n, nodes[r*cols+c+1], scale)
			}
			if r+1 < rows {
				segment(&sb, n, nodes[(r+1)*cols+c], scale)
			}
		}
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", clothColor))
	for _, n := range nodes {
		radius := 1.5
		fill := ""
		if n.Locked {
			radius = 3
			fill = fmt.Sprintf(" fill=\"%s\"", anchorFill)
		}
		sb.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.1f\"%s/>\n", n.X*scale, n.Y*scale, radius, fill))
	}
	sb.WriteString("</g>\n</svg>")

	return sb.String(), nil
}

func segment(sb *strings.Builder, a, b lattice.Node, scale float64) {
	sb.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\"/>\n",
		a.X*scale, a.Y*scale, b.X*scale, b.Y*scale))
}

func header(sb *strings.Builder, width, height float64) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}

type Point struct {
	X, Y float64
}

// SeriesToSVG plots values against times as a single polyline.
func SeriesToSVG(times, values []float64, width, height int, strokeColor string) string {
	n := min(len(times), len(values))
	points := make([]Point, n)
	for i := 0; i < n; i++ {
		points[i] = Point{X: times[i], Y: values[i]}
	}
	return TrajectoryToSVG(points, width, height, strokeColor)
}

// TrajectoryToSVG creates an SVG from trajectory data
func TrajectoryToSVG(points []Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

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

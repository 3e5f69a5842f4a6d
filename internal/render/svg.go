package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/moodviz/moodviz/internal/scene"
)

// SVG converts a frame to a standalone SVG document. Gradients become a
// vertical linearGradient and faded lines a per-line gradient stroke.
func SVG(frame *scene.Frame) string {
	var sb strings.Builder
	defs := 0

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#000000"/>
`, frame.Width, frame.Height, frame.Width, frame.Height))

	for i := range frame.Commands {
		c := &frame.Commands[i]
		alpha := scene.ClampAlpha(c.Alpha)

		switch c.Kind {
		case scene.KindGradient:
			defs++
			id := fmt.Sprintf("bg%d", defs)
			sb.WriteString(fmt.Sprintf(`<defs><linearGradient id="%s" x1="0" y1="0" x2="0" y2="1">`, id))
			for k, stop := range c.Stops {
				offset := 0.0
				if len(c.Stops) > 1 {
					offset = float64(k) / float64(len(c.Stops)-1)
				}
				sb.WriteString(fmt.Sprintf(`<stop offset="%.3f" stop-color="%s"/>`, offset, hex(stop)))
			}
			sb.WriteString(fmt.Sprintf("</linearGradient></defs>\n<rect width=\"100%%\" height=\"100%%\" fill=\"url(#%s)\"/>\n", id))

		case scene.KindCircle:
			if len(c.Points) == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" %s/>`+"\n",
				c.Points[0].X, c.Points[0].Y, c.Radius, paint(c, alpha)))

		case scene.KindPolygon, scene.KindPolyline:
			if len(c.Points) < 2 {
				continue
			}
			tag := "polyline"
			if c.Kind == scene.KindPolygon {
				tag = "polygon"
			}
			sb.WriteString(fmt.Sprintf(`<%s points="%s" %s/>`+"\n", tag, points(c.Points), paint(c, alpha)))

		case scene.KindLine:
			if len(c.Points) < 2 {
				continue
			}
			a, b := c.Points[0], c.Points[1]
			defs++
			id := fmt.Sprintf("ln%d", defs)
			sb.WriteString(fmt.Sprintf(`<defs><linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f">`+
				`<stop offset="0" stop-color="%s" stop-opacity="%.3f"/><stop offset="1" stop-color="%s" stop-opacity="%.3f"/>`+
				"</linearGradient></defs>\n",
				id, a.X, a.Y, b.X, b.Y, hex(c.Color), alpha, hex(c.Color), scene.ClampAlpha(c.EndAlpha)))
			sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="url(#%s)" stroke-width="%.2f" stroke-linecap="round"/>`+"\n",
				a.X, a.Y, b.X, b.Y, id, c.Width))

		case scene.KindText:
			if len(c.Points) == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<text x="%.2f" y="%.2f" fill="%s" fill-opacity="%.3f" font-family="sans-serif" font-size="16" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
				c.Points[0].X, c.Points[0].Y, hex(c.Color), alpha, html.EscapeString(c.Text)))
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func paint(c *scene.Command, alpha float64) string {
	if c.Fill {
		return fmt.Sprintf(`fill="%s" fill-opacity="%.3f"`, hex(c.Color), alpha)
	}
	return fmt.Sprintf(`fill="none" stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f"`, hex(c.Color), alpha, c.Width)
}

func points(pts []scene.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

func hex(c colorful.Color) string {
	return c.Clamped().Hex()
}

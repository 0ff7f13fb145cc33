// Package report renders gauge chart specifications into presentable
// artifacts: an SVG visual, a standalone HTML page, a plain-text
// console summary, and a JSON serialization of the spec itself.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/mvello/sentigauge/pkg/models"
	"github.com/mvello/sentigauge/pkg/utils"
)

// ════════════════════════════════════════════════════════════════════
// SVG Gauge Renderer — Pure Go, Zero Dependencies
// ════════════════════════════════════════════════════════════════════

// SVGConfig holds rendering parameters for the gauge SVG.
type SVGConfig struct {
	Width     int    // overall width in pixels (default: 420)
	BgColor   string // background color (default: "#ffffff")
	TextColor string // title and tick label color (default: "#2c3e50")
	FontSize  int    // tick label font size (default: 11)
}

// DefaultSVGConfig returns sensible defaults for gauge rendering.
func DefaultSVGConfig() SVGConfig {
	return SVGConfig{
		Width:     420,
		BgColor:   "#ffffff",
		TextColor: "#2c3e50",
		FontSize:  11,
	}
}

// GaugeSVG renders a ChartSpec as a semicircular gauge: background zone
// arcs, a value arc in the tier color, axis ticks, a threshold marker
// at the target, the numeric readout with its delta, and the optional
// breakdown annotation below the dial.
func GaugeSVG(spec *models.ChartSpec, cfg SVGConfig) string {
	if spec == nil {
		return emptySVG(cfg, "No chart data")
	}
	if cfg.Width == 0 {
		cfg = DefaultSVGConfig()
	}

	annotationLines := 0
	if spec.Annotation != "" {
		annotationLines = strings.Count(spec.Annotation, "\n") + 1
	}

	w := cfg.Width
	cx := float64(w) / 2
	cy := float64(w)/2 - 10
	radius := float64(w)/2 - 40
	height := w/2 + 70 + annotationLines*18

	axisSpan := spec.Axis.Max - spec.Axis.Min
	if axisSpan <= 0 {
		axisSpan = 100
	}

	// Maps an axis value onto the dial angle: min is 180° (left),
	// max is 0° (right).
	valueAngle := func(v float64) float64 {
		ratio := (v - spec.Axis.Min) / axisSpan
		if ratio < 0 {
			ratio = 0
		}
		if ratio > 1 {
			ratio = 1
		}
		return math.Pi - ratio*math.Pi
	}
	pointAt := func(angle, r float64) (float64, float64) {
		return cx + r*math.Cos(angle), cy - r*math.Sin(angle)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`,
		w, height, w, height))
	sb.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="%s"/>`, w, height, cfg.BgColor))

	// Title
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="22" font-size="16" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`,
		cx, cfg.TextColor, escapeXML(spec.Title)))

	// Background zone arcs
	for _, z := range spec.Zones {
		sb.WriteString(arcPath(cx, cy, radius, valueAngle(z.From), valueAngle(z.To), z.Color, z.Opacity, 14))
	}

	// Value arc in the tier color
	sb.WriteString(arcPath(cx, cy, radius, math.Pi, valueAngle(spec.Value), spec.BarColor, 1.0, 14))

	// Axis ticks and labels
	if spec.Axis.Tick > 0 {
		for v := spec.Axis.Min; v <= spec.Axis.Max+1e-9; v += spec.Axis.Tick {
			a := valueAngle(v)
			x1, y1 := pointAt(a, radius-12)
			x2, y2 := pointAt(a, radius-18)
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="darkgray" stroke-width="2"/>`,
				x1, y1, x2, y2))
			lx, ly := pointAt(a, radius-30)
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%d" fill="%s" text-anchor="middle">%.0f</text>`,
				lx, ly+4, cfg.FontSize, cfg.TextColor, v))
		}
	}

	// Threshold marker line at the target value
	ta := valueAngle(spec.Threshold.Value)
	tx1, ty1 := pointAt(ta, radius-10)
	tx2, ty2 := pointAt(ta, radius+12)
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%d"/>`,
		tx1, ty1, tx2, ty2, spec.Threshold.Color, spec.Threshold.Width))

	// Needle
	na := valueAngle(spec.Value)
	nx, ny := pointAt(na, radius*0.82)
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#34495e" stroke-width="3"/>`,
		cx, cy, nx, ny))
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="6" fill="#34495e"/>`, cx, cy))

	// Numeric readout
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="30" font-weight="bold" fill="%s" text-anchor="middle">%.1f%s</text>`,
		cx, cy+36, spec.Number.Color, spec.Value, spec.Number.Suffix))

	// Delta vs reference
	delta := spec.DeltaValue()
	deltaColor := spec.Delta.Increasing
	arrow := "▲"
	if delta < 0 {
		deltaColor = spec.Delta.Decreasing
		arrow = "▼"
	}
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="14" fill="%s" text-anchor="middle">%s %s</text>`,
		cx, cy+56, deltaColor, arrow, utils.FormatSignedPct(delta)))

	// Breakdown annotation
	if spec.Annotation != "" {
		y := cy + 80
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="12" fill="#34495e" text-anchor="middle">`, cx, y))
		for i, line := range strings.Split(spec.Annotation, "\n") {
			dy := 0
			if i > 0 {
				dy = 18
			}
			sb.WriteString(fmt.Sprintf(`<tspan x="%.1f" dy="%d">%s</tspan>`, cx, dy, escapeXML(line)))
		}
		sb.WriteString(`</text>`)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// arcPath emits a stroked arc between two dial angles. Angles decrease
// clockwise on this dial, so startAngle must be >= endAngle.
func arcPath(cx, cy, radius, startAngle, endAngle float64, color string, opacity float64, width int) string {
	sx := cx + radius*math.Cos(startAngle)
	sy := cy - radius*math.Sin(startAngle)
	ex := cx + radius*math.Cos(endAngle)
	ey := cy - radius*math.Sin(endAngle)

	largeArc := 0
	if startAngle-endAngle > math.Pi {
		largeArc = 1
	}

	return fmt.Sprintf(`<path d="M%.1f,%.1f A%.1f,%.1f 0 %d,1 %.1f,%.1f" fill="none" stroke="%s" stroke-opacity="%.2f" stroke-width="%d" stroke-linecap="butt"/>`,
		sx, sy, radius, radius, largeArc, ex, ey, color, opacity, width)
}

func emptySVG(cfg SVGConfig, msg string) string {
	if cfg.Width == 0 {
		cfg.Width = 400
	}
	h := cfg.Width / 2
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d"><rect width="%d" height="%d" fill="#f5f5f5"/><text x="%d" y="%d" text-anchor="middle" fill="#999" font-size="14">%s</text></svg>`,
		cfg.Width, h, cfg.Width, h, cfg.Width/2, h/2, escapeXML(msg))
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}

package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/mvello/sentigauge/pkg/models"
)

// PageData is the template model passed to PageTemplate.
type PageData struct {
	Title       string
	Tier        string
	TierColor   string
	GaugeSVG    template.HTML
	Annotation  string
	GeneratedAt string
}

// GenerateHTML renders the ChartSpec as a standalone HTML page. The
// gauge SVG is embedded inline; the breakdown annotation, when present,
// is shown as a styled box below the dial rather than inside the SVG.
func GenerateHTML(spec *models.ChartSpec, cfg SVGConfig) (string, error) {
	if spec == nil {
		return "", fmt.Errorf("chart spec is nil")
	}

	// The annotation is rendered as an HTML box, so strip it from the
	// SVG copy to avoid showing it twice.
	svgSpec := *spec
	svgSpec.Annotation = ""

	data := PageData{
		Title:       spec.Title,
		Tier:        string(spec.Tier),
		TierColor:   spec.BarColor,
		GaugeSVG:    template.HTML(GaugeSVG(&svgSpec, cfg)),
		Annotation:  spec.Annotation,
		GeneratedAt: time.Now().Format("02 Jan 2006, 15:04 MST"),
	}

	tmpl, err := template.New("page").Parse(PageTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

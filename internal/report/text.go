package report

import (
	"fmt"
	"strings"

	"github.com/mvello/sentigauge/pkg/models"
	"github.com/mvello/sentigauge/pkg/utils"
)

// ════════════════════════════════════════════════════════════════════
// Plain-text renderer (terminal / CLI friendly)
// ════════════════════════════════════════════════════════════════════

// statusLine maps the tier to the console status message.
func statusLine(t models.Tier) string {
	switch t {
	case models.TierHigh:
		return "✅ Target reached"
	case models.TierMedium:
		return "⚠️  Near target"
	default:
		return "❌ Below target"
	}
}

// GenerateText renders a console summary of the gauge: the configured
// counts, the target, the current result, the tier status, and the
// signed percentage-point delta.
func GenerateText(spec *models.ChartSpec) string {
	var sb strings.Builder
	line := strings.Repeat("═", 60)
	thinLine := strings.Repeat("─", 60)

	sb.WriteString("\n" + line + "\n")
	sb.WriteString(fmt.Sprintf("  %s\n", spec.Title))
	sb.WriteString(line + "\n\n")

	sb.WriteString("  Counts:\n")
	sb.WriteString(fmt.Sprintf("    Positive: %d\n", spec.Counts.Positive))
	sb.WriteString(fmt.Sprintf("    Negative: %d\n", spec.Counts.Negative))
	sb.WriteString(fmt.Sprintf("    Neutral:  %d\n", spec.Counts.Neutral))
	sb.WriteString(fmt.Sprintf("    Total:    %d\n", spec.Counts.Total()))
	sb.WriteString(thinLine + "\n")

	sb.WriteString(fmt.Sprintf("  🎯 Target:  %s\n", utils.FormatPct(spec.Delta.Reference)))
	sb.WriteString(fmt.Sprintf("  📈 Current: %s\n", utils.FormatPct(spec.Value)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s\n", statusLine(spec.Tier)))
	sb.WriteString(fmt.Sprintf("  Difference: %+.1f percentage points\n", spec.DeltaValue()))

	if spec.Annotation != "" {
		sb.WriteString(thinLine + "\n")
		for _, l := range strings.Split(spec.Annotation, "\n") {
			sb.WriteString("  " + l + "\n")
		}
	}

	sb.WriteString(line + "\n")
	return sb.String()
}

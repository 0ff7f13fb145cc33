// Package gauge builds declarative gauge chart specifications from raw
// sentiment tallies. The builder is a pure function: it validates the
// counts, derives percentages and a threshold-based tier, and assembles
// a models.ChartSpec for the renderers in internal/report.
package gauge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mvello/sentigauge/pkg/models"
	"github.com/mvello/sentigauge/pkg/utils"
)

// ErrEmptyInput is returned when all three sentiment counts are zero;
// percentages are undefined in that case.
var ErrEmptyInput = errors.New("gauge: total sentiment count is zero")

// nearTargetRatio defines the lower bound of the medium tier as a
// fraction of the target.
const nearTargetRatio = 0.7

// Static background zone boundaries. These are intentionally fixed at
// 40/70 and do not follow the configurable target; they are reference
// bands, not the dynamic tier.
const (
	zoneLowMax  = 40
	zoneMidMax  = 70
	zoneOpacity = 0.2
)

// Options controls how the ChartSpec is assembled. The zero value is
// usable but carries a zero target; use DefaultOptions for the
// documented defaults.
type Options struct {
	// Target is the positive-percentage goal, conventionally in [0,100].
	// Values outside that range are accepted as-is and are the caller's
	// responsibility.
	Target float64

	// Title appears above the gauge. Empty selects the default title.
	Title string

	// ShowBreakdown attaches a human-readable annotation summarizing
	// the counts, percentages, and target.
	ShowBreakdown bool

	// Colors maps tiers to display colors. The zero value selects the
	// built-in red / amber / green scheme.
	Colors models.ColorScheme
}

// DefaultOptions returns the documented defaults: a 70% target, the
// standard title, breakdown enabled, and the built-in color scheme.
func DefaultOptions() Options {
	return Options{
		Target:        70.0,
		Title:         "Positive Sentiment KPI",
		ShowBreakdown: true,
		Colors:        models.DefaultColorScheme(),
	}
}

// Percentages derives the per-category shares in [0,100]. It fails with
// ErrEmptyInput when the total is zero.
func Percentages(counts models.SentimentCounts) (models.Percentages, error) {
	total := counts.Total()
	if total == 0 {
		return models.Percentages{}, ErrEmptyInput
	}
	return models.Percentages{
		Positive: float64(counts.Positive) / float64(total) * 100,
		Negative: float64(counts.Negative) / float64(total) * 100,
		Neutral:  float64(counts.Neutral) / float64(total) * 100,
	}, nil
}

// ClassifyTier maps a positive percentage onto the three-way tier
// ladder. Ties at a boundary favor the higher tier.
func ClassifyTier(pctPositive, target float64) models.Tier {
	switch {
	case pctPositive >= target:
		return models.TierHigh
	case pctPositive >= target*nearTargetRatio:
		return models.TierMedium
	default:
		return models.TierLow
	}
}

// Build assembles a ChartSpec from sentiment counts. The result is
// deterministic and the builder has no side effects; the caller decides
// whether to render or persist it. The only failure is ErrEmptyInput.
func Build(counts models.SentimentCounts, opts Options) (*models.ChartSpec, error) {
	pct, err := Percentages(counts)
	if err != nil {
		return nil, err
	}

	if opts.Title == "" {
		opts.Title = DefaultOptions().Title
	}
	if opts.Colors.IsZero() {
		opts.Colors = models.DefaultColorScheme()
	}

	tier := ClassifyTier(pct.Positive, opts.Target)
	barColor := opts.Colors.ColorFor(tier)

	spec := &models.ChartSpec{
		Title:    opts.Title,
		Value:    pct.Positive,
		Tier:     tier,
		BarColor: barColor,
		Axis: models.AxisSpec{
			Min:  0,
			Max:  100,
			Tick: 20,
		},
		Zones: []models.ZoneSpec{
			{From: 0, To: zoneLowMax, Color: opts.Colors.Low, Opacity: zoneOpacity},
			{From: zoneLowMax, To: zoneMidMax, Color: opts.Colors.Medium, Opacity: zoneOpacity},
			{From: zoneMidMax, To: 100, Color: opts.Colors.High, Opacity: zoneOpacity},
		},
		Threshold: models.ThresholdSpec{
			Value: opts.Target,
			Color: opts.Colors.Low,
			Width: 4,
		},
		Number: models.NumberSpec{
			Suffix: "%",
			Color:  barColor,
		},
		Delta: models.DeltaSpec{
			Reference:  opts.Target,
			Increasing: opts.Colors.High,
			Decreasing: opts.Colors.Low,
			Suffix:     "%",
		},
		Percentages: pct,
		Counts:      counts,
	}

	if opts.ShowBreakdown {
		spec.Annotation = breakdownText(counts, pct, opts.Target)
	}

	return spec, nil
}

// breakdownText renders the annotation block attached below the gauge.
func breakdownText(counts models.SentimentCounts, pct models.Percentages, target float64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Breakdown (total: %d)\n", counts.Total())
	fmt.Fprintf(&sb, "Positive: %d (%s)\n", counts.Positive, utils.FormatPct(pct.Positive))
	fmt.Fprintf(&sb, "Negative: %d (%s)\n", counts.Negative, utils.FormatPct(pct.Negative))
	fmt.Fprintf(&sb, "Neutral: %d (%s)\n", counts.Neutral, utils.FormatPct(pct.Neutral))
	fmt.Fprintf(&sb, "Target: %s", utils.FormatPct(target))
	return sb.String()
}

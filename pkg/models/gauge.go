package models

// Tier classifies the positive-sentiment percentage against a target.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// SentimentCounts holds the raw sentiment tallies for an observation
// window. All counts are expected to be non-negative; their sum must be
// positive before percentages can be derived.
type SentimentCounts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Total returns the sum of all three tallies.
func (c SentimentCounts) Total() int {
	return c.Positive + c.Negative + c.Neutral
}

// Percentages holds the derived share of each category in [0,100].
// The three values sum to 100 up to floating-point rounding.
type Percentages struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// ColorScheme maps each performance tier to a display color.
type ColorScheme struct {
	Low    string `json:"low"`
	Medium string `json:"medium"`
	High   string `json:"high"`
}

// DefaultColorScheme returns the built-in red / amber / green palette.
func DefaultColorScheme() ColorScheme {
	return ColorScheme{
		Low:    "#e74c3c",
		Medium: "#f39c12",
		High:   "#2ecc71",
	}
}

// IsZero reports whether no colors have been set.
func (s ColorScheme) IsZero() bool {
	return s == ColorScheme{}
}

// ColorFor returns the color assigned to the given tier.
func (s ColorScheme) ColorFor(t Tier) string {
	switch t {
	case TierHigh:
		return s.High
	case TierMedium:
		return s.Medium
	default:
		return s.Low
	}
}

// AxisSpec describes the gauge axis range and tick spacing.
type AxisSpec struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Tick float64 `json:"tick"`
}

// ZoneSpec is a static background band on the gauge axis.
type ZoneSpec struct {
	From    float64 `json:"from"`
	To      float64 `json:"to"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

// ThresholdSpec is the marker line drawn at the target value.
type ThresholdSpec struct {
	Value float64 `json:"value"`
	Color string  `json:"color"`
	Width int     `json:"width"`
}

// NumberSpec describes the primary numeric readout.
type NumberSpec struct {
	Suffix string `json:"suffix"`
	Color  string `json:"color"`
}

// DeltaSpec describes the readout of the difference against a reference
// value. Increasing/Decreasing colors follow the usual green-up
// red-down convention unless overridden.
type DeltaSpec struct {
	Reference  float64 `json:"reference"`
	Increasing string  `json:"increasing"`
	Decreasing string  `json:"decreasing"`
	Suffix     string  `json:"suffix"`
}

// ChartSpec is a declarative, renderer-agnostic description of a single
// gauge visual: value arc, axis, background zones, threshold marker,
// numeric readout with delta, and an optional annotation block. It has
// no behavior of its own; renderers in internal/report consume it.
type ChartSpec struct {
	Title       string          `json:"title"`
	Value       float64         `json:"value"`
	Tier        Tier            `json:"tier"`
	BarColor    string          `json:"bar_color"`
	Axis        AxisSpec        `json:"axis"`
	Zones       []ZoneSpec      `json:"zones"`
	Threshold   ThresholdSpec   `json:"threshold"`
	Number      NumberSpec      `json:"number"`
	Delta       DeltaSpec       `json:"delta"`
	Annotation  string          `json:"annotation,omitempty"`
	Percentages Percentages     `json:"percentages"`
	Counts      SentimentCounts `json:"counts"`
}

// DeltaValue returns the signed difference between the gauge value and
// the delta reference, in percentage points.
func (s *ChartSpec) DeltaValue() float64 {
	return s.Value - s.Delta.Reference
}

// Package utils provides shared formatting helpers for sentigauge.
package utils

import "fmt"

// FormatPct formats a percentage with one decimal place, e.g. "60.0%".
func FormatPct(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatSignedPct formats a percentage-point difference with an
// explicit sign, e.g. "+5.0%" or "-10.0%".
func FormatSignedPct(pct float64) string {
	return fmt.Sprintf("%+.1f%%", pct)
}

package sim

import "math"

// DefaultFallbackDelta is used when a measured frame time is unusable.
const DefaultFallbackDelta = 1.0 / 500.0

// ClampDelta turns a measured frame time into the dt passed to Step.
// Non-positive or non-finite measurements are replaced by fallback, and
// anything above max (when max > 0) is clamped to max.
func ClampDelta(measured, fallback, max float64) float64 {
	if fallback <= 0 || math.IsNaN(fallback) || math.IsInf(fallback, 0) {
		fallback = DefaultFallbackDelta
	}
	if !(measured > 0) || math.IsInf(measured, 0) {
		return fallback
	}
	if max > 0 && measured > max {
		return max
	}
	return measured
}

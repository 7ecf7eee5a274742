// Package convert provides safe integer conversions for configuration values.
package convert

import "math"

// IntToUint32Clamped converts an int to uint32, clamping to [0, MaxUint32].
// Use this when truncation is acceptable (e.g. thresholds read from env).
func IntToUint32Clamped(v int) uint32 {
	if v < 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}

package util

import (
	"math"

	"github.com/fogleman/ease"
)

// Clamp limits v to [min, max]. NaN clamps to min.
func Clamp(v, min, max float64) float64 {
	if math.IsNaN(v) || v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// GenerateLut samples an ease-in-out rise from 0 to 1 over length steps.
// Both ends are included, so the last entry is always 1.
func GenerateLut(length int) []float64 {
	if length < 2 {
		return make([]float64, length)
	}
	lut := make([]float64, length)
	for i := range lut {
		lut[i] = ease.InOutQuad(float64(i) / float64(length-1))
	}
	return lut
}

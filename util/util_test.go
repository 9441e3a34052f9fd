package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateLut(t *testing.T) {
	for _, length := range []int{2, 3, 4, 5, 20, 21} {
		lut := GenerateLut(length)
		assert.Len(t, lut, length)
		assert.Equal(t, 0.0, lut[0], "length %d", length)
		assert.Equal(t, 1.0, lut[length-1], "length %d", length)
		for i := 1; i < length; i++ {
			assert.GreaterOrEqual(t, lut[i], lut[i-1], "length %d rises", length)
		}
	}

	assert.Equal(t, []float64{0}, GenerateLut(1))
	assert.Empty(t, GenerateLut(0))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 1.0, Clamp(2, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
	assert.Equal(t, 0.0, Clamp(math.NaN(), 0, 1))
}

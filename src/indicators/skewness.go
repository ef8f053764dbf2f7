package indicators

import (
	"math"

	"github.com/montanaflynn/stats"
)

const minNormalFloat64 = 0x1p-1022

// Skewness is the weighted third standardized moment of values.
func Skewness(weights, values []float64) float64 {
	total, err := stats.Sum(weights)
	if err != nil || total == 0 {
		return 0
	}

	var mean float64
	for i, w := range weights {
		mean += w * values[i]
	}
	mean /= total

	var m2, m3 float64
	for i, w := range weights {
		d := values[i] - mean
		m2 += w * d * d
		m3 += w * d * d * d
	}
	m2 /= total
	m3 /= total

	return m3 / math.Pow(m2, 1.5)
}

// SanitizeSkew maps NaN, infinities and subnormals to zero.
func SanitizeSkew(skew float64) float64 {
	switch {
	case math.IsNaN(skew), math.IsInf(skew, 0):
		return 0
	case skew != 0 && math.Abs(skew) < minNormalFloat64:
		return 0
	default:
		return skew
	}
}

package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/autotrade/src/eventmodels"
)

func TestVolumeHistogram(t *testing.T) {
	h, err := NewVolumeHistogram(10, 100, 110, 4, 0, 40)
	require.NoError(t, err)

	t.Run("bins", func(t *testing.T) {
		assert.Equal(t, 0, h.FindTimeBin(-1))
		assert.Equal(t, 1, h.FindTimeBin(0))
		assert.Equal(t, 2, h.FindTimeBin(15))
		assert.Equal(t, 4, h.FindTimeBin(39.9))
		assert.Equal(t, 5, h.FindTimeBin(40))
	})

	t.Run("projection sums the selected time rows", func(t *testing.T) {
		h.Fill(100.5, 5, 2)
		h.Fill(100.5, 15, 3)
		h.Fill(109.5, 35, 7)
		h.Fill(200, 5, 1)

		assert.Equal(t, 4, h.Entries())

		first := h.ProjectionX(1, 1)
		assert.Equal(t, 2.0, first[0])
		assert.Equal(t, 0.0, first[9])

		all := h.ProjectionX(1, 5)
		assert.Equal(t, 5.0, all[0])
		assert.Equal(t, 7.0, all[9])
	})

	t.Run("centers", func(t *testing.T) {
		centers := h.PriceCenters()
		require.Len(t, centers, 10)
		assert.InDelta(t, 100.5, centers[0], 1e-9)
		assert.InDelta(t, 109.5, centers[9], 1e-9)
	})

	t.Run("invalid bounds", func(t *testing.T) {
		_, err := NewVolumeHistogram(0, 100, 110, 4, 0, 40)
		assert.Error(t, err)

		_, err = NewVolumeHistogram(10, 110, 100, 4, 0, 40)
		assert.Error(t, err)
	})
}

func TestSkewness(t *testing.T) {
	t.Run("symmetric distribution", func(t *testing.T) {
		assert.InDelta(t, 0.0, Skewness([]float64{1, 2, 1}, []float64{1, 2, 3}), 1e-12)
	})

	t.Run("long right tail is positive", func(t *testing.T) {
		assert.Greater(t, Skewness([]float64{5, 3, 1, 1}, []float64{1, 2, 3, 10}), 0.0)
	})

	t.Run("long left tail is negative", func(t *testing.T) {
		assert.Less(t, Skewness([]float64{1, 1, 3, 5}, []float64{-10, 2, 3, 4}), 0.0)
	})

	t.Run("single point has no spread", func(t *testing.T) {
		skew := Skewness([]float64{0, 4, 0}, []float64{1, 2, 3})
		assert.True(t, math.IsNaN(skew))
		assert.Equal(t, 0.0, SanitizeSkew(skew))
	})

	t.Run("no weight", func(t *testing.T) {
		assert.Equal(t, 0.0, Skewness([]float64{0, 0}, []float64{1, 2}))
		assert.Equal(t, 0.0, Skewness(nil, nil))
	})
}

func TestSanitizeSkew(t *testing.T) {
	assert.Equal(t, 0.0, SanitizeSkew(math.NaN()))
	assert.Equal(t, 0.0, SanitizeSkew(math.Inf(1)))
	assert.Equal(t, 0.0, SanitizeSkew(math.Inf(-1)))
	assert.Equal(t, 0.0, SanitizeSkew(math.SmallestNonzeroFloat64))
	assert.Equal(t, 0.0, SanitizeSkew(0))
	assert.Equal(t, 0.15, SanitizeSkew(0.15))
	assert.Equal(t, -2.0, SanitizeSkew(-2))
}

func TestVolumeProfile(t *testing.T) {
	open := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	cfg := eventmodels.HistogramYAML{
		PriceBins:  10,
		PriceLower: 100,
		PriceUpper: 110,
		TimeBins:   390,
		TimeLower:  open,
		TimeUpper:  open.Add(390 * time.Minute),
	}

	t.Run("not ready below the minimum entry count", func(t *testing.T) {
		profile, err := NewVolumeProfile("SPY", cfg, 3)
		require.NoError(t, err)

		profile.Fill(101, open, 100)
		profile.Fill(102, open, 100)

		_, ok := profile.Skewness(open.Add(time.Minute))
		assert.False(t, ok)
	})

	t.Run("right tail gives positive skew", func(t *testing.T) {
		profile, err := NewVolumeProfile("SPY", cfg, 3)
		require.NoError(t, err)

		profile.Fill(100.5, open, 500)
		profile.Fill(101.5, open.Add(time.Minute), 300)
		profile.Fill(109.5, open.Add(2*time.Minute), 100)

		skew, ok := profile.Skewness(open.Add(3 * time.Minute))
		require.True(t, ok)
		assert.Greater(t, skew, 0.1)
	})

	t.Run("only trades up to the bar time are projected", func(t *testing.T) {
		profile, err := NewVolumeProfile("SPY", cfg, 1)
		require.NoError(t, err)

		profile.Fill(105.5, open, 100)
		profile.Fill(100.5, open.Add(time.Hour), 1000)

		skew, ok := profile.Skewness(open)
		require.True(t, ok)
		assert.Equal(t, 0.0, skew)
	})

	t.Run("before the time axis latches a warning", func(t *testing.T) {
		profile, err := NewVolumeProfile("SPY", cfg, 1)
		require.NoError(t, err)
		profile.Fill(105, open, 100)

		_, ok := profile.Skewness(open.Add(-time.Minute))
		assert.False(t, ok)
		assert.True(t, profile.lowerTimeLatch)

		_, ok = profile.Skewness(open.Add(-time.Minute))
		assert.False(t, ok)
	})
}

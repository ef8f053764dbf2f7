package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/autotrade/src/eventmodels"
)

func TestBarFactory(t *testing.T) {
	var bars []eventmodels.Bar
	f := NewBarFactory(time.Second, func(bar eventmodels.Bar) { bars = append(bars, bar) })

	start := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)
	f.Add(start.Add(100*time.Millisecond), 10, 1)
	f.Add(start.Add(500*time.Millisecond), 12, 1)
	f.Add(start.Add(900*time.Millisecond), 9, 1)

	assert.Empty(t, bars)
	current, ok := f.Current()
	require.True(t, ok)
	assert.Equal(t, 3, current.Count)

	f.Add(start.Add(1200*time.Millisecond), 11, 1)

	require.Len(t, bars, 1)
	assert.Equal(t, start, bars[0].Timestamp)
	assert.Equal(t, 10.0, bars[0].Open)
	assert.Equal(t, 12.0, bars[0].High)
	assert.Equal(t, 9.0, bars[0].Low)
	assert.Equal(t, 9.0, bars[0].Close)
	assert.Equal(t, uint32(3), bars[0].Volume)

	f.Add(start.Add(5*time.Second), 13, 1)
	require.Len(t, bars, 2)
	assert.Equal(t, start.Add(time.Second), bars[1].Timestamp)
}

func TestExecutionStats(t *testing.T) {
	e := NewExecutionStats(3)
	assert.Equal(t, 0, e.Summary().Count)

	for _, us := range []int{10, 20, 30, 40} {
		e.Add(time.Duration(us) * time.Microsecond)
	}

	summary := e.Summary()
	assert.Equal(t, 4, summary.Count)
	assert.Equal(t, 30.0, summary.MeanUs)
	assert.Equal(t, 40.0, summary.MaxUs)
}

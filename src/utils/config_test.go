package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/autotrade/src/eventmodels"
)

const choicesFile = `
timeFrame:
  timeZone: America/New_York
  cancelBeforeClose: 5m
symbols:
  SPY:
    instrumentType: etf
    tradable: true
    feed: L1
    algorithm: volume-skew
    signalFrom: trades
    skewThreshold: 0.2
    histogram:
      priceBins: 200
      priceLower: 400
      priceUpper: 500
      timeBins: 390
      timeLower: 2024-03-01T09:30:00-05:00
      timeUpper: 2024-03-01T16:00:00-05:00
    spread:
      daysToFront: 7
`

const chainsFile = `
underlying: SPY
chains:
  - expiry: "2024-03-08"
    strikes: [445, 450, 455]
  - expiry: "2024-03-15"
    strikes: [440, 450, 460]
`

func writeFile(t *testing.T, name string, contents string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadChoices(t *testing.T) {
	t.Run("decodes and applies defaults", func(t *testing.T) {
		choices, err := LoadChoices(writeFile(t, "choices.yaml", choicesFile))
		require.NoError(t, err)

		assert.Equal(t, 5*time.Minute, choices.TimeFrame.CancelBeforeClose)
		assert.Equal(t, 4*time.Minute+30*time.Second, choices.TimeFrame.GoNeutralBeforeClose)
		assert.Equal(t, "09:30", choices.TimeFrame.Open)

		spy := choices.Symbols["SPY"]
		assert.Equal(t, eventmodels.InstrumentTypeETF, spy.InstrumentType)
		assert.Equal(t, 0.2, spy.SkewThreshold)
		assert.Equal(t, eventmodels.DefaultQuantity, spy.Quantity)
		assert.Equal(t, eventmodels.DefaultMinEntries, spy.MinEntries)
		assert.Equal(t, 7, spy.Spread.DaysToFront)
		assert.Equal(t, 200, spy.Histogram.PriceBins)
	})

	t.Run("invalid histograms are rejected", func(t *testing.T) {
		_, err := LoadChoices(writeFile(t, "choices.yaml", `
symbols:
  SPY:
    histogram:
      priceBins: 0
`))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadChoices(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoadChains(t *testing.T) {
	chains, err := LoadChains(writeFile(t, "chains.yaml", chainsFile))
	require.NoError(t, err)

	assert.Equal(t, "SPY", chains.Underlying)
	require.Len(t, chains.Chains, 2)
	assert.Equal(t, []float64{445, 450, 455}, chains.Chains[0].Strikes)

	_, err = LoadChains(writeFile(t, "chains.yaml", "chains: []\n"))
	assert.Error(t, err)
}

func TestInitEnvironmentVariables(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("AUTOTRADE_TEST_VALUE=from-file\n"), 0o644))

	t.Run("loads the file for the environment", func(t *testing.T) {
		require.NoError(t, InitEnvironmentVariables(dir, "test"))
		assert.Equal(t, "from-file", os.Getenv("AUTOTRADE_TEST_VALUE"))
		os.Unsetenv("AUTOTRADE_TEST_VALUE")
	})

	t.Run("development tolerates a missing file", func(t *testing.T) {
		assert.NoError(t, InitEnvironmentVariables(dir, ""))
	})

	t.Run("other environments require the file", func(t *testing.T) {
		assert.Error(t, InitEnvironmentVariables(dir, ProdEnv))
	})

	t.Run("fallback for unset variables", func(t *testing.T) {
		t.Setenv("AUTOTRADE_TEST_SET", "x")
		assert.Equal(t, "x", GetEnvOrDefault("AUTOTRADE_TEST_SET", "y"))
		assert.Equal(t, "y", GetEnvOrDefault("AUTOTRADE_TEST_UNSET", "y"))
	})
}

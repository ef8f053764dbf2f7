package indicators

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/autotrade/src/eventmodels"
)

// VolumeProfile tracks traded volume by price over the session and reports the skew of
// the volume distribution from the start of the session up to a point in time.
type VolumeProfile struct {
	symbol         string
	histogram      *VolumeHistogram
	minEntries     int
	lowerTimeLatch bool
}

func NewVolumeProfile(symbol string, cfg eventmodels.HistogramYAML, minEntries int) (*VolumeProfile, error) {
	histogram, err := NewVolumeHistogram(cfg.PriceBins, cfg.PriceLower, cfg.PriceUpper, cfg.TimeBins, unixSeconds(cfg.TimeLower), unixSeconds(cfg.TimeUpper))
	if err != nil {
		return nil, fmt.Errorf("NewVolumeProfile: %s: %w", symbol, err)
	}

	return &VolumeProfile{
		symbol:     symbol,
		histogram:  histogram,
		minEntries: minEntries,
	}, nil
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func (v *VolumeProfile) Fill(price float64, t time.Time, volume uint32) {
	v.histogram.Fill(price, unixSeconds(t), float64(volume))
}

func (v *VolumeProfile) Entries() int {
	return v.histogram.Entries()
}

// Skewness returns false until enough trades have been seen and t falls on or after
// the start of the time axis.
func (v *VolumeProfile) Skewness(t time.Time) (float64, bool) {
	if v.histogram.Entries() < v.minEntries {
		return 0, false
	}

	bin := v.histogram.FindTimeBin(unixSeconds(t))
	if bin < 1 {
		if !v.lowerTimeLatch {
			log.Warnf("%s, need to adjust lower time in config file", v.symbol)
			v.lowerTimeLatch = true
		}

		return 0, false
	}

	projection := v.histogram.ProjectionX(1, bin)
	return SanitizeSkew(Skewness(projection, v.histogram.PriceCenters())), true
}

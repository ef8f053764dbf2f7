package eventmodels

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

type FeedKind string

const (
	FeedL1  FeedKind = "L1"
	FeedL2M FeedKind = "L2M"
	FeedL2O FeedKind = "L2O"
)

func (f FeedKind) Validate() error {
	switch f {
	case FeedL1, FeedL2M, FeedL2O:
		return nil
	default:
		return fmt.Errorf("FeedKind.Validate: invalid feed: %s", f)
	}
}

type ChoicesYAML struct {
	TimeFrame TimeFrameYAML               `yaml:"timeFrame"`
	Symbols   map[string]SymbolChoiceYAML `yaml:"symbols"`
}

type TimeFrameYAML struct {
	TimeZone             string        `yaml:"timeZone"`
	Open                 string        `yaml:"open"`
	Close                string        `yaml:"close"`
	CancelBeforeClose    time.Duration `yaml:"cancelBeforeClose"`
	GoNeutralBeforeClose time.Duration `yaml:"goNeutralBeforeClose"`
}

type SymbolChoiceYAML struct {
	InstrumentType     InstrumentType  `yaml:"instrumentType"`
	Tradable           bool            `yaml:"tradable"`
	Feed               FeedKind        `yaml:"feed"`
	Algorithm          string          `yaml:"algorithm"`
	SignalFrom         string          `yaml:"signalFrom"`
	Quantity           uint32          `yaml:"quantity"`
	SkewThreshold      float64         `yaml:"skewThreshold"`
	MinEntries         int             `yaml:"minEntries"`
	ProfitExitFraction float64         `yaml:"profitExitFraction"`
	TickSize           float64         `yaml:"tickSize"`
	Histogram          HistogramYAML   `yaml:"histogram"`
	Spread             SpreadSpecsYAML `yaml:"spread"`
}

type HistogramYAML struct {
	PriceBins  int       `yaml:"priceBins"`
	PriceLower float64   `yaml:"priceLower"`
	PriceUpper float64   `yaml:"priceUpper"`
	TimeBins   int       `yaml:"timeBins"`
	TimeLower  time.Time `yaml:"timeLower"`
	TimeUpper  time.Time `yaml:"timeUpper"`
}

type SpreadSpecsYAML struct {
	DaysToFront int `yaml:"daysToFront"`
}

const (
	DefaultQuantity           uint32  = 100
	DefaultSkewThreshold      float64 = 0.1
	DefaultMinEntries         int     = 1000
	DefaultProfitExitFraction float64 = 0.08
	DefaultTickSize           float64 = 0.01
)

func (tf *TimeFrameYAML) ApplyDefaults() {
	if tf.TimeZone == "" {
		tf.TimeZone = "America/New_York"
	}

	if tf.Open == "" {
		tf.Open = "09:30"
	}

	if tf.Close == "" {
		tf.Close = "16:00"
	}

	if tf.CancelBeforeClose == 0 {
		tf.CancelBeforeClose = 5 * time.Minute
	}

	if tf.GoNeutralBeforeClose == 0 {
		tf.GoNeutralBeforeClose = 4*time.Minute + 30*time.Second
	}
}

func (tf TimeFrameYAML) OpenOffset() (time.Duration, error) {
	return parseClockOffset(tf.Open)
}

func (tf TimeFrameYAML) CloseOffset() (time.Duration, error) {
	return parseClockOffset(tf.Close)
}

func (tf TimeFrameYAML) Validate() error {
	open, err := tf.OpenOffset()
	if err != nil {
		return fmt.Errorf("TimeFrameYAML.Validate: %w", err)
	}

	closeOffset, err := tf.CloseOffset()
	if err != nil {
		return fmt.Errorf("TimeFrameYAML.Validate: %w", err)
	}

	if open >= closeOffset {
		return fmt.Errorf("TimeFrameYAML.Validate: open %s is not before close %s", tf.Open, tf.Close)
	}

	if tf.CancelBeforeClose < tf.GoNeutralBeforeClose {
		return fmt.Errorf("TimeFrameYAML.Validate: orders must be cancelled (%s before close) before going neutral (%s before close)", tf.CancelBeforeClose, tf.GoNeutralBeforeClose)
	}

	if _, err := time.LoadLocation(tf.TimeZone); err != nil {
		return fmt.Errorf("TimeFrameYAML.Validate: %w", err)
	}

	return nil
}

func (s *SymbolChoiceYAML) ApplyDefaults() {
	if s.InstrumentType == "" {
		s.InstrumentType = InstrumentTypeStock
	}

	if s.Feed == "" {
		s.Feed = FeedL1
	}

	if s.Quantity == 0 {
		s.Quantity = DefaultQuantity
	}

	if s.SkewThreshold == 0 {
		s.SkewThreshold = DefaultSkewThreshold
	}

	if s.MinEntries == 0 {
		s.MinEntries = DefaultMinEntries
	}

	if s.ProfitExitFraction == 0 {
		s.ProfitExitFraction = DefaultProfitExitFraction
	}

	if s.TickSize == 0 {
		s.TickSize = DefaultTickSize
	}
}

func (s SymbolChoiceYAML) Validate(symbol string) error {
	var errs []error

	if err := s.InstrumentType.Validate(); err != nil {
		errs = append(errs, err)
	}

	if err := s.Feed.Validate(); err != nil {
		errs = append(errs, err)
	}

	h := s.Histogram
	if h.PriceBins <= 0 || h.TimeBins <= 0 {
		errs = append(errs, fmt.Errorf("histogram bins must be positive: price=%d, time=%d", h.PriceBins, h.TimeBins))
	}

	if h.PriceLower >= h.PriceUpper {
		errs = append(errs, fmt.Errorf("histogram price lower %v must be below upper %v", h.PriceLower, h.PriceUpper))
	}

	if !h.TimeLower.Before(h.TimeUpper) {
		errs = append(errs, fmt.Errorf("histogram time lower %v must be before upper %v", h.TimeLower, h.TimeUpper))
	}

	if s.Spread.DaysToFront < 0 {
		errs = append(errs, fmt.Errorf("spread days to front must not be negative: %d", s.Spread.DaysToFront))
	}

	if len(errs) > 0 {
		return fmt.Errorf("SymbolChoiceYAML.Validate: %s: %w", symbol, errors.Join(errs...))
	}

	return nil
}

func (c *ChoicesYAML) ApplyDefaults() {
	c.TimeFrame.ApplyDefaults()

	for name, symbol := range c.Symbols {
		symbol.ApplyDefaults()
		c.Symbols[name] = symbol
	}
}

func (c *ChoicesYAML) Validate() error {
	if len(c.Symbols) == 0 {
		return fmt.Errorf("ChoicesYAML.Validate: no symbols configured")
	}

	var errs []error
	if err := c.TimeFrame.Validate(); err != nil {
		errs = append(errs, err)
	}

	for _, name := range c.SymbolNames() {
		if err := c.Symbols[name].Validate(name); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// SymbolNames returns the configured symbols in sorted order.
func (c *ChoicesYAML) SymbolNames() []string {
	names := make([]string, 0, len(c.Symbols))
	for name := range c.Symbols {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func parseClockOffset(hhmm string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(hhmm))
	if err != nil {
		return 0, fmt.Errorf("parseClockOffset: invalid clock time %q: %w", hhmm, err)
	}

	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

package strategy

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	SeriesQuoteAsk      = "quote_ask"
	SeriesQuoteBid      = "quote_bid"
	SeriesTrade         = "trade"
	SeriesVolume        = "volume"
	SeriesDirection     = "trade_direction"
	SeriesProfitLoss    = "profit_loss"
	SeriesSkewness      = "skewness"
	SeriesExecutionTime = "execution_time"
	SeriesLongEntry     = "long_entry"
	SeriesLongFill      = "long_fill"
	SeriesLongExit      = "long_exit"
	SeriesShortFill     = "short_fill"
)

type Chart interface {
	Append(series string, t time.Time, value float64)
	AddLabel(series string, t time.Time, price float64, label string)
}

type ChartPoint struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

type ChartLabel struct {
	Series string    `json:"series"`
	Time   time.Time `json:"time"`
	Price  float64   `json:"price"`
	Label  string    `json:"label"`
}

// MemoryChart keeps the latest point of every series and the most recent labels.
type MemoryChart struct {
	name      string
	mu        sync.Mutex
	last      map[string]ChartPoint
	labels    []ChartLabel
	maxLabels int
}

func NewMemoryChart(name string, maxLabels int) *MemoryChart {
	return &MemoryChart{
		name:      name,
		last:      make(map[string]ChartPoint),
		maxLabels: maxLabels,
	}
}

func (c *MemoryChart) Append(series string, t time.Time, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.last[series] = ChartPoint{Time: t, Value: value}
}

func (c *MemoryChart) AddLabel(series string, t time.Time, price float64, label string) {
	log.Debugf("%s: %s %q at %.2f (%s)", c.name, series, label, price, t.Format(time.RFC3339))

	c.mu.Lock()
	defer c.mu.Unlock()

	c.labels = append(c.labels, ChartLabel{Series: series, Time: t, Price: price, Label: label})
	if c.maxLabels > 0 && len(c.labels) > c.maxLabels {
		c.labels = c.labels[len(c.labels)-c.maxLabels:]
	}
}

func (c *MemoryChart) Last(series string) (ChartPoint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.last[series]
	return p, ok
}

func (c *MemoryChart) Labels() []ChartLabel {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]ChartLabel(nil), c.labels...)
}

// LogChart writes series points at trace level and labels at info level.
type LogChart struct {
	name string
}

func NewLogChart(name string) *LogChart {
	return &LogChart{name: name}
}

func (c *LogChart) Append(series string, t time.Time, value float64) {
	log.Tracef("%s: %s %s %v", c.name, t.Format(time.RFC3339Nano), series, value)
}

func (c *LogChart) AddLabel(series string, t time.Time, price float64, label string) {
	log.Infof("%s: %s %s %q at %.2f", c.name, t.Format(time.RFC3339Nano), series, label, price)
}

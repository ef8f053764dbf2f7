package strategy

import (
	"time"

	"github.com/jiaming2012/autotrade/src/eventmodels"
)

// BarFactory aggregates prices into fixed interval bars. A bar is completed by the
// first price that lands in a later interval.
type BarFactory struct {
	interval      time.Duration
	current       *eventmodels.Bar
	onBarComplete func(eventmodels.Bar)
}

func NewBarFactory(interval time.Duration, onBarComplete func(eventmodels.Bar)) *BarFactory {
	return &BarFactory{
		interval:      interval,
		onBarComplete: onBarComplete,
	}
}

func (f *BarFactory) Add(t time.Time, price float64, volume uint32) {
	start := t.Truncate(f.interval)

	if f.current != nil && start.After(f.current.Timestamp) {
		completed := *f.current
		f.current = nil
		f.onBarComplete(completed)
	}

	if f.current == nil {
		f.current = eventmodels.NewBar(start, price)
		f.current.Volume = volume
		return
	}

	f.current.Update(price)
	f.current.Volume += volume
}

func (f *BarFactory) Current() (eventmodels.Bar, bool) {
	if f.current == nil {
		return eventmodels.Bar{}, false
	}

	return *f.current, true
}

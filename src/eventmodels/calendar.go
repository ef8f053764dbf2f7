package eventmodels

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

type Calendar struct {
	Date         string
	MarketOpen   time.Time
	MarketClose  time.Time
	CancelOrders time.Time
	GoNeutral    time.Time
}

func (c *Calendar) IsBetweenMarketHours(t time.Time) bool {
	return (t.Equal(c.MarketOpen) || t.After(c.MarketOpen)) && t.Before(c.MarketClose)
}

func (c *Calendar) IsSameDay(t time.Time) bool {
	return t.In(c.MarketOpen.Location()).Format(time.DateOnly) == c.Date
}

func NewCalendar(day time.Time, tf TimeFrameYAML) (*Calendar, error) {
	loc, err := time.LoadLocation(tf.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("NewCalendar: failed to load location %s: %w", tf.TimeZone, err)
	}

	open, err := tf.OpenOffset()
	if err != nil {
		return nil, fmt.Errorf("NewCalendar: %w", err)
	}

	closeOffset, err := tf.CloseOffset()
	if err != nil {
		return nil, fmt.Errorf("NewCalendar: %w", err)
	}

	local := day.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	marketClose := midnight.Add(closeOffset)

	return &Calendar{
		Date:         midnight.Format(time.DateOnly),
		MarketOpen:   midnight.Add(open),
		MarketClose:  marketClose,
		CancelOrders: marketClose.Add(-tf.CancelBeforeClose),
		GoNeutral:    marketClose.Add(-tf.GoNeutralBeforeClose),
	}, nil
}

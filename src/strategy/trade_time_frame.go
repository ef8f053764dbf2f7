package strategy

import (
	"fmt"

	"github.com/jiaming2012/autotrade/src/eventmodels"
)

type TimeFrameHandlers struct {
	RegularHours func(bar eventmodels.Bar)
	Cancel       func(bar eventmodels.Bar)
	GoNeutral    func(bar eventmodels.Bar)
}

// TradeTimeFrame routes each bar to the handler for the part of the trading day it falls in.
// Cancel and GoNeutral fire once per day.
type TradeTimeFrame struct {
	cfg       eventmodels.TimeFrameYAML
	calendar  *eventmodels.Calendar
	cancelled bool
	neutral   bool
}

func NewTradeTimeFrame(cfg eventmodels.TimeFrameYAML) *TradeTimeFrame {
	return &TradeTimeFrame{cfg: cfg}
}

func (tf *TradeTimeFrame) Calendar() *eventmodels.Calendar {
	return tf.calendar
}

func (tf *TradeTimeFrame) TimeTick(bar eventmodels.Bar, h TimeFrameHandlers) error {
	if tf.calendar == nil || !tf.calendar.IsSameDay(bar.Timestamp) {
		calendar, err := eventmodels.NewCalendar(bar.Timestamp, tf.cfg)
		if err != nil {
			return fmt.Errorf("TradeTimeFrame.TimeTick: %w", err)
		}

		tf.calendar = calendar
		tf.cancelled = false
		tf.neutral = false
	}

	t := bar.Timestamp
	if t.Before(tf.calendar.MarketOpen) || !t.Before(tf.calendar.MarketClose) {
		return nil
	}

	if t.Before(tf.calendar.CancelOrders) {
		h.RegularHours(bar)
		return nil
	}

	if !tf.cancelled {
		tf.cancelled = true
		h.Cancel(bar)
	}

	if !t.Before(tf.calendar.GoNeutral) && !tf.neutral {
		tf.neutral = true
		h.GoNeutral(bar)
	}

	return nil
}

package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/autotrade/src/eventmodels"
	"github.com/jiaming2012/autotrade/src/options"
)

func quoteAt(bid, ask float64) eventmodels.Quote {
	return eventmodels.Quote{
		Timestamp: time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC),
		Bid:       bid,
		BidSize:   100,
		Ask:       ask,
		AskSize:   100,
	}
}

func TestPaperPosition(t *testing.T) {
	spy := eventmodels.NewInstrument("SPY", eventmodels.InstrumentTypeETF)

	t.Run("market order fills at the touch when placed", func(t *testing.T) {
		p := NewPaperPosition(spy)
		p.HandleQuote(quoteAt(10.00, 10.02))

		order := p.ConstructOrder(Market, OrderSideBuy, 100, 0)
		require.NoError(t, p.PlaceOrder(order))

		assert.Equal(t, OrderStatusFilled, order.Status)
		assert.Equal(t, 10.02, order.AvgFillPrice)
		assert.Equal(t, int64(100), p.QueryStats().Quantity)
		assert.Empty(t, p.WorkingOrders())
	})

	t.Run("market order waits for a valid quote", func(t *testing.T) {
		p := NewPaperPosition(spy)

		order := p.ConstructOrder(Market, OrderSideBuy, 100, 0)
		require.NoError(t, p.PlaceOrder(order))
		assert.Equal(t, OrderStatusOpen, order.Status)

		p.HandleQuote(quoteAt(10.02, 10.00))
		assert.Equal(t, OrderStatusOpen, order.Status)

		p.HandleQuote(quoteAt(10.00, 10.01))
		assert.Equal(t, OrderStatusFilled, order.Status)
	})

	t.Run("limit sell fills once the bid reaches the limit", func(t *testing.T) {
		p := NewPaperPosition(spy)
		p.HandleQuote(quoteAt(10.00, 10.01))
		require.NoError(t, p.PlaceOrder(p.ConstructOrder(Market, OrderSideBuy, 100, 0)))

		exit := p.ConstructOrder(Limit, OrderSideSell, 100, 10.50)
		require.NoError(t, p.PlaceOrder(exit))
		assert.Equal(t, OrderStatusOpen, exit.Status)

		p.HandleQuote(quoteAt(10.60, 10.61))
		require.Equal(t, OrderStatusFilled, exit.Status)

		stats := p.QueryStats()
		assert.Equal(t, int64(0), stats.Quantity)
		assert.InDelta(t, 59.0, stats.Realized, 1e-9)
		assert.Equal(t, 0.0, stats.Unrealized)
	})

	t.Run("unrealized follows the bid for a long position", func(t *testing.T) {
		p := NewPaperPosition(spy, WithCommission(0.01))
		p.HandleQuote(quoteAt(10.00, 10.00))
		require.NoError(t, p.PlaceOrder(p.ConstructOrder(Market, OrderSideBuy, 100, 0)))

		p.HandleQuote(quoteAt(11.00, 11.05))

		stats := p.QueryStats()
		assert.InDelta(t, 100.0, stats.Unrealized, 1e-9)
		assert.InDelta(t, 1.0, stats.Commissions, 1e-9)
		assert.InDelta(t, 99.0, stats.Total, 1e-9)
	})

	t.Run("short position and reversal", func(t *testing.T) {
		p := NewPaperPosition(spy)
		p.HandleQuote(quoteAt(20.00, 20.10))
		require.NoError(t, p.PlaceOrder(p.ConstructOrder(Market, OrderSideSell, 10, 0)))
		assert.Equal(t, int64(-10), p.QueryStats().Quantity)

		p.HandleQuote(quoteAt(19.00, 19.10))
		assert.InDelta(t, 9.0, p.UnrealizedPL(), 1e-9)

		require.NoError(t, p.PlaceOrder(p.ConstructOrder(Market, OrderSideBuy, 15, 0)))
		stats := p.QueryStats()
		assert.Equal(t, int64(5), stats.Quantity)
		assert.InDelta(t, 19.10, stats.AverageCost, 1e-9)
		assert.InDelta(t, 9.0, stats.Realized, 1e-9)
	})

	t.Run("cancel orders notifies each working order", func(t *testing.T) {
		p := NewPaperPosition(spy)
		order := p.ConstructOrder(Limit, OrderSideBuy, 100, 1)
		require.NoError(t, p.PlaceOrder(order))

		cancelled := 0
		order.OnCancelled(func(payload ...interface{}) { cancelled++ })

		require.NoError(t, p.CancelOrders())
		assert.Equal(t, 1, cancelled)
		assert.Empty(t, p.WorkingOrders())
	})

	t.Run("close position flattens", func(t *testing.T) {
		p := NewPaperPosition(spy)
		p.HandleQuote(quoteAt(10.00, 10.01))
		require.NoError(t, p.PlaceOrder(p.ConstructOrder(Market, OrderSideBuy, 100, 0)))
		require.NoError(t, p.PlaceOrder(p.ConstructOrder(Limit, OrderSideSell, 100, 50)))

		require.NoError(t, p.ClosePosition())

		assert.Equal(t, int64(0), p.QueryStats().Quantity)
		assert.Empty(t, p.WorkingOrders())
		assert.Equal(t, 2, p.FilledOrders())
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		p := NewPaperPosition(spy)
		order := p.ConstructOrder(Market, OrderSideBuy, 0, 0)
		require.Error(t, p.PlaceOrder(order))
		assert.Equal(t, OrderStatusRejected, order.Status)
	})

	t.Run("option positions use the contract multiplier", func(t *testing.T) {
		put := eventmodels.NewOptionInstrument("SPY240308P00450000", "SPY", 450, time.Time{}, eventmodels.Put)
		p := NewPaperPosition(put)
		p.HandleQuote(quoteAt(1.00, 1.10))
		require.NoError(t, p.PlaceOrder(p.ConstructOrder(Market, OrderSideBuy, 1, 0)))

		p.HandleQuote(quoteAt(1.20, 1.30))
		assert.InDelta(t, 10.0, p.UnrealizedPL(), 1e-9)
	})
}

func TestCombo(t *testing.T) {
	expiry := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	short := NewPaperPosition(eventmodels.NewOptionInstrument("SPY240308P00450000", "SPY", 450, expiry, eventmodels.Put))
	long := NewPaperPosition(eventmodels.NewOptionInstrument("SPY240308P00445000", "SPY", 445, expiry, eventmodels.Put))

	combo := NewCombo("bull-put-SPY-20240308-450-445")

	t.Run("empty combo cannot be placed", func(t *testing.T) {
		require.ErrorIs(t, NewCombo("empty").Place(), ErrEmptyCombo)
	})

	combo.AddLeg(short, 1, OrderSideSell, options.LegNote{Type: options.LegTypeShort})
	combo.AddLeg(long, 1, OrderSideBuy, options.LegNote{Type: options.LegTypeLong})

	require.NoError(t, combo.Place())
	assert.False(t, combo.IsFilled())

	short.HandleQuote(quoteAt(2.00, 2.05))
	long.HandleQuote(quoteAt(1.00, 1.05))

	assert.True(t, combo.IsFilled())
	assert.Equal(t, int64(-1), short.QueryStats().Quantity)
	assert.Equal(t, int64(1), long.QueryStats().Quantity)
	assert.Equal(t, combo.Name, combo.Legs[0].Order.Tag)
}

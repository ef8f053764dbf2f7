package strategy

import (
	"fmt"
	"time"

	"github.com/jiaming2012/autotrade/src/eventmodels"
	"github.com/jiaming2012/autotrade/src/orders"
)

type fakeSkew struct {
	skew  float64
	ready bool
	fills int
}

func (f *fakeSkew) Fill(price float64, t time.Time, volume uint32) {
	f.fills++
}

func (f *fakeSkew) Skewness(t time.Time) (float64, bool) {
	return f.skew, f.ready
}

type fakePosition struct {
	instrument  *eventmodels.Instrument
	nextID      uint
	placed      []*orders.Order
	cancelCalls int
	closeCalls  int
	unrealized  float64
	placeErr    error
}

func newFakePosition() *fakePosition {
	return &fakePosition{instrument: eventmodels.NewInstrument("SPY", eventmodels.InstrumentTypeETF)}
}

func (p *fakePosition) Instrument() *eventmodels.Instrument {
	return p.instrument
}

func (p *fakePosition) ConstructOrder(orderType orders.OrderType, side orders.OrderSide, quantity uint32, limitPrice float64) *orders.Order {
	p.nextID++
	return orders.NewOrder(p.nextID, time.Time{}, p.instrument, side, quantity, orderType, limitPrice, "")
}

func (p *fakePosition) PlaceOrder(order *orders.Order) error {
	if p.placeErr != nil {
		return p.placeErr
	}

	if err := order.Open(); err != nil {
		return fmt.Errorf("fakePosition.PlaceOrder: %w", err)
	}

	p.placed = append(p.placed, order)
	return nil
}

func (p *fakePosition) CancelOrders() error {
	p.cancelCalls++
	for _, order := range p.placed {
		if order.Status == orders.OrderStatusOpen {
			if err := order.Cancel(); err != nil {
				return err
			}
		}
	}

	return nil
}

func (p *fakePosition) ClosePosition() error {
	p.closeCalls++
	return p.CancelOrders()
}

func (p *fakePosition) UnrealizedPL() float64 {
	return p.unrealized
}

func (p *fakePosition) QueryStats() orders.PositionStats {
	return orders.PositionStats{Unrealized: p.unrealized, Total: p.unrealized}
}

type fakeTicks struct {
	quoteSubscribers int
	tradeSubscribers int
}

func (f *fakeTicks) OnQuote(subscriberName string, fn func(eventmodels.Quote)) error {
	f.quoteSubscribers++
	return nil
}

func (f *fakeTicks) RemoveOnQuote(fn func(eventmodels.Quote)) error {
	f.quoteSubscribers--
	return nil
}

func (f *fakeTicks) OnTrade(subscriberName string, fn func(eventmodels.Trade)) error {
	f.tradeSubscribers++
	return nil
}

func (f *fakeTicks) RemoveOnTrade(fn func(eventmodels.Trade)) error {
	f.tradeSubscribers--
	return nil
}

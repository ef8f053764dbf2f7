package orders

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/autotrade/src/eventmodels"
)

var nextOrderID atomic.Uint64

func NewOrderID() uint {
	return uint(nextOrderID.Add(1))
}

// PaperPosition simulates a broker position for one instrument. Working orders are
// matched against the touch each time a quote arrives. It is not safe for concurrent use.
type PaperPosition struct {
	instrument   *eventmodels.Instrument
	multiplier   float64
	commission   float64
	quote        eventmodels.Quote
	working      []*Order
	quantity     int64
	averageCost  float64
	realized     float64
	commissions  float64
	filledOrders int
}

type PaperPositionOption func(*PaperPosition)

// WithCommission charges a flat amount per unit filled.
func WithCommission(perUnit float64) PaperPositionOption {
	return func(p *PaperPosition) {
		p.commission = perUnit
	}
}

func NewPaperPosition(instrument *eventmodels.Instrument, opts ...PaperPositionOption) *PaperPosition {
	multiplier := 1.0
	if instrument.IsOption() {
		multiplier = 100
	}

	p := &PaperPosition{
		instrument: instrument,
		multiplier: multiplier,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *PaperPosition) Instrument() *eventmodels.Instrument {
	return p.instrument
}

func (p *PaperPosition) ConstructOrder(orderType OrderType, side OrderSide, quantity uint32, limitPrice float64) *Order {
	return NewOrder(NewOrderID(), p.quote.Timestamp, p.instrument, side, quantity, orderType, limitPrice, "")
}

func (p *PaperPosition) PlaceOrder(order *Order) error {
	if err := order.Type.Validate(); err != nil {
		order.Reject(err.Error())
		return fmt.Errorf("PaperPosition.PlaceOrder: %w", err)
	}

	if err := order.Side.Validate(); err != nil {
		order.Reject(err.Error())
		return fmt.Errorf("PaperPosition.PlaceOrder: %w", err)
	}

	if order.Quantity == 0 {
		order.Reject("zero quantity")
		return fmt.Errorf("PaperPosition.PlaceOrder: order %d has zero quantity", order.ID)
	}

	if err := order.Open(); err != nil {
		return fmt.Errorf("PaperPosition.PlaceOrder: %w", err)
	}

	log.Debugf("%s: placed %v", p.instrument.Name, order)

	p.working = append(p.working, order)
	p.match()
	return nil
}

func (p *PaperPosition) HandleQuote(quote eventmodels.Quote) {
	if !quote.IsValid() {
		return
	}

	p.quote = quote
	p.match()
}

func (p *PaperPosition) fillPrice(order *Order) (float64, bool) {
	switch order.Type {
	case Market:
		if order.Side == OrderSideBuy {
			return p.quote.Ask, p.quote.Ask > 0
		}
		return p.quote.Bid, p.quote.Bid > 0
	case Limit:
		if order.Side == OrderSideBuy {
			return p.quote.Ask, p.quote.Ask > 0 && p.quote.Ask <= order.LimitPrice
		}
		return p.quote.Bid, p.quote.Bid > 0 && p.quote.Bid >= order.LimitPrice
	default:
		return 0, false
	}
}

func (p *PaperPosition) match() {
	if !p.quote.IsValid() {
		return
	}

	var fills []*Order
	var remaining []*Order
	for _, order := range p.working {
		if _, ok := p.fillPrice(order); ok {
			fills = append(fills, order)
		} else {
			remaining = append(remaining, order)
		}
	}

	p.working = remaining

	// listeners may place new orders, so the working list is settled before any fill is announced
	for _, order := range fills {
		price, _ := p.fillPrice(order)
		p.applyFill(order, price)

		if err := order.Fill(price, p.quote.Timestamp); err != nil {
			log.Errorf("%s: failed to fill %v: %v", p.instrument.Name, order, err)
		}
	}
}

func (p *PaperPosition) applyFill(order *Order, price float64) {
	signed := order.SignedQuantity()
	qty := float64(order.Quantity)

	p.commissions += qty * p.commission
	p.filledOrders++

	switch {
	case p.quantity == 0 || (p.quantity > 0) == (signed > 0):
		held := math.Abs(float64(p.quantity))
		p.averageCost = (p.averageCost*held + price*qty) / (held + qty)
		p.quantity += signed
	default:
		closed := math.Min(math.Abs(float64(p.quantity)), qty)
		direction := 1.0
		if p.quantity < 0 {
			direction = -1.0
		}

		p.realized += closed * (price - p.averageCost) * direction * p.multiplier
		p.quantity += signed

		switch {
		case p.quantity == 0:
			p.averageCost = 0
		case (p.quantity > 0) != (direction > 0):
			p.averageCost = price
		}
	}
}

func (p *PaperPosition) CancelOrders() error {
	working := p.working
	p.working = nil

	var errs []error
	for _, order := range working {
		if err := order.Cancel(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("PaperPosition.CancelOrders: %w", errors.Join(errs...))
	}

	return nil
}

// ClosePosition cancels working orders then flattens with a market order.
func (p *PaperPosition) ClosePosition() error {
	if err := p.CancelOrders(); err != nil {
		return fmt.Errorf("PaperPosition.ClosePosition: %w", err)
	}

	if p.quantity == 0 {
		return nil
	}

	side := OrderSideSell
	if p.quantity < 0 {
		side = OrderSideBuy
	}

	quantity := uint32(math.Abs(float64(p.quantity)))
	order := p.ConstructOrder(Market, side, quantity, 0)
	order.Tag = "close position"

	if err := p.PlaceOrder(order); err != nil {
		return fmt.Errorf("PaperPosition.ClosePosition: %w", err)
	}

	return nil
}

func (p *PaperPosition) UnrealizedPL() float64 {
	if p.quantity == 0 || !p.quote.IsValid() {
		return 0
	}

	mark := p.quote.Bid
	if p.quantity < 0 {
		mark = p.quote.Ask
	}

	return (mark - p.averageCost) * float64(p.quantity) * p.multiplier
}

func (p *PaperPosition) QueryStats() PositionStats {
	unrealized := p.UnrealizedPL()
	return PositionStats{
		Quantity:    p.quantity,
		AverageCost: p.averageCost,
		Unrealized:  unrealized,
		Realized:    p.realized,
		Commissions: p.commissions,
		Total:       unrealized + p.realized - p.commissions,
	}
}

func (p *PaperPosition) WorkingOrders() []*Order {
	return append([]*Order(nil), p.working...)
}

func (p *PaperPosition) FilledOrders() int {
	return p.filledOrders
}

package orders

import (
	"fmt"
	"time"

	"github.com/kataras/go-events"

	"github.com/jiaming2012/autotrade/src/eventmodels"
)

const (
	OrderFilledEvent    events.EventName = "order-filled"
	OrderCancelledEvent events.EventName = "order-cancelled"
)

// Order notifies its listeners synchronously, on the goroutine that fills or cancels it.
// Listeners receive the order as their only payload.
type Order struct {
	ID           uint                    `json:"id"`
	Instrument   *eventmodels.Instrument `json:"instrument"`
	Side         OrderSide               `json:"side"`
	Quantity     uint32                  `json:"quantity"`
	Type         OrderType               `json:"type"`
	LimitPrice   float64                 `json:"limit_price,omitempty"`
	Tag          string                  `json:"tag"`
	Status       OrderStatus             `json:"status"`
	RejectReason string                  `json:"reject_reason,omitempty"`
	CreateDate   time.Time               `json:"create_date"`
	FillDate     time.Time               `json:"fill_date,omitempty"`
	AvgFillPrice float64                 `json:"avg_fill_price"`
	emitter      events.EventEmmiter
}

func (o *Order) OnFilled(listener events.Listener) {
	o.emitter.On(OrderFilledEvent, listener)
}

func (o *Order) OnCancelled(listener events.Listener) {
	o.emitter.On(OrderCancelledEvent, listener)
}

func (o *Order) RemoveOnFilled(listener events.Listener) bool {
	return o.emitter.RemoveListener(OrderFilledEvent, listener)
}

func (o *Order) RemoveOnCancelled(listener events.Listener) bool {
	return o.emitter.RemoveListener(OrderCancelledEvent, listener)
}

func (o *Order) ListenerCount(evt events.EventName) int {
	return o.emitter.ListenerCount(evt)
}

func (o *Order) Open() error {
	if o.Status != OrderStatusPending {
		return fmt.Errorf("Order.Open: order %d is %s: %w", o.ID, o.Status, ErrOrderAlreadyKnown)
	}

	o.Status = OrderStatusOpen
	return nil
}

func (o *Order) Fill(price float64, at time.Time) error {
	if !o.Status.IsTradingAllowed() {
		return fmt.Errorf("Order.Fill: order %d is %s: %w", o.ID, o.Status, ErrOrderNotOpen)
	}

	if price <= 0 {
		return fmt.Errorf("Order.Fill: order %d: %w", o.ID, ErrInvalidFillPrice)
	}

	o.Status = OrderStatusFilled
	o.AvgFillPrice = price
	o.FillDate = at

	o.notify(OrderFilledEvent)
	return nil
}

func (o *Order) Cancel() error {
	if !o.Status.IsTradingAllowed() {
		return fmt.Errorf("Order.Cancel: order %d is %s: %w", o.ID, o.Status, ErrOrderNotOpen)
	}

	o.Status = OrderStatusCancelled

	o.notify(OrderCancelledEvent)
	return nil
}

// notify calls a copy of the listeners registered when the event fired, outside the emitter's
// lock, so a listener may remove itself or any other listener.
func (o *Order) notify(evt events.EventName) {
	for _, listener := range o.emitter.Listeners(evt) {
		listener(o)
	}
}

func (o *Order) Reject(reason string) {
	o.Status = OrderStatusRejected
	o.RejectReason = reason
}

// SignedQuantity is negative for sells.
func (o *Order) SignedQuantity() int64 {
	if o.Side == OrderSideSell {
		return -int64(o.Quantity)
	}

	return int64(o.Quantity)
}

func (o *Order) String() string {
	if o.Type == Limit {
		return fmt.Sprintf("#%d %s %s %d %s @ %.2f (%s)", o.ID, o.Type, o.Side, o.Quantity, o.Instrument.Name, o.LimitPrice, o.Status)
	}

	return fmt.Sprintf("#%d %s %s %d %s (%s)", o.ID, o.Type, o.Side, o.Quantity, o.Instrument.Name, o.Status)
}

// OrderFromPayload unpacks the order passed to an order listener.
func OrderFromPayload(payload ...interface{}) (*Order, bool) {
	if len(payload) == 0 {
		return nil, false
	}

	order, ok := payload[0].(*Order)
	return order, ok
}

func NewOrder(id uint, createDate time.Time, instrument *eventmodels.Instrument, side OrderSide, quantity uint32, orderType OrderType, limitPrice float64, tag string) *Order {
	return &Order{
		ID:         id,
		CreateDate: createDate,
		Instrument: instrument,
		Side:       side,
		Quantity:   quantity,
		Type:       orderType,
		LimitPrice: limitPrice,
		Tag:        tag,
		Status:     OrderStatusPending,
		emitter:    events.New(),
	}
}

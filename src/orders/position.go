package orders

import "github.com/jiaming2012/autotrade/src/eventmodels"

type Position interface {
	Instrument() *eventmodels.Instrument
	ConstructOrder(orderType OrderType, side OrderSide, quantity uint32, limitPrice float64) *Order
	PlaceOrder(order *Order) error
	CancelOrders() error
	ClosePosition() error
	UnrealizedPL() float64
	QueryStats() PositionStats
}

type PositionStats struct {
	Quantity    int64   `json:"quantity"`
	AverageCost float64 `json:"average_cost"`
	Unrealized  float64 `json:"unrealized"`
	Realized    float64 `json:"realized"`
	Commissions float64 `json:"commissions"`
	Total       float64 `json:"total"`
}

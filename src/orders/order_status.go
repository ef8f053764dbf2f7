package orders

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusOpen      OrderStatus = "open"
	OrderStatusFilled    OrderStatus = "filled"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRejected  OrderStatus = "rejected"
)

func (status OrderStatus) IsTradingAllowed() bool {
	return status == OrderStatusPending || status == OrderStatusOpen
}

func (status OrderStatus) IsDone() bool {
	return status == OrderStatusFilled || status == OrderStatusCancelled || status == OrderStatusRejected
}

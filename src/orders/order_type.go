package orders

import "fmt"

type OrderType string

const (
	Market OrderType = "market"
	Limit  OrderType = "limit"
)

func (t OrderType) Validate() error {
	switch t {
	case Market, Limit:
		return nil
	default:
		return fmt.Errorf("invalid order type: %s", t)
	}
}

package orders

import "fmt"

var (
	ErrOrderNotOpen      = fmt.Errorf("order is not open")
	ErrInvalidFillPrice  = fmt.Errorf("fill price must be greater than 0")
	ErrOrderAlreadyKnown = fmt.Errorf("order already placed")
	ErrEmptyCombo        = fmt.Errorf("combo has no legs")
)

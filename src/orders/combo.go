package orders

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jiaming2012/autotrade/src/options"
)

type ComboLeg struct {
	Position Position        `json:"-"`
	Quantity uint32          `json:"quantity"`
	Side     OrderSide       `json:"side"`
	Note     options.LegNote `json:"note"`
	Order    *Order          `json:"order"`
}

// Combo is a multi-leg order. Each leg is a market order against its own position.
type Combo struct {
	ID   uuid.UUID   `json:"id"`
	Name string      `json:"name"`
	Legs []*ComboLeg `json:"legs"`
}

func NewCombo(name string) *Combo {
	return &Combo{
		ID:   uuid.New(),
		Name: name,
	}
}

func (c *Combo) AddLeg(position Position, quantity uint32, side OrderSide, note options.LegNote) *ComboLeg {
	order := position.ConstructOrder(Market, side, quantity, 0)
	order.Tag = c.Name

	leg := &ComboLeg{
		Position: position,
		Quantity: quantity,
		Side:     side,
		Note:     note,
		Order:    order,
	}

	c.Legs = append(c.Legs, leg)
	return leg
}

func (c *Combo) Place() error {
	if len(c.Legs) == 0 {
		return fmt.Errorf("Combo.Place: %s: %w", c.Name, ErrEmptyCombo)
	}

	var errs []error
	for _, leg := range c.Legs {
		if err := leg.Position.PlaceOrder(leg.Order); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("Combo.Place: %s: %w", c.Name, errors.Join(errs...))
	}

	return nil
}

func (c *Combo) IsFilled() bool {
	if len(c.Legs) == 0 {
		return false
	}

	for _, leg := range c.Legs {
		if leg.Order.Status != OrderStatusFilled {
			return false
		}
	}

	return true
}

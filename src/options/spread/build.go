package spread

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/autotrade/src/options"
	"github.com/jiaming2012/autotrade/src/orders"
)

type ComboRequest struct {
	Direction       options.MarketDirection
	Chains          *options.Chains
	Date            time.Time
	Specs           options.SpreadSpecs
	PriceUnderlying float64
	Underlying      string
	Quantity        uint32
}

type PositionFactory func(leg LegSelection) (orders.Position, error)

// BuildCombo assembles an opening combo order. Entries are always bought; the leg
// sides come from the leg definitions.
func BuildCombo(traits Traits, req ComboRequest, positionFor PositionFactory) (*orders.Combo, error) {
	name, err := traits.Name(req.Direction, req.Chains, req.Date, req.Specs, req.PriceUnderlying, req.Underlying)
	if err != nil {
		return nil, fmt.Errorf("BuildCombo: %w", err)
	}

	var legs []LegSelection
	err = traits.ChooseLegs(req.Direction, req.Chains, req.Date, req.Specs, req.PriceUnderlying, func(leg LegSelection) {
		legs = append(legs, leg)
	})
	if err != nil {
		return nil, fmt.Errorf("BuildCombo: %w", err)
	}

	if len(legs) != traits.LegCount() {
		return nil, fmt.Errorf("BuildCombo: %s: selected %d legs, expected %d", name, len(legs), traits.LegCount())
	}

	combo := orders.NewCombo(name)
	for _, leg := range legs {
		position, err := positionFor(leg)
		if err != nil {
			return nil, fmt.Errorf("BuildCombo: position for %s: %w", leg.Name, err)
		}

		comboLeg := traits.AddLegOrder(leg.Type, combo, orders.OrderSideBuy, req.Quantity, position)
		comboLeg.Note = traits.FillLegNote(legIndex(leg.Type), req.Direction)

		log.Infof("%s: %s leg %s (%v)", name, leg.Type, leg.Name, comboLeg.Side)
	}

	return combo, nil
}

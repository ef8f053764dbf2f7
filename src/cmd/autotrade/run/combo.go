package run

import (
	"fmt"
	"time"

	"github.com/jiaming2012/autotrade/src/eventmodels"
	"github.com/jiaming2012/autotrade/src/options"
	"github.com/jiaming2012/autotrade/src/options/spread"
	"github.com/jiaming2012/autotrade/src/orders"
	"github.com/jiaming2012/autotrade/src/utils"
)

type ComboArgs struct {
	ChainsPath  string
	Direction   string
	Date        string
	Price       float64
	DaysToFront int
	Quantity    uint32
}

// Combo builds the opening vertical spread against paper positions. Nothing is placed.
func Combo(args ComboArgs) (*orders.Combo, error) {
	cfg, err := utils.LoadChains(args.ChainsPath)
	if err != nil {
		return nil, fmt.Errorf("Combo: %w", err)
	}

	chains, err := options.NewChainsFromYAML(*cfg)
	if err != nil {
		return nil, fmt.Errorf("Combo: %w", err)
	}

	direction, err := options.ParseMarketDirection(args.Direction)
	if err != nil {
		return nil, fmt.Errorf("Combo: %w", err)
	}

	date, err := time.Parse(time.DateOnly, args.Date)
	if err != nil {
		return nil, fmt.Errorf("Combo: invalid date %q: %w", args.Date, err)
	}

	req := spread.ComboRequest{
		Direction:       direction,
		Chains:          chains,
		Date:            date,
		Specs:           options.SpreadSpecs{DaysToFront: args.DaysToFront},
		PriceUnderlying: args.Price,
		Underlying:      cfg.Underlying,
		Quantity:        args.Quantity,
	}

	combo, err := spread.BuildCombo(spread.VerticalTraits(), req, func(leg spread.LegSelection) (orders.Position, error) {
		instrument := eventmodels.NewOptionInstrument(leg.Name, cfg.Underlying, leg.Strike, leg.Expiry, leg.OptionType)
		if err := instrument.Validate(); err != nil {
			return nil, err
		}

		return orders.NewPaperPosition(instrument), nil
	})
	if err != nil {
		return nil, fmt.Errorf("Combo: %w", err)
	}

	return combo, nil
}

package spread

import (
	"fmt"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/autotrade/src/eventmodels"
	"github.com/jiaming2012/autotrade/src/options"
	"github.com/jiaming2012/autotrade/src/orders"
)

type LegSelection struct {
	Type       options.LegType
	Strike     float64
	Expiry     time.Time
	OptionType eventmodels.OptionType
	Name       eventmodels.OptionSymbol
}

type LegSelectedFn func(LegSelection)

func LegCount() int {
	return len(legDefinitions)
}

type selectedLegs struct {
	chain      *options.Chain
	optionType eventmodels.OptionType
	short      float64
	long       float64
}

func selectLegs(direction options.MarketDirection, chains *options.Chains, date time.Time, specs options.SpreadSpecs, priceUnderlying float64) (selectedLegs, error) {
	chain, err := chains.SelectChain(date, specs.DaysToFront)
	if err != nil {
		return selectedLegs{}, fmt.Errorf("selectLegs: %w", err)
	}

	legs := selectedLegs{chain: chain}

	switch direction {
	case options.MarketDirectionRising:
		legs.optionType = eventmodels.Put
		if legs.short, err = chain.PutAtm(priceUnderlying); err != nil {
			return selectedLegs{}, fmt.Errorf("selectLegs: short put: %w", err)
		}
		if legs.long, err = chain.PutOtm(legs.short); err != nil {
			return selectedLegs{}, fmt.Errorf("selectLegs: long put: %w", err)
		}
	case options.MarketDirectionFalling:
		legs.optionType = eventmodels.Call
		if legs.short, err = chain.CallAtm(priceUnderlying); err != nil {
			return selectedLegs{}, fmt.Errorf("selectLegs: short call: %w", err)
		}
		if legs.long, err = chain.CallOtm(legs.short); err != nil {
			return selectedLegs{}, fmt.Errorf("selectLegs: long call: %w", err)
		}
	default:
		log.Panicf("selectLegs: direction %q cannot choose legs", direction)
	}

	return legs, nil
}

// ChooseLegs reports the short (at the money) leg first and the long (out of the money) leg second.
func ChooseLegs(direction options.MarketDirection, chains *options.Chains, date time.Time, specs options.SpreadSpecs, priceUnderlying float64, fLegSelected LegSelectedFn) error {
	legs, err := selectLegs(direction, chains, date, specs, priceUnderlying)
	if err != nil {
		return fmt.Errorf("ChooseLegs: %w", err)
	}

	for _, leg := range []struct {
		legType options.LegType
		strike  float64
	}{
		{options.LegTypeShort, legs.short},
		{options.LegTypeLong, legs.long},
	} {
		name, err := legs.chain.Name(leg.strike, legs.optionType)
		if err != nil {
			return fmt.Errorf("ChooseLegs: %w", err)
		}

		fLegSelected(LegSelection{
			Type:       leg.legType,
			Strike:     leg.strike,
			Expiry:     legs.chain.Expiry,
			OptionType: legs.optionType,
			Name:       name,
		})
	}

	return nil
}

func FillLegNote(ix int, direction options.MarketDirection) options.LegNote {
	if ix < 0 || ix >= LegCount() {
		log.Panicf("FillLegNote: leg index %d out of range", ix)
	}

	momentum, algo := momentumOf(direction)
	def := legDefinitions[ix]

	return options.LegNote{
		Algo:     algo,
		Momentum: momentum,
		Type:     def.Type,
		Side:     def.Side,
		Option:   legOption(momentum),
		State:    options.LegStateOpen,
		Lock:     false,
	}
}

// LegNoteFor fills the note of the leg playing the given role.
func LegNoteFor(legType options.LegType, direction options.MarketDirection) options.LegNote {
	return FillLegNote(legIndex(legType), direction)
}

func formatStrike(strike float64) string {
	return strconv.FormatFloat(strike, 'f', -1, 64)
}

func Name(direction options.MarketDirection, chains *options.Chains, date time.Time, specs options.SpreadSpecs, priceUnderlying float64, underlying string) (string, error) {
	legs, err := selectLegs(direction, chains, date, specs, priceUnderlying)
	if err != nil {
		return "", fmt.Errorf("Name: %w", err)
	}

	prefix := "bull-put-"
	if direction == options.MarketDirectionFalling {
		prefix = "bear-call-"
	}

	return fmt.Sprintf("%s%s-%s-%s-%s", prefix, underlying, legs.chain.Expiry.Format("20060102"), formatStrike(legs.short), formatStrike(legs.long)), nil
}

// AddLegOrder resolves the concrete side of a leg for an order-level side. A buy opens the
// spread as defined; a sell reverses every leg.
func AddLegOrder(legType options.LegType, combo *orders.Combo, side orders.OrderSide, quantity uint32, position orders.Position) *orders.ComboLeg {
	if err := side.Validate(); err != nil {
		log.Panicf("AddLegOrder: %v", err)
	}

	def := legDefinitions[legIndex(legType)]

	legSide := orders.OrderSideBuy
	if def.Side == options.LegSideShort {
		legSide = orders.OrderSideSell
	}

	if side == orders.OrderSideSell {
		legSide = legSide.Opposite()
	}

	return combo.AddLeg(position, quantity, legSide, options.LegNote{
		Type:  def.Type,
		Side:  def.Side,
		State: options.LegStateOpen,
	})
}

// Traits binds the vertical spread functions for callers that select a combo style at runtime.
type Traits struct {
	LegCount    func() int
	ChooseLegs  func(options.MarketDirection, *options.Chains, time.Time, options.SpreadSpecs, float64, LegSelectedFn) error
	FillLegNote func(int, options.MarketDirection) options.LegNote
	Name        func(options.MarketDirection, *options.Chains, time.Time, options.SpreadSpecs, float64, string) (string, error)
	AddLegOrder func(options.LegType, *orders.Combo, orders.OrderSide, uint32, orders.Position) *orders.ComboLeg
}

func VerticalTraits() Traits {
	return Traits{
		LegCount:    LegCount,
		ChooseLegs:  ChooseLegs,
		FillLegNote: FillLegNote,
		Name:        Name,
		AddLegOrder: AddLegOrder,
	}
}

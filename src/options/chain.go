package options

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jiaming2012/autotrade/src/eventmodels"
)

type strikeNames struct {
	call eventmodels.OptionSymbol
	put  eventmodels.OptionSymbol
}

// Chain holds the strikes of one expiry in ascending order.
type Chain struct {
	Underlying string
	Expiry     time.Time
	strikes    []float64
	names      map[float64]strikeNames
}

func NewChain(underlying string, expiry time.Time, strikes []float64) (*Chain, error) {
	c := &Chain{
		Underlying: underlying,
		Expiry:     expiry,
		names:      make(map[float64]strikeNames, len(strikes)),
	}

	for _, strike := range strikes {
		if _, found := c.names[strike]; found {
			continue
		}

		call, err := eventmodels.NewOptionSymbol(eventmodels.OptionSymbolComponents{
			Underlying:  underlying,
			Expiration:  expiry,
			OptionType:  eventmodels.Call,
			StrikePrice: strike,
		})
		if err != nil {
			return nil, fmt.Errorf("NewChain: %w", err)
		}

		put, err := eventmodels.NewOptionSymbol(eventmodels.OptionSymbolComponents{
			Underlying:  underlying,
			Expiration:  expiry,
			OptionType:  eventmodels.Put,
			StrikePrice: strike,
		})
		if err != nil {
			return nil, fmt.Errorf("NewChain: %w", err)
		}

		c.names[strike] = strikeNames{call: call, put: put}
		c.strikes = append(c.strikes, strike)
	}

	sort.Float64s(c.strikes)
	return c, nil
}

func (c *Chain) Strikes() []float64 {
	return append([]float64(nil), c.strikes...)
}

func (c *Chain) Name(strike float64, optionType eventmodels.OptionType) (eventmodels.OptionSymbol, error) {
	names, found := c.names[strike]
	if !found {
		return "", fmt.Errorf("Chain.Name: strike %v not in %s chain: %w", strike, c.Expiry.Format(time.DateOnly), ErrNoStrike)
	}

	if optionType == eventmodels.Put {
		return names.put, nil
	}

	return names.call, nil
}

// atm returns the strike nearest to price, preferring the lower strike on a tie.
func (c *Chain) atm(price float64) (float64, error) {
	if len(c.strikes) == 0 {
		return 0, fmt.Errorf("Chain.atm: empty chain: %w", ErrNoStrike)
	}

	i := sort.SearchFloat64s(c.strikes, price)
	if i == 0 {
		return c.strikes[0], nil
	}

	if i == len(c.strikes) {
		return c.strikes[i-1], nil
	}

	below, above := c.strikes[i-1], c.strikes[i]
	if math.Abs(above-price) < math.Abs(price-below) {
		return above, nil
	}

	return below, nil
}

func (c *Chain) PutAtm(price float64) (float64, error) {
	return c.atm(price)
}

func (c *Chain) CallAtm(price float64) (float64, error) {
	return c.atm(price)
}

// PutOtm returns the next strike strictly below strike.
func (c *Chain) PutOtm(strike float64) (float64, error) {
	i := sort.SearchFloat64s(c.strikes, strike)
	if i == 0 {
		return 0, fmt.Errorf("Chain.PutOtm: no strike below %v: %w", strike, ErrNoStrike)
	}

	return c.strikes[i-1], nil
}

// CallOtm returns the next strike strictly above strike.
func (c *Chain) CallOtm(strike float64) (float64, error) {
	i := sort.Search(len(c.strikes), func(i int) bool { return c.strikes[i] > strike })
	if i == len(c.strikes) {
		return 0, fmt.Errorf("Chain.CallOtm: no strike above %v: %w", strike, ErrNoStrike)
	}

	return c.strikes[i], nil
}

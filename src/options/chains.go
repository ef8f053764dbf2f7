package options

import (
	"fmt"
	"sort"
	"time"

	"github.com/jiaming2012/autotrade/src/eventmodels"
)

// Chains is keyed by expiry date.
type Chains struct {
	byDate map[string]*Chain
	dates  []time.Time
}

func NewChains() *Chains {
	return &Chains{
		byDate: make(map[string]*Chain),
	}
}

func NewChainsFromYAML(cfg eventmodels.ChainsYAML) (*Chains, error) {
	chains := NewChains()
	for _, c := range cfg.Chains {
		expiry, err := time.Parse(time.DateOnly, c.Expiry)
		if err != nil {
			return nil, fmt.Errorf("NewChainsFromYAML: invalid expiry %q: %w", c.Expiry, err)
		}

		chain, err := NewChain(cfg.Underlying, expiry, c.Strikes)
		if err != nil {
			return nil, fmt.Errorf("NewChainsFromYAML: %w", err)
		}

		chains.Add(chain)
	}

	return chains, nil
}

func dateKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (c *Chains) Add(chain *Chain) {
	key := dateKey(chain.Expiry)
	if _, found := c.byDate[key]; !found {
		c.dates = append(c.dates, truncateToDate(chain.Expiry))
		sort.Slice(c.dates, func(i, j int) bool { return c.dates[i].Before(c.dates[j]) })
	}

	c.byDate[key] = chain
}

func (c *Chains) Len() int {
	return len(c.dates)
}

func (c *Chains) Chain(expiry time.Time) (*Chain, error) {
	chain, found := c.byDate[dateKey(expiry)]
	if !found {
		return nil, fmt.Errorf("Chains.Chain: %s: %w", dateKey(expiry), ErrNoSuchChain)
	}

	return chain, nil
}

// SelectChain returns the earliest chain expiring at least daysToFront calendar days after date.
func (c *Chains) SelectChain(date time.Time, daysToFront int) (*Chain, error) {
	from := truncateToDate(date)
	for _, expiry := range c.dates {
		days := int(expiry.Sub(from).Hours() / 24)
		if days >= daysToFront {
			return c.byDate[dateKey(expiry)], nil
		}
	}

	return nil, fmt.Errorf("Chains.SelectChain: nothing %d days after %s: %w", daysToFront, dateKey(date), ErrNoSuchChain)
}

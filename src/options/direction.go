package options

import "fmt"

type MarketDirection string

const (
	MarketDirectionSelect  MarketDirection = "select"
	MarketDirectionRising  MarketDirection = "rising"
	MarketDirectionFalling MarketDirection = "falling"
)

func ParseMarketDirection(s string) (MarketDirection, error) {
	switch MarketDirection(s) {
	case MarketDirectionRising, MarketDirectionFalling:
		return MarketDirection(s), nil
	default:
		return MarketDirectionSelect, fmt.Errorf("ParseMarketDirection: invalid direction: %q", s)
	}
}

type SpreadSpecs struct {
	DaysToFront int
}

package eventmodels

import (
	"fmt"
	"math"
	"time"
)

type OptionSymbol string

type OptionSymbolComponents struct {
	Underlying  string
	Expiration  time.Time
	OptionType  OptionType
	StrikePrice float64
}

func NewOptionSymbol(option OptionSymbolComponents) (OptionSymbol, error) {
	if err := option.OptionType.Validate(); err != nil {
		return "", fmt.Errorf("NewOptionSymbol: %w", err)
	}

	if option.Underlying == "" {
		return "", fmt.Errorf("NewOptionSymbol: underlying is empty")
	}

	if option.StrikePrice <= 0 {
		return "", fmt.Errorf("NewOptionSymbol: invalid strike price: %v", option.StrikePrice)
	}

	year := option.Expiration.Year() % 100
	month := int(option.Expiration.Month())
	day := option.Expiration.Day()

	// strike in thousandths, zero padded to 8 digits
	strikePrice := fmt.Sprintf("%08d", int64(math.Round(option.StrikePrice*1000)))

	ticker := fmt.Sprintf("%s%02d%02d%02d%s%s",
		option.Underlying, year, month, day, option.OptionType.OCCCode(), strikePrice)

	return OptionSymbol(ticker), nil
}

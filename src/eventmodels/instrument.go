package eventmodels

import (
	"fmt"
	"time"
)

type Instrument struct {
	Name       string         `json:"name"`
	Type       InstrumentType `json:"type"`
	Underlying string         `json:"underlying,omitempty"`
	Strike     float64        `json:"strike,omitempty"`
	Expiry     time.Time      `json:"expiry,omitempty"`
	OptionType OptionType     `json:"option_type,omitempty"`
}

func (i *Instrument) IsOption() bool {
	return i.Type == InstrumentTypeOption
}

func (i *Instrument) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("Instrument.Validate: name is empty")
	}

	if err := i.Type.Validate(); err != nil {
		return fmt.Errorf("Instrument.Validate: %w", err)
	}

	if i.IsOption() {
		if err := i.OptionType.Validate(); err != nil {
			return fmt.Errorf("Instrument.Validate: %w", err)
		}

		if i.Strike <= 0 {
			return fmt.Errorf("Instrument.Validate: option %s has strike %v", i.Name, i.Strike)
		}
	}

	return nil
}

func (i *Instrument) String() string {
	return fmt.Sprintf("%s (%s)", i.Name, i.Type)
}

func NewInstrument(name string, instrumentType InstrumentType) *Instrument {
	return &Instrument{
		Name: name,
		Type: instrumentType,
	}
}

func NewOptionInstrument(symbol OptionSymbol, underlying string, strike float64, expiry time.Time, optionType OptionType) *Instrument {
	return &Instrument{
		Name:       string(symbol),
		Type:       InstrumentTypeOption,
		Underlying: underlying,
		Strike:     strike,
		Expiry:     expiry,
		OptionType: optionType,
	}
}

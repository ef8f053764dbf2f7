package eventmodels

import "fmt"

type OptionType string

func (o OptionType) Validate() error {
	if o != Call && o != Put {
		return fmt.Errorf("OptionType: Validate: invalid option type: %s", o)
	}

	return nil
}

// OCCCode is the single letter used in OCC option symbols.
func (o OptionType) OCCCode() string {
	if o == Put {
		return "P"
	}

	return "C"
}

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

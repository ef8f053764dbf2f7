package eventmodels

import "fmt"

type InstrumentType string

const (
	InstrumentTypeStock    InstrumentType = "stock"
	InstrumentTypeETF      InstrumentType = "etf"
	InstrumentTypeCurrency InstrumentType = "currency"
	InstrumentTypeOption   InstrumentType = "option"
	InstrumentTypeFuture   InstrumentType = "future"
)

func (t InstrumentType) Validate() error {
	switch t {
	case InstrumentTypeStock, InstrumentTypeETF, InstrumentTypeCurrency, InstrumentTypeOption, InstrumentTypeFuture:
		return nil
	default:
		return fmt.Errorf("InstrumentType.Validate: invalid instrument type: %s", t)
	}
}

// SizeMultiplier is the factor applied to provider sizes. Equity feeds quote sizes in round lots.
func (t InstrumentType) SizeMultiplier() uint32 {
	switch t {
	case InstrumentTypeStock, InstrumentTypeETF:
		return 100
	case InstrumentTypeCurrency, InstrumentTypeOption, InstrumentTypeFuture:
		return 1
	default:
		return 1
	}
}

package eventmodels

import (
	"fmt"
	"time"
)

type TickRowDTO struct {
	Timestamp string `csv:"time"`
	Symbol    string `csv:"symbol"`
	Field     string `csv:"field"`
	Value     string `csv:"value"`
}

type TickRow struct {
	Timestamp time.Time
	Symbol    string
	Field     string
	Value     string
}

func (r *TickRowDTO) ToModel() (*TickRow, error) {
	t, err := time.Parse(time.RFC3339Nano, r.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("TickRowDTO.ToModel: error parsing time %q: %w", r.Timestamp, err)
	}

	return &TickRow{
		Timestamp: t,
		Symbol:    r.Symbol,
		Field:     r.Field,
		Value:     r.Value,
	}, nil
}

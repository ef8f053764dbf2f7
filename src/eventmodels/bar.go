package eventmodels

import "time"

type Bar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    uint32    `json:"volume"`
	Count     int       `json:"count"`
}

func (b *Bar) Update(price float64) {
	if price > b.High {
		b.High = price
	}

	if price < b.Low {
		b.Low = price
	}

	b.Close = price
	b.Count++
}

func NewBar(timestamp time.Time, price float64) *Bar {
	return &Bar{
		Timestamp: timestamp,
		Open:      price,
		High:      price,
		Low:       price,
		Close:     price,
		Count:     1,
	}
}

package eventmodels

import "time"

type Greek struct {
	Timestamp         time.Time `json:"timestamp"`
	ImpliedVolatility float64   `json:"implied_volatility"`
	Delta             float64   `json:"delta"`
	Gamma             float64   `json:"gamma"`
	Theta             float64   `json:"theta"`
	Vega              float64   `json:"vega"`
	Reserved          float64   `json:"reserved"`
}

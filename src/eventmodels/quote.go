package eventmodels

import "time"

type Quote struct {
	Timestamp time.Time `json:"timestamp"`
	Bid       float64   `json:"bid"`
	BidSize   uint32    `json:"bid_size"`
	Ask       float64   `json:"ask"`
	AskSize   uint32    `json:"ask_size"`
}

func (q Quote) Midpoint() float64 {
	return (q.Bid + q.Ask) / 2
}

// IsValid reports whether both sides are present and the market is not crossed.
func (q Quote) IsValid() bool {
	return q.Bid > 0 && q.Ask > 0 && q.Bid <= q.Ask
}

func (q Quote) Spread() float64 {
	return q.Ask - q.Bid
}

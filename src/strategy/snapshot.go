package strategy

import "github.com/jiaming2012/autotrade/src/orders"

type Snapshot struct {
	Symbol       string               `json:"symbol"`
	State        TradeState           `json:"state"`
	Tradable     bool                 `json:"tradable"`
	Bid          float64              `json:"bid"`
	Ask          float64              `json:"ask"`
	Skew         float64              `json:"skew"`
	SignedVolume int64                `json:"signed_volume"`
	WorkingOrder *orders.Order        `json:"working_order,omitempty"`
	Position     orders.PositionStats `json:"position"`
	Execution    ExecutionSummary     `json:"execution"`
}

func (s *Strategy) Snapshot() Snapshot {
	snapshot := Snapshot{
		Symbol:       s.symbol,
		State:        s.state,
		Tradable:     s.cfg.Tradable,
		Bid:          s.quote.Bid,
		Ask:          s.quote.Ask,
		Skew:         s.lastSkew,
		SignedVolume: s.volume,
		Execution:    s.execStats.Summary(),
	}

	if s.order != nil {
		order := *s.order
		snapshot.WorkingOrder = &order
	}

	if s.position != nil {
		snapshot.Position = s.position.QueryStats()
	}

	return snapshot
}

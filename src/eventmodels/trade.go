package eventmodels

import "time"

type Trade struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
	Size      uint32    `json:"size"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoldType tags a gold-price variant. The natural key for gold instruments.
type GoldType string

const (
	GoldTypeWorld GoldType = "world" // world spot price
	GoldTypeLocal GoldType = "local" // local market price
)

// Gold is a tracked gold-price instrument.
type Gold struct {
	ID   int64     `json:"id"`
	Type GoldType  `json:"type"`
	Unit string    `json:"unit"` // e.g. "1 oz"
	Time time.Time `json:"time"` // upstream quote timestamp
	Timestamps

	// Prices is populated by the read path, ordered by title.
	Prices []GoldPrice `json:"prices,omitempty"`
}

// GoldPrice is the latest quote for one denomination of a gold instrument.
// Gold quotes are title-keyed, not positional: one row per (GoldID, Title).
type GoldPrice struct {
	ID     int64           `json:"id"`
	GoldID int64           `json:"goldId"`
	Title  string          `json:"title"` // short denomination label
	Value  decimal.Decimal `json:"value"`
	Sign   PriceSign       `json:"sign"`
}

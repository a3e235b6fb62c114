package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is a tracked exchange-rate instrument. The natural key is Code;
// the numeric ID is a storage surrogate.
type Currency struct {
	ID   int64  `json:"id"`
	Code string `json:"code"` // e.g. "USD"
	Unit string `json:"unit"` // e.g. "1$"
	Timestamps

	// CurrentPrices is populated by the read path only (buy first, sell second).
	CurrentPrices []CurrencyPrice `json:"currentPrices,omitempty"`
}

// CurrencyPrice is the latest known quote for one side of a currency.
// Exactly one row exists per (CurrencyID, Type); reseeding mutates it in place.
type CurrencyPrice struct {
	ID         int64           `json:"id"`
	CurrencyID int64           `json:"currencyId"`
	Type       PriceSide       `json:"type"`
	Value      decimal.Decimal `json:"value"`
	Sign       PriceSign       `json:"sign"`
	Timestamps
}

// CurrencyTransaction is a point-in-time quote. The composite
// (CurrencyID, Date, Time) is the idempotency key for reconciliation.
type CurrencyTransaction struct {
	ID         int64           `json:"id"`
	CurrencyID int64           `json:"currencyId"`
	Date       time.Time       `json:"date"` // calendar date, time part zero
	Time       string          `json:"time"` // intra-day label, e.g. "10:30"
	BuyValue   decimal.Decimal `json:"buyValue"`
	BuySign    PriceSign       `json:"buySign"`
	SellValue  decimal.Decimal `json:"sellValue"`
	SellSign   PriceSign       `json:"sellSign"`
}

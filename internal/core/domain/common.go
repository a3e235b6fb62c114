package domain

import "time"

// Timestamps holds standard creation/update times for domain entities.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PriceSign is the direction a quote moved relative to the previous one.
type PriceSign string

const (
	SignUp   PriceSign = "up"
	SignDown PriceSign = "down"
	SignNone PriceSign = "none"
)

// PriceSide distinguishes the buy and sell quote of a currency.
// The upstream feed is positional: the first price is buy, the second sell.
type PriceSide string

const (
	SideBuy  PriceSide = "buy"
	SideSell PriceSide = "sell"
)

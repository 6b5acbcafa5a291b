package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceUpdate is a single market price observation delivered by a feed.
type PriceUpdate struct {
	// CurrencyCode is the non-BTC currency of the pair.
	CurrencyCode string
	// Price is how much 1 BTC is valued in the currency.
	Price decimal.Decimal
}

// PriceProvider exposes the latest known market price per currency.
type PriceProvider interface {
	// GetMarketPrice returns the latest price for the given currency
	// code, or false if no feed delivered one yet.
	GetMarketPrice(currencyCode string) (decimal.Decimal, bool)
}

// PriceFeeder streams market price updates from an external source.
type PriceFeeder interface {
	// Start connects to the source and returns the channel updates are
	// delivered on until the context is canceled.
	Start(ctx context.Context) (chan PriceUpdate, error)
	// Stop tears the connection down.
	Stop()
}

package pricing

import "errors"

var (
	// ErrInvalidPrice ...
	ErrInvalidPrice = errors.New("price must be a positive number")
	// ErrInvalidMarketPrice ...
	ErrInvalidMarketPrice = errors.New("market price must be positive")
	// ErrNegativeTriggerPrice ...
	ErrNegativeTriggerPrice = errors.New("trigger price must not be negative")
	// ErrTriggerPriceOnFixedOffer ...
	ErrTriggerPriceOnFixedOffer = errors.New("trigger price requires a market-priced offer")
)

package application

import "errors"

var (
	// ErrOfferNotFound ...
	ErrOfferNotFound = errors.New("offer not found")
	// ErrTradeNotFound ...
	ErrTradeNotFound = errors.New("trade not found")

	// ErrAmountTooLarge is thrown when an offer amount exceeds the
	// protocol-wide maximum BTC exposure.
	ErrAmountTooLarge = errors.New("amount exceeds the maximum trade amount")
	// ErrAmountBelowMinimum ...
	ErrAmountBelowMinimum = errors.New("amount is below the minimum trade amount")
	// ErrAmountOutOfRange is thrown when a taker picks an amount outside
	// the offer's min/max range.
	ErrAmountOutOfRange = errors.New("amount is outside the offer's accepted range")
	// ErrDepositOutOfBounds ...
	ErrDepositOutOfBounds = errors.New("security deposit percentage out of bounds")
	// ErrInvalidEditMask ...
	ErrInvalidEditMask = errors.New("edit mask must name at least one field")

	// ErrCannotSetFixedPriceOnMarketOffer ...
	ErrCannotSetFixedPriceOnMarketOffer = errors.New("cannot set a fixed price on a market-priced offer")
	// ErrCannotSetMarginOnFixedOffer ...
	ErrCannotSetMarginOnFixedOffer = errors.New("cannot set a market margin on a fixed-price offer")
	// ErrCannotSetTriggerOnFixedOffer ...
	ErrCannotSetTriggerOnFixedOffer = errors.New("cannot set a trigger price on a fixed-price offer")

	// ErrInsufficientFeeCurrencyBalance signals the caller to fall back
	// to a BTC denominated fee or abort.
	ErrInsufficientFeeCurrencyBalance = errors.New("balance of the chosen fee currency cannot cover the fee")
	// ErrNoMarketPrice is thrown when a market-priced operation has no
	// price feed for the currency.
	ErrNoMarketPrice = errors.New("no market price available for currency")
)

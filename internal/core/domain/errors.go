package domain

import "errors"

var (
	// ErrOfferInvalidCurrencyPair is thrown when none or both currency codes of a pair are BTC.
	ErrOfferInvalidCurrencyPair = errors.New("exactly one currency of the pair must be BTC")
	// ErrOfferMinAmountGreaterThanAmount ...
	ErrOfferMinAmountGreaterThanAmount = errors.New("minimum amount must not be greater than amount")
	// ErrOfferAmbiguousPricingMode is thrown when both a fixed price and a market margin are set.
	ErrOfferAmbiguousPricingMode = errors.New("exactly one pricing mode must be set")
	// ErrOfferMissingPrice ...
	ErrOfferMissingPrice = errors.New("fixed price offer must have a positive price")
	// ErrOfferNegativeTriggerPrice ...
	ErrOfferNegativeTriggerPrice = errors.New("trigger price must not be negative")
	// ErrOfferTriggerPriceOnFixedOffer ...
	ErrOfferTriggerPriceOnFixedOffer = errors.New("trigger price requires a market-priced offer")
	// ErrOfferSwapMustUseFixedPrice ...
	ErrOfferSwapMustUseFixedPrice = errors.New("swap offers carry neither market margin nor trigger price")

	// ErrOfferNotPending is thrown when publishing an offer that already left preparation.
	ErrOfferNotPending = errors.New("offer must be pending to be published")
	// ErrOfferNotDeactivated ...
	ErrOfferNotDeactivated = errors.New("offer must be deactivated to be activated")
	// ErrOfferNotAvailable ...
	ErrOfferNotAvailable = errors.New("offer must be available to be deactivated")
	// ErrOfferNoLongerAvailable is thrown when mutating an offer that has been canceled or taken.
	ErrOfferNoLongerAvailable = errors.New("offer is no longer available")
	// ErrOfferImmutable is thrown on any attempt to edit a swap offer.
	ErrOfferImmutable = errors.New("swap offers cannot be edited")

	// ErrTradeWrongProtocol is thrown when applying an event of another trade variant.
	ErrTradeWrongProtocol = errors.New("event does not belong to the trade's protocol")
	// ErrTradeUnexpectedPhase is thrown when a phase transition would skip a phase.
	ErrTradeUnexpectedPhase = errors.New("unexpected trade phase transition")
	// ErrTradeNotCancelable is thrown when canceling a trade whose deposit already hit the chain.
	ErrTradeNotCancelable = errors.New("trade can only be canceled before the deposit is published")
	// ErrTradeTerminal is thrown when mutating a trade that already reached a terminal state.
	ErrTradeTerminal = errors.New("trade already reached a terminal state")
	// ErrTradeTimedOut ...
	ErrTradeTimedOut = errors.New("trade timed out waiting for the next protocol step")
	// ErrTradeNotCompleted ...
	ErrTradeNotCompleted = errors.New("trade must be completed to withdraw funds")
)

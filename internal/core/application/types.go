package application

import (
	"github.com/peertrade-network/peertrade-daemon/internal/core/domain"
)

// EditMask enumerates which fields an EditOffer call intends to change.
// Request fields outside the mask are ignored even if present.
type EditMask uint8

const (
	EditFixedPrice EditMask = 1 << iota
	EditMarketPriceMargin
	EditTriggerPrice
	EditActivationState
)

func (m EditMask) has(field EditMask) bool {
	return m&field != 0
}

// CreateOfferRequest carries the literal fields of the CreateOffer
// operation. FixedPrice is the human readable price string; it is parsed
// and scaled according to the currency class.
type CreateOfferRequest struct {
	Type                    domain.OfferType
	Direction               domain.OfferDirection
	BaseCurrencyCode        string
	CounterCurrencyCode     string
	Amount                  uint64
	MinAmount               uint64
	UseMarketBasedPrice     bool
	MarketPriceMargin       float64
	FixedPrice              string
	TriggerPrice            int64
	BuyerSecurityDepositPct float64
	PaymentAccountId        string
	MakerFeeCurrency        domain.FeeCurrency
}

// EditOfferRequest carries an offer mutation. Only fields named by Mask
// are considered.
type EditOfferRequest struct {
	OfferId           string
	FixedPrice        string
	MarketPriceMargin float64
	TriggerPrice      int64
	Activate          bool
	Mask              EditMask
}

// TakeOfferRequest carries a taker's attempt against a published offer.
type TakeOfferRequest struct {
	OfferId               string
	Amount                uint64
	TakerPaymentAccountId string
	TakerFeeCurrency      domain.FeeCurrency
	PeerNodeAddress       string
}

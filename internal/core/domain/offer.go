package domain

import (
	"github.com/google/uuid"
)

// OfferDirection tells whether the maker wants to buy or sell BTC.
type OfferDirection int

const (
	OfferDirectionBuy OfferDirection = iota
	OfferDirectionSell
)

func (d OfferDirection) String() string {
	if d == OfferDirectionSell {
		return "SELL"
	}
	return "BUY"
}

// OfferType selects the trade protocol an offer is settled with.
type OfferType int

const (
	// OfferTypeEscrowV1 is the default multisig escrow protocol with
	// security deposits on both sides.
	OfferTypeEscrowV1 OfferType = iota
	// OfferTypeBsqSwap is a single-transaction atomic BSQ/BTC swap.
	// Swap offers are immutable once published.
	OfferTypeBsqSwap
	// OfferTypeAtomic is a direct on-chain asset swap without
	// payment-account mediation.
	OfferTypeAtomic
)

func (t OfferType) String() string {
	switch t {
	case OfferTypeBsqSwap:
		return "BSQ_SWAP"
	case OfferTypeAtomic:
		return "ATOMIC"
	default:
		return "ESCROW_V1"
	}
}

// FeeCurrency is the currency the maker or taker pays its trade fee with.
type FeeCurrency int

const (
	FeeCurrencyBtc FeeCurrency = iota
	FeeCurrencyBsq
)

func (c FeeCurrency) String() string {
	if c == FeeCurrencyBsq {
		return "BSQ"
	}
	return "BTC"
}

const btcCurrencyCode = "BTC"

// Offer is the data structure representing a published trade offer.
// Exactly one of the currency pair is BTC: fiat offers carry BTC as base
// and the fiat currency as counter, crypto offers carry the altcoin as
// base and BTC as counter.
//
// Prices are stored as scaled integers: fiat prices with 4 decimal
// places, crypto prices with 8. Exactly one pricing mode is set at a
// time, either a fixed price or a percentage margin off the live market
// price. A non-zero trigger price is only meaningful for market-priced
// offers.
type Offer struct {
	Id                       string
	Type                     OfferType
	Direction                OfferDirection
	BaseCurrencyCode         string
	CounterCurrencyCode      string
	Amount                   uint64
	MinAmount                uint64
	FixedPrice               int64
	UseMarketBasedPrice      bool
	MarketPriceMargin        float64
	TriggerPrice             int64
	BuyerSecurityDepositPct  float64
	SellerSecurityDepositPct float64
	MakerFeeCurrency         FeeCurrency
	MakerFee                 uint64
	PaymentAccountId         string
}

// NewOffer returns a new offer with a fresh id after validating the
// cross-field invariants that hold for every offer type.
func NewOffer(
	offerType OfferType, direction OfferDirection,
	baseCurrency, counterCurrency string,
	amount, minAmount uint64,
	fixedPrice int64, useMarketBasedPrice bool, marketPriceMargin float64,
	triggerPrice int64,
	buyerSecurityDepositPct, sellerSecurityDepositPct float64,
	makerFeeCurrency FeeCurrency, makerFee uint64,
	paymentAccountId string,
) (*Offer, error) {
	if (baseCurrency == btcCurrencyCode) == (counterCurrency == btcCurrencyCode) {
		return nil, ErrOfferInvalidCurrencyPair
	}
	if minAmount > amount {
		return nil, ErrOfferMinAmountGreaterThanAmount
	}
	if useMarketBasedPrice {
		if fixedPrice != 0 {
			return nil, ErrOfferAmbiguousPricingMode
		}
	} else {
		if fixedPrice <= 0 {
			return nil, ErrOfferMissingPrice
		}
		if marketPriceMargin != 0 {
			return nil, ErrOfferAmbiguousPricingMode
		}
		if triggerPrice != 0 {
			return nil, ErrOfferTriggerPriceOnFixedOffer
		}
	}
	if triggerPrice < 0 {
		return nil, ErrOfferNegativeTriggerPrice
	}
	if offerType == OfferTypeBsqSwap &&
		(useMarketBasedPrice || triggerPrice != 0) {
		return nil, ErrOfferSwapMustUseFixedPrice
	}

	return &Offer{
		Id:                       uuid.New().String(),
		Type:                     offerType,
		Direction:                direction,
		BaseCurrencyCode:         baseCurrency,
		CounterCurrencyCode:      counterCurrency,
		Amount:                   amount,
		MinAmount:                minAmount,
		FixedPrice:               fixedPrice,
		UseMarketBasedPrice:      useMarketBasedPrice,
		MarketPriceMargin:        marketPriceMargin,
		TriggerPrice:             triggerPrice,
		BuyerSecurityDepositPct:  buyerSecurityDepositPct,
		SellerSecurityDepositPct: sellerSecurityDepositPct,
		MakerFeeCurrency:         makerFeeCurrency,
		MakerFee:                 makerFee,
		PaymentAccountId:         paymentAccountId,
	}, nil
}

// IsBuyOffer returns whether the maker is the BTC buyer.
func (o *Offer) IsBuyOffer() bool {
	return o.Direction == OfferDirectionBuy
}

// IsCryptoPair returns whether the offer trades BTC against an altcoin
// rather than a fiat currency.
func (o *Offer) IsCryptoPair() bool {
	return o.BaseCurrencyCode != btcCurrencyCode
}

// IsBsqSwap returns whether the offer settles with the single-tx swap
// protocol.
func (o *Offer) IsBsqSwap() bool {
	return o.Type == OfferTypeBsqSwap
}

// MarketCurrencyCode returns the non-BTC code of the pair, ie. the code
// market prices are looked up with.
func (o *Offer) MarketCurrencyCode() string {
	if o.IsCryptoPair() {
		return o.BaseCurrencyCode
	}
	return o.CounterCurrencyCode
}

package application

import (
	"github.com/peertrade-network/peertrade-daemon/internal/core/domain"
	"github.com/peertrade-network/peertrade-daemon/pkg/pricing"
)

// Limits bounds offer creation. Amounts are satoshis, percentages
// fractions.
type Limits struct {
	MinTradeAmount        uint64
	MaxTradeAmount        uint64
	MinSecurityDepositPct float64
	MaxSecurityDepositPct float64
}

// validateCreateOfferRequest enforces the amount, deposit and
// pricing-mode bounds of a create request. Pure, no side effects.
func validateCreateOfferRequest(req CreateOfferRequest, limits Limits) error {
	if req.Amount > limits.MaxTradeAmount {
		return ErrAmountTooLarge
	}
	if req.Amount < limits.MinTradeAmount || req.MinAmount < limits.MinTradeAmount {
		return ErrAmountBelowMinimum
	}
	if req.MinAmount > req.Amount {
		return domain.ErrOfferMinAmountGreaterThanAmount
	}
	if pct := req.BuyerSecurityDepositPct; pct != 0 &&
		(pct < limits.MinSecurityDepositPct || pct > limits.MaxSecurityDepositPct) {
		return ErrDepositOutOfBounds
	}
	if err := pricing.ValidateTriggerPrice(
		req.TriggerPrice, req.UseMarketBasedPrice,
	); err != nil {
		return mapTriggerErr(err)
	}
	if req.UseMarketBasedPrice && req.FixedPrice != "" {
		return domain.ErrOfferAmbiguousPricingMode
	}
	if !req.UseMarketBasedPrice && req.FixedPrice == "" {
		return domain.ErrOfferMissingPrice
	}
	if req.Type == domain.OfferTypeBsqSwap &&
		(req.UseMarketBasedPrice || req.TriggerPrice != 0) {
		return domain.ErrOfferSwapMustUseFixedPrice
	}
	return nil
}

// validateEditOfferRequest enforces the edit-permission matrix: each
// requested field must be compatible with the offer's type and pricing
// mode. A negative trigger price fails first, regardless of the rest of
// the mask; swap offers reject any edit.
func validateEditOfferRequest(
	offer *domain.Offer, req EditOfferRequest,
) error {
	if req.Mask == 0 {
		return ErrInvalidEditMask
	}
	if req.Mask.has(EditTriggerPrice) && req.TriggerPrice < 0 {
		return pricing.ErrNegativeTriggerPrice
	}
	if offer.IsBsqSwap() {
		return domain.ErrOfferImmutable
	}
	if req.Mask.has(EditFixedPrice) && offer.UseMarketBasedPrice {
		return ErrCannotSetFixedPriceOnMarketOffer
	}
	if req.Mask.has(EditMarketPriceMargin) && !offer.UseMarketBasedPrice {
		return ErrCannotSetMarginOnFixedOffer
	}
	if req.Mask.has(EditTriggerPrice) && !offer.UseMarketBasedPrice {
		return ErrCannotSetTriggerOnFixedOffer
	}
	return nil
}

// editedFields normalizes a validated edit request into the mutation the
// domain applies atomically.
func editedFields(
	offer *domain.Offer, req EditOfferRequest,
) (domain.EditedFields, error) {
	fields := domain.EditedFields{}
	if req.Mask.has(EditFixedPrice) {
		price, err := pricing.ParsePrice(req.FixedPrice, offer.IsCryptoPair())
		if err != nil {
			return fields, err
		}
		fields.FixedPrice = &price
	}
	if req.Mask.has(EditMarketPriceMargin) {
		margin := req.MarketPriceMargin
		fields.MarketPriceMargin = &margin
	}
	if req.Mask.has(EditTriggerPrice) {
		trigger := req.TriggerPrice
		fields.TriggerPrice = &trigger
	}
	if req.Mask.has(EditActivationState) {
		activate := req.Activate
		fields.Activate = &activate
	}
	return fields, nil
}

func mapTriggerErr(err error) error {
	if err == pricing.ErrTriggerPriceOnFixedOffer {
		return ErrCannotSetTriggerOnFixedOffer
	}
	return err
}

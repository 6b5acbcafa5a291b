package domain

import "context"

// OfferRepository is the abstraction for any kind of database intended
// to persist OpenOffers. Implementations must guarantee that the record
// committed by UpdateOffer replaces the previous version atomically.
type OfferRepository interface {
	// AddOffer persists a new open offer.
	AddOffer(ctx context.Context, offer *OpenOffer) error
	// GetOffer returns the open offer with the given id, or nil if not
	// found.
	GetOffer(ctx context.Context, offerId string) (*OpenOffer, error)
	// GetAllOffers returns all open offers stored in the repository.
	GetAllOffers(ctx context.Context) ([]*OpenOffer, error)
	// GetMarketPricedOffers returns all non-canceled offers priced with
	// a market margin.
	GetMarketPricedOffers(ctx context.Context) ([]*OpenOffer, error)
	// UpdateOffer allows to commit multiple changes to the same offer in
	// a transactional way.
	UpdateOffer(
		ctx context.Context, offerId string,
		updateFn func(offer *OpenOffer) (*OpenOffer, error),
	) error
}

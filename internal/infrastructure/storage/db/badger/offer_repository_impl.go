package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/peertrade-network/peertrade-daemon/internal/core/domain"
)

type offerRepositoryImpl struct {
	store *badgerhold.Store
}

func newOfferRepositoryImpl(store *badgerhold.Store) domain.OfferRepository {
	return offerRepositoryImpl{store}
}

func (r offerRepositoryImpl) AddOffer(
	_ context.Context, offer *domain.OpenOffer,
) error {
	return r.store.Insert(offer.Id(), *offer)
}

func (r offerRepositoryImpl) GetOffer(
	_ context.Context, offerId string,
) (*domain.OpenOffer, error) {
	return r.getOffer(offerId)
}

func (r offerRepositoryImpl) GetAllOffers(
	_ context.Context,
) ([]*domain.OpenOffer, error) {
	return r.findOffers(&badgerhold.Query{})
}

func (r offerRepositoryImpl) GetMarketPricedOffers(
	_ context.Context,
) ([]*domain.OpenOffer, error) {
	query := badgerhold.Where("Offer.UseMarketBasedPrice").Eq(true).
		And("State").Ne(domain.OpenOfferStateCanceled)
	return r.findOffers(query)
}

// UpdateOffer commits the mutation made by updateFn atomically: the
// updated record replaces the previous version before it becomes
// visible to readers.
func (r offerRepositoryImpl) UpdateOffer(
	_ context.Context, offerId string,
	updateFn func(offer *domain.OpenOffer) (*domain.OpenOffer, error),
) error {
	currentOffer, err := r.getOffer(offerId)
	if err != nil {
		return err
	}
	if currentOffer == nil {
		return ErrOfferNotFound
	}

	updatedOffer, err := updateFn(currentOffer)
	if err != nil {
		return err
	}

	return r.store.Update(offerId, *updatedOffer)
}

func (r offerRepositoryImpl) getOffer(
	offerId string,
) (*domain.OpenOffer, error) {
	var offer domain.OpenOffer
	if err := r.store.Get(offerId, &offer); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &offer, nil
}

func (r offerRepositoryImpl) findOffers(
	query *badgerhold.Query,
) ([]*domain.OpenOffer, error) {
	var offers []domain.OpenOffer
	if err := r.store.Find(&offers, query); err != nil {
		return nil, err
	}

	list := make([]*domain.OpenOffer, 0, len(offers))
	for i := range offers {
		list = append(list, &offers[i])
	}
	return list, nil
}

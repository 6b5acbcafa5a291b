package inmemory

import (
	"context"

	"github.com/peertrade-network/peertrade-daemon/internal/core/domain"
)

type offerRepositoryImpl struct {
	store *offerInmemoryStore
}

func newOfferRepositoryImpl(store *offerInmemoryStore) domain.OfferRepository {
	return &offerRepositoryImpl{store}
}

func (r offerRepositoryImpl) AddOffer(
	_ context.Context, offer *domain.OpenOffer,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.offers[offer.Id()]; ok {
		return ErrOfferAlreadyExists
	}
	r.store.offers[offer.Id()] = *offer
	return nil
}

func (r offerRepositoryImpl) GetOffer(
	_ context.Context, offerId string,
) (*domain.OpenOffer, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	return r.getOffer(offerId), nil
}

func (r offerRepositoryImpl) GetAllOffers(
	_ context.Context,
) ([]*domain.OpenOffer, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	offers := make([]*domain.OpenOffer, 0, len(r.store.offers))
	for i := range r.store.offers {
		offer := r.store.offers[i]
		offers = append(offers, &offer)
	}
	return offers, nil
}

func (r offerRepositoryImpl) GetMarketPricedOffers(
	_ context.Context,
) ([]*domain.OpenOffer, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	offers := make([]*domain.OpenOffer, 0)
	for i := range r.store.offers {
		offer := r.store.offers[i]
		if offer.Offer.UseMarketBasedPrice && !offer.IsCanceled() {
			offers = append(offers, &offer)
		}
	}
	return offers, nil
}

func (r offerRepositoryImpl) UpdateOffer(
	_ context.Context, offerId string,
	updateFn func(offer *domain.OpenOffer) (*domain.OpenOffer, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentOffer := r.getOffer(offerId)
	if currentOffer == nil {
		return ErrOfferNotFound
	}

	updatedOffer, err := updateFn(currentOffer)
	if err != nil {
		return err
	}

	r.store.offers[offerId] = *updatedOffer
	return nil
}

func (r offerRepositoryImpl) getOffer(offerId string) *domain.OpenOffer {
	offer, ok := r.store.offers[offerId]
	if !ok {
		return nil
	}
	return &offer
}

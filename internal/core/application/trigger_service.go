package application

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/peertrade-network/peertrade-daemon/internal/core/domain"
	"github.com/peertrade-network/peertrade-daemon/internal/core/ports"
	"github.com/peertrade-network/peertrade-daemon/internal/metrics"
	"github.com/peertrade-network/peertrade-daemon/pkg/pricing"
)

// TriggerService deactivates market-priced offers whose trigger price is
// crossed by a market price update. A trigger acts as a protective stop:
// the offer keeps its id and fields and can be re-activated by the
// maker.
type TriggerService struct {
	offerRepository domain.OfferRepository
}

// NewTriggerService returns a TriggerService over the given repository.
func NewTriggerService(offerRepository domain.OfferRepository) *TriggerService {
	return &TriggerService{offerRepository: offerRepository}
}

// OnPriceUpdate checks every available market-priced offer of the
// update's currency against its trigger price.
func (s *TriggerService) OnPriceUpdate(
	ctx context.Context, update ports.PriceUpdate,
) error {
	offers, err := s.offerRepository.GetMarketPricedOffers(ctx)
	if err != nil {
		return err
	}

	for _, openOffer := range offers {
		offer := openOffer.Offer
		if !openOffer.IsAvailable() ||
			offer.MarketCurrencyCode() != update.CurrencyCode {
			continue
		}
		triggered := pricing.WasTriggered(
			update.Price, offer.TriggerPrice,
			offer.Direction == domain.OfferDirectionSell, offer.IsCryptoPair(),
		)
		if !triggered {
			continue
		}

		if err := s.offerRepository.UpdateOffer(
			ctx, offer.Id,
			func(o *domain.OpenOffer) (*domain.OpenOffer, error) {
				if err := o.Deactivate(); err != nil {
					return nil, err
				}
				return o, nil
			},
		); err != nil {
			log.WithError(err).Warnf(
				"could not deactivate triggered offer %s", offer.Id,
			)
			continue
		}

		metrics.OffersTriggered.Inc()
		log.Infof(
			"offer %s deactivated, market price %s crossed trigger price %d",
			offer.Id, update.Price, offer.TriggerPrice,
		)
	}
	return nil
}

package application

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/peertrade-network/peertrade-daemon/internal/core/domain"
	"github.com/peertrade-network/peertrade-daemon/internal/core/ports"
	"github.com/peertrade-network/peertrade-daemon/internal/metrics"
	"github.com/peertrade-network/peertrade-daemon/pkg/fees"
	"github.com/peertrade-network/peertrade-daemon/pkg/pricing"
)

const (
	bsqCurrencyCode = "BSQ"
	// bsqPrecision is the number of decimal places of the BSQ token.
	bsqPrecision = 2
)

// Config bounds the offer and trade services.
type Config struct {
	Limits           Limits
	MaxTradePeriod   time.Duration
	TradeStepTimeout time.Duration
}

// OfferService exposes the offer lifecycle operations to the transport
// layer.
type OfferService interface {
	CreateOffer(ctx context.Context, req CreateOfferRequest) (*domain.OpenOffer, error)
	EditOffer(ctx context.Context, req EditOfferRequest) (*domain.OpenOffer, error)
	CancelOffer(ctx context.Context, offerId string) error
	ActivateOffer(ctx context.Context, offerId string) (*domain.OpenOffer, error)
	DeactivateOffer(ctx context.Context, offerId string) (*domain.OpenOffer, error)
	TakeOffer(ctx context.Context, req TakeOfferRequest) (*domain.Trade, error)
	GetOffer(ctx context.Context, offerId string) (*domain.OpenOffer, error)
	ListOffers(ctx context.Context) ([]*domain.OpenOffer, error)
}

type offerService struct {
	offerRepository domain.OfferRepository
	tradeRepository domain.TradeRepository
	priceProvider   ports.PriceProvider
	wallet          ports.Wallet
	feeCalculator   *fees.Calculator
	config          Config

	locks *offerLocks
}

// NewOfferService returns an OfferService over the given repositories
// and collaborators.
func NewOfferService(
	offerRepository domain.OfferRepository,
	tradeRepository domain.TradeRepository,
	priceProvider ports.PriceProvider,
	wallet ports.Wallet,
	feeCalculator *fees.Calculator,
	config Config,
) OfferService {
	return &offerService{
		offerRepository: offerRepository,
		tradeRepository: tradeRepository,
		priceProvider:   priceProvider,
		wallet:          wallet,
		feeCalculator:   feeCalculator,
		config:          config,
		locks:           newOfferLocks(),
	}
}

func (s *offerService) CreateOffer(
	ctx context.Context, req CreateOfferRequest,
) (*domain.OpenOffer, error) {
	if err := validateCreateOfferRequest(req, s.config.Limits); err != nil {
		return nil, err
	}

	isCryptoPair := req.BaseCurrencyCode != "BTC"
	var fixedPrice int64
	if !req.UseMarketBasedPrice {
		price, err := pricing.ParsePrice(req.FixedPrice, isCryptoPair)
		if err != nil {
			return nil, err
		}
		fixedPrice = price
	} else {
		s.checkMarginTolerance(req, isCryptoPair)
	}

	makerFee, err := s.tradeFee(
		req.Amount, req.MakerFeeCurrency, s.feeCalculator.MakerFee,
	)
	if err != nil {
		return nil, err
	}
	if err := s.checkFeeBalance(makerFee, req.MakerFeeCurrency); err != nil {
		return nil, err
	}

	buyerDepositPct := req.BuyerSecurityDepositPct
	if buyerDepositPct == 0 {
		buyerDepositPct = s.feeCalculator.DefaultBuyerSecurityDepositPct()
	}
	sellerDepositPct := s.feeCalculator.SellerSecurityDepositPct(buyerDepositPct)

	offer, err := domain.NewOffer(
		req.Type, req.Direction,
		req.BaseCurrencyCode, req.CounterCurrencyCode,
		req.Amount, req.MinAmount,
		fixedPrice, req.UseMarketBasedPrice, req.MarketPriceMargin,
		req.TriggerPrice,
		buyerDepositPct, sellerDepositPct,
		req.MakerFeeCurrency, makerFee,
		req.PaymentAccountId,
	)
	if err != nil {
		return nil, err
	}

	openOffer := domain.NewOpenOffer(offer)
	if err := s.offerRepository.AddOffer(ctx, openOffer); err != nil {
		return nil, err
	}

	if err := s.offerRepository.UpdateOffer(
		ctx, offer.Id,
		func(o *domain.OpenOffer) (*domain.OpenOffer, error) {
			if err := o.Publish(); err != nil {
				return nil, err
			}
			return o, nil
		},
	); err != nil {
		return nil, err
	}

	metrics.OffersCreated.Inc()
	log.Debugf(
		"published %s offer %s %s/%s",
		offer.Direction, offer.Id,
		offer.BaseCurrencyCode, offer.CounterCurrencyCode,
	)
	return s.offerRepository.GetOffer(ctx, offer.Id)
}

func (s *offerService) EditOffer(
	ctx context.Context, req EditOfferRequest,
) (*domain.OpenOffer, error) {
	unlock := s.locks.lock(req.OfferId)
	defer unlock()

	if err := s.offerRepository.UpdateOffer(
		ctx, req.OfferId,
		func(o *domain.OpenOffer) (*domain.OpenOffer, error) {
			if err := validateEditOfferRequest(&o.Offer, req); err != nil {
				return nil, err
			}
			fields, err := editedFields(&o.Offer, req)
			if err != nil {
				return nil, err
			}
			if err := o.ApplyEdit(fields); err != nil {
				return nil, err
			}
			return o, nil
		},
	); err != nil {
		return nil, err
	}

	log.Debugf("republished offer %s after edit", req.OfferId)
	return s.offerRepository.GetOffer(ctx, req.OfferId)
}

func (s *offerService) CancelOffer(ctx context.Context, offerId string) error {
	unlock := s.locks.lock(offerId)
	defer unlock()

	if err := s.offerRepository.UpdateOffer(
		ctx, offerId,
		func(o *domain.OpenOffer) (*domain.OpenOffer, error) {
			if err := o.Cancel(); err != nil {
				return nil, err
			}
			return o, nil
		},
	); err != nil {
		return err
	}

	metrics.OffersCanceled.Inc()
	log.Debugf("canceled offer %s", offerId)
	return nil
}

func (s *offerService) ActivateOffer(
	ctx context.Context, offerId string,
) (*domain.OpenOffer, error) {
	return s.toggleActivation(ctx, offerId, true)
}

func (s *offerService) DeactivateOffer(
	ctx context.Context, offerId string,
) (*domain.OpenOffer, error) {
	return s.toggleActivation(ctx, offerId, false)
}

func (s *offerService) toggleActivation(
	ctx context.Context, offerId string, activate bool,
) (*domain.OpenOffer, error) {
	unlock := s.locks.lock(offerId)
	defer unlock()

	if err := s.offerRepository.UpdateOffer(
		ctx, offerId,
		func(o *domain.OpenOffer) (*domain.OpenOffer, error) {
			var err error
			if activate {
				err = o.Activate()
			} else {
				err = o.Deactivate()
			}
			if err != nil {
				return nil, err
			}
			return o, nil
		},
	); err != nil {
		return nil, err
	}
	return s.offerRepository.GetOffer(ctx, offerId)
}

func (s *offerService) TakeOffer(
	ctx context.Context, req TakeOfferRequest,
) (*domain.Trade, error) {
	unlock := s.locks.lock(req.OfferId)
	defer unlock()

	openOffer, err := s.offerRepository.GetOffer(ctx, req.OfferId)
	if err != nil {
		return nil, err
	}
	if openOffer == nil {
		return nil, ErrOfferNotFound
	}
	offer := openOffer.Offer

	if req.Amount < offer.MinAmount || req.Amount > offer.Amount {
		return nil, ErrAmountOutOfRange
	}

	tradePrice := offer.FixedPrice
	if offer.UseMarketBasedPrice {
		marketPrice, ok := s.priceProvider.GetMarketPrice(offer.MarketCurrencyCode())
		if !ok {
			return nil, ErrNoMarketPrice
		}
		tradePrice, err = pricing.PriceFromMargin(
			marketPrice, offer.MarketPriceMargin,
			offer.Direction == domain.OfferDirectionSell, offer.IsCryptoPair(),
		)
		if err != nil {
			return nil, err
		}
	}

	takerFee, err := s.tradeFee(
		req.Amount, req.TakerFeeCurrency, s.feeCalculator.TakerFee,
	)
	if err != nil {
		return nil, err
	}

	if err := s.offerRepository.UpdateOffer(
		ctx, req.OfferId,
		func(o *domain.OpenOffer) (*domain.OpenOffer, error) {
			if err := o.MarkTaken(); err != nil {
				return nil, err
			}
			return o, nil
		},
	); err != nil {
		return nil, err
	}

	trade := domain.NewTrade(
		&offer, req.Amount, tradePrice,
		req.PeerNodeAddress, req.TakerPaymentAccountId,
		takerFee, req.TakerFeeCurrency,
		s.config.MaxTradePeriod,
	)
	if err := s.tradeRepository.AddTrade(ctx, trade); err != nil {
		return nil, err
	}

	metrics.OffersTaken.Inc()
	log.Debugf("offer %s taken, trade %s created", req.OfferId, trade.Id)
	return trade, nil
}

func (s *offerService) GetOffer(
	ctx context.Context, offerId string,
) (*domain.OpenOffer, error) {
	offer, err := s.offerRepository.GetOffer(ctx, offerId)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}
	return offer, nil
}

func (s *offerService) ListOffers(
	ctx context.Context,
) ([]*domain.OpenOffer, error) {
	return s.offerRepository.GetAllOffers(ctx)
}

func (s *offerService) tradeFee(
	amount uint64, feeCurrency domain.FeeCurrency,
	fee func(amount uint64, payInBsq bool, bsqRate decimal.Decimal) (uint64, error),
) (uint64, error) {
	payInBsq := feeCurrency == domain.FeeCurrencyBsq
	bsqRate := decimal.Decimal{}
	if payInBsq {
		rate, ok := s.priceProvider.GetMarketPrice(bsqCurrencyCode)
		if !ok {
			return 0, ErrNoMarketPrice
		}
		// The feed quotes whole BSQ per BTC, the calculator wants the
		// token's smallest unit.
		bsqRate = rate.Shift(bsqPrecision)
	}
	return fee(amount, payInBsq, bsqRate)
}

func (s *offerService) checkFeeBalance(
	fee uint64, feeCurrency domain.FeeCurrency,
) error {
	balance, err := s.wallet.AvailableBalance(feeCurrency.String())
	if err != nil {
		return err
	}
	if balance < fee {
		return ErrInsufficientFeeCurrencyBalance
	}
	return nil
}

// checkMarginTolerance reconciles the requested margin against the
// margin realized after scaling and rounding. Deviations beyond the
// error band point at a pricing bug and are logged loudly.
func (s *offerService) checkMarginTolerance(
	req CreateOfferRequest, isCryptoPair bool,
) {
	currency := req.CounterCurrencyCode
	if isCryptoPair {
		currency = req.BaseCurrencyCode
	}
	marketPrice, ok := s.priceProvider.GetMarketPrice(currency)
	if !ok {
		return
	}
	isSell := req.Direction == domain.OfferDirectionSell
	price, err := pricing.PriceFromMargin(
		marketPrice, req.MarketPriceMargin, isSell, isCryptoPair,
	)
	if err != nil {
		return
	}
	realized, err := pricing.MarginFromPrice(
		price, marketPrice, isSell, isCryptoPair,
	)
	if err != nil {
		return
	}
	switch pricing.CheckMarginTolerance(req.MarketPriceMargin, realized) {
	case pricing.ToleranceWarn:
		log.Warnf(
			"margin deviates from realized price: requested %f, realized %f",
			req.MarketPriceMargin, realized,
		)
	case pricing.ToleranceError:
		log.Errorf(
			"margin/price reconciliation out of bounds: requested %f, realized %f",
			req.MarketPriceMargin, realized,
		)
	}
}

// offerLocks serializes mutations per offer id so a take racing a
// cancel resolves deterministically: whichever acquires the lock first
// wins, the loser observes the already committed state.
type offerLocks struct {
	mtx   sync.Mutex
	locks map[string]*sync.Mutex
}

func newOfferLocks() *offerLocks {
	return &offerLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *offerLocks) lock(offerId string) func() {
	l.mtx.Lock()
	m, ok := l.locks[offerId]
	if !ok {
		m = &sync.Mutex{}
		l.locks[offerId] = m
	}
	l.mtx.Unlock()

	m.Lock()
	return m.Unlock
}

package application

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/peertrade-network/peertrade-daemon/internal/core/domain"
	"github.com/peertrade-network/peertrade-daemon/internal/metrics"
)

// TradeService applies protocol events to trades. Events are delivered
// by the network and wallet collaborators and may arrive more than once;
// re-applying a transition already made is a no-op.
type TradeService interface {
	GetTrade(ctx context.Context, tradeId string) (*domain.Trade, error)
	ListTrades(ctx context.Context) ([]*domain.Trade, error)

	DepositPublished(ctx context.Context, tradeId, txId string) error
	DepositConfirmed(ctx context.Context, tradeId string) error
	PaymentSent(ctx context.Context, tradeId string) error
	PaymentReceived(ctx context.Context, tradeId string) error
	PayoutPublished(ctx context.Context, tradeId, txId string) error
	CompleteTrade(ctx context.Context, tradeId string) error
	WithdrawTrade(ctx context.Context, tradeId string) error
	CancelTrade(ctx context.Context, tradeId string) error
	OpenDispute(ctx context.Context, tradeId string) error
	CloseDispute(ctx context.Context, tradeId string, refund bool) error

	SwapTxPublished(ctx context.Context, tradeId, txId string) error
	SwapTxConfirmed(ctx context.Context, tradeId string) error
	FailSwap(ctx context.Context, tradeId, reason string) error

	CheckTradeTimeouts(ctx context.Context) error
}

type tradeService struct {
	tradeRepository domain.TradeRepository
	config          Config
}

// NewTradeService returns a TradeService over the given repository.
func NewTradeService(
	tradeRepository domain.TradeRepository, config Config,
) TradeService {
	return &tradeService{
		tradeRepository: tradeRepository,
		config:          config,
	}
}

func (s *tradeService) GetTrade(
	ctx context.Context, tradeId string,
) (*domain.Trade, error) {
	trade, err := s.tradeRepository.GetTrade(ctx, tradeId)
	if err != nil {
		return nil, err
	}
	if trade == nil {
		return nil, ErrTradeNotFound
	}
	return trade, nil
}

func (s *tradeService) ListTrades(
	ctx context.Context,
) ([]*domain.Trade, error) {
	return s.tradeRepository.GetAllTrades(ctx)
}

func (s *tradeService) DepositPublished(
	ctx context.Context, tradeId, txId string,
) error {
	return s.apply(ctx, tradeId, func(t *domain.Trade) (bool, error) {
		return t.DepositPublished(txId)
	})
}

func (s *tradeService) DepositConfirmed(
	ctx context.Context, tradeId string,
) error {
	confirmedAt := time.Now().Unix()
	return s.apply(ctx, tradeId, func(t *domain.Trade) (bool, error) {
		return t.DepositConfirmed(confirmedAt)
	})
}

func (s *tradeService) PaymentSent(ctx context.Context, tradeId string) error {
	return s.apply(ctx, tradeId, func(t *domain.Trade) (bool, error) {
		return t.PaymentSent()
	})
}

func (s *tradeService) PaymentReceived(
	ctx context.Context, tradeId string,
) error {
	return s.apply(ctx, tradeId, func(t *domain.Trade) (bool, error) {
		return t.PaymentReceived()
	})
}

func (s *tradeService) PayoutPublished(
	ctx context.Context, tradeId, txId string,
) error {
	return s.apply(ctx, tradeId, func(t *domain.Trade) (bool, error) {
		return t.PayoutPublished(txId)
	})
}

func (s *tradeService) CompleteTrade(
	ctx context.Context, tradeId string,
) error {
	err := s.apply(ctx, tradeId, func(t *domain.Trade) (bool, error) {
		return t.Complete()
	})
	if err == nil {
		metrics.TradesCompleted.Inc()
	}
	return err
}

func (s *tradeService) WithdrawTrade(
	ctx context.Context, tradeId string,
) error {
	return s.apply(ctx, tradeId, func(t *domain.Trade) (bool, error) {
		return t.Withdraw()
	})
}

func (s *tradeService) CancelTrade(ctx context.Context, tradeId string) error {
	return s.apply(ctx, tradeId, func(t *domain.Trade) (bool, error) {
		return t.Cancel()
	})
}

func (s *tradeService) OpenDispute(ctx context.Context, tradeId string) error {
	return s.apply(ctx, tradeId, func(t *domain.Trade) (bool, error) {
		return t.OpenDispute()
	})
}

func (s *tradeService) CloseDispute(
	ctx context.Context, tradeId string, refund bool,
) error {
	return s.apply(ctx, tradeId, func(t *domain.Trade) (bool, error) {
		return t.CloseDispute(refund)
	})
}

func (s *tradeService) SwapTxPublished(
	ctx context.Context, tradeId, txId string,
) error {
	return s.apply(ctx, tradeId, func(t *domain.Trade) (bool, error) {
		return t.SwapTxPublished(txId)
	})
}

func (s *tradeService) SwapTxConfirmed(
	ctx context.Context, tradeId string,
) error {
	err := s.apply(ctx, tradeId, func(t *domain.Trade) (bool, error) {
		return t.SwapTxConfirmed()
	})
	if err == nil {
		metrics.TradesCompleted.Inc()
	}
	return err
}

func (s *tradeService) FailSwap(
	ctx context.Context, tradeId, reason string,
) error {
	err := s.apply(ctx, tradeId, func(t *domain.Trade) (bool, error) {
		return t.SwapFailed(reason)
	})
	if err == nil {
		metrics.TradesFailed.Inc()
	}
	return err
}

// CheckTradeTimeouts sweeps all pending trades and fails those whose
// current protocol step overran the configured timeout. Escalation to
// dispute handling is left to the operator.
func (s *tradeService) CheckTradeTimeouts(ctx context.Context) error {
	trades, err := s.tradeRepository.GetPendingTrades(ctx)
	if err != nil {
		return err
	}

	now := time.Now().Unix()
	for _, trade := range trades {
		tradeId := trade.Id
		if err := s.tradeRepository.UpdateTrade(
			ctx, tradeId,
			func(t *domain.Trade) (*domain.Trade, error) {
				t.UpdatePeriodState(now)
				if timedOut, _ := t.CheckTimeout(
					now, s.config.TradeStepTimeout,
				); timedOut {
					metrics.TradesFailed.Inc()
					log.Warnf(
						"trade %s timed out in phase %s", tradeId, t.Phase,
					)
				}
				return t, nil
			},
		); err != nil {
			return err
		}
	}
	return nil
}

// apply runs a single phase transition transactionally. The trade's
// period state is refreshed on the way.
func (s *tradeService) apply(
	ctx context.Context, tradeId string,
	transition func(t *domain.Trade) (bool, error),
) error {
	return s.tradeRepository.UpdateTrade(
		ctx, tradeId,
		func(t *domain.Trade) (*domain.Trade, error) {
			if _, err := transition(t); err != nil {
				return nil, err
			}
			t.UpdatePeriodState(time.Now().Unix())
			return t, nil
		},
	)
}

package inmemory

import (
	"context"

	"github.com/peertrade-network/peertrade-daemon/internal/core/domain"
)

type tradeRepositoryImpl struct {
	store *tradeInmemoryStore
}

func newTradeRepositoryImpl(store *tradeInmemoryStore) domain.TradeRepository {
	return &tradeRepositoryImpl{store}
}

func (r tradeRepositoryImpl) AddTrade(
	_ context.Context, trade *domain.Trade,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.trades[trade.Id]; ok {
		return ErrTradeAlreadyExists
	}
	r.store.trades[trade.Id] = *trade
	return nil
}

func (r tradeRepositoryImpl) GetTrade(
	_ context.Context, tradeId string,
) (*domain.Trade, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	return r.getTrade(tradeId), nil
}

func (r tradeRepositoryImpl) GetAllTrades(
	_ context.Context,
) ([]*domain.Trade, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	trades := make([]*domain.Trade, 0, len(r.store.trades))
	for i := range r.store.trades {
		trade := r.store.trades[i]
		trades = append(trades, &trade)
	}
	return trades, nil
}

func (r tradeRepositoryImpl) GetPendingTrades(
	_ context.Context,
) ([]*domain.Trade, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	trades := make([]*domain.Trade, 0)
	for i := range r.store.trades {
		trade := r.store.trades[i]
		if !trade.IsTerminal() && trade.State == domain.TradeStateActive {
			trades = append(trades, &trade)
		}
	}
	return trades, nil
}

func (r tradeRepositoryImpl) UpdateTrade(
	_ context.Context, tradeId string,
	updateFn func(trade *domain.Trade) (*domain.Trade, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentTrade := r.getTrade(tradeId)
	if currentTrade == nil {
		return ErrTradeNotFound
	}

	updatedTrade, err := updateFn(currentTrade)
	if err != nil {
		return err
	}

	r.store.trades[tradeId] = *updatedTrade
	return nil
}

func (r tradeRepositoryImpl) getTrade(tradeId string) *domain.Trade {
	trade, ok := r.store.trades[tradeId]
	if !ok {
		return nil
	}
	return &trade
}

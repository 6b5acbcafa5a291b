package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/peertrade-network/peertrade-daemon/internal/core/domain"
)

type tradeRepositoryImpl struct {
	store *badgerhold.Store
}

func newTradeRepositoryImpl(store *badgerhold.Store) domain.TradeRepository {
	return tradeRepositoryImpl{store}
}

func (r tradeRepositoryImpl) AddTrade(
	_ context.Context, trade *domain.Trade,
) error {
	return r.store.Insert(trade.Id, *trade)
}

func (r tradeRepositoryImpl) GetTrade(
	_ context.Context, tradeId string,
) (*domain.Trade, error) {
	return r.getTrade(tradeId)
}

func (r tradeRepositoryImpl) GetAllTrades(
	_ context.Context,
) ([]*domain.Trade, error) {
	return r.findTrades(&badgerhold.Query{})
}

func (r tradeRepositoryImpl) GetPendingTrades(
	_ context.Context,
) ([]*domain.Trade, error) {
	query := badgerhold.Where("State").Eq(domain.TradeStateActive)
	trades, err := r.findTrades(query)
	if err != nil {
		return nil, err
	}

	pendingTrades := make([]*domain.Trade, 0, len(trades))
	for _, trade := range trades {
		if !trade.IsTerminal() {
			pendingTrades = append(pendingTrades, trade)
		}
	}
	return pendingTrades, nil
}

func (r tradeRepositoryImpl) UpdateTrade(
	_ context.Context, tradeId string,
	updateFn func(trade *domain.Trade) (*domain.Trade, error),
) error {
	currentTrade, err := r.getTrade(tradeId)
	if err != nil {
		return err
	}
	if currentTrade == nil {
		return ErrTradeNotFound
	}

	updatedTrade, err := updateFn(currentTrade)
	if err != nil {
		return err
	}

	return r.store.Update(tradeId, *updatedTrade)
}

func (r tradeRepositoryImpl) getTrade(tradeId string) (*domain.Trade, error) {
	var trade domain.Trade
	if err := r.store.Get(tradeId, &trade); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &trade, nil
}

func (r tradeRepositoryImpl) findTrades(
	query *badgerhold.Query,
) ([]*domain.Trade, error) {
	var trades []domain.Trade
	if err := r.store.Find(&trades, query); err != nil {
		return nil, err
	}

	list := make([]*domain.Trade, 0, len(trades))
	for i := range trades {
		list = append(list, &trades[i])
	}
	return list, nil
}

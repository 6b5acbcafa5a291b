package domain

import "context"

// TradeRepository is the abstraction for any kind of database intended
// to persist Trades.
type TradeRepository interface {
	// AddTrade persists a newly created trade.
	AddTrade(ctx context.Context, trade *Trade) error
	// GetTrade returns the trade with the given id, or nil if not found.
	GetTrade(ctx context.Context, tradeId string) (*Trade, error)
	// GetAllTrades returns all the trades stored in the repository.
	GetAllTrades(ctx context.Context) ([]*Trade, error)
	// GetPendingTrades returns all trades that did not reach a terminal
	// state yet.
	GetPendingTrades(ctx context.Context) ([]*Trade, error)
	// UpdateTrade allows to commit multiple changes to the same trade in
	// a transactional way.
	UpdateTrade(
		ctx context.Context, tradeId string,
		updateFn func(trade *Trade) (*Trade, error),
	) error
}

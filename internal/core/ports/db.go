package ports

import (
	"github.com/peertrade-network/peertrade-daemon/internal/core/domain"
)

// DbManager groups the repositories backed by a single datastore.
type DbManager interface {
	OfferRepository() domain.OfferRepository
	TradeRepository() domain.TradeRepository

	Close()
}

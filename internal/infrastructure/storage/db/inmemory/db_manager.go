package inmemory

import (
	"sync"

	"github.com/peertrade-network/peertrade-daemon/internal/core/domain"
	"github.com/peertrade-network/peertrade-daemon/internal/core/ports"
)

type offerInmemoryStore struct {
	offers map[string]domain.OpenOffer
	locker *sync.Mutex
}

type tradeInmemoryStore struct {
	trades map[string]domain.Trade
	locker *sync.Mutex
}

// DbManager holds the in-memory stores in a single data structure.
type DbManager struct {
	offerStore *offerInmemoryStore
	tradeStore *tradeInmemoryStore
}

// NewDbManager returns an empty in-memory db manager.
func NewDbManager() *DbManager {
	return &DbManager{
		offerStore: &offerInmemoryStore{
			offers: make(map[string]domain.OpenOffer),
			locker: &sync.Mutex{},
		},
		tradeStore: &tradeInmemoryStore{
			trades: make(map[string]domain.Trade),
			locker: &sync.Mutex{},
		},
	}
}

func (d *DbManager) OfferRepository() domain.OfferRepository {
	return newOfferRepositoryImpl(d.offerStore)
}

func (d *DbManager) TradeRepository() domain.TradeRepository {
	return newTradeRepositoryImpl(d.tradeStore)
}

func (d *DbManager) Close() {}

var _ ports.DbManager = (*DbManager)(nil)

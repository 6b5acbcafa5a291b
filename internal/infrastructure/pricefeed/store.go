package pricefeed

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/peertrade-network/peertrade-daemon/internal/core/ports"
)

// Store keeps the latest observed market price per currency code. It is
// the in-process cache sitting between the feed and the services that
// need a market price to resolve margins and triggers.
type Store struct {
	lock            *sync.RWMutex
	priceByCurrency map[string]decimal.Decimal
}

func NewStore() *Store {
	return &Store{
		lock:            &sync.RWMutex{},
		priceByCurrency: make(map[string]decimal.Decimal),
	}
}

func (s *Store) GetMarketPrice(currencyCode string) (decimal.Decimal, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	price, ok := s.priceByCurrency[currencyCode]
	return price, ok
}

func (s *Store) SetPrice(currencyCode string, price decimal.Decimal) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.priceByCurrency[currencyCode] = price
}

var _ ports.PriceProvider = (*Store)(nil)

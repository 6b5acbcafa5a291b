// Package wallet provides an in-process wallet backend keeping balances
// in memory. The engine only needs balance reads and a broadcast hook,
// custody stays outside; deployments with a real node swap this for an
// adapter talking to it.
package wallet

import (
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/peertrade-network/peertrade-daemon/internal/core/ports"
)

type Service struct {
	lock              *sync.RWMutex
	balanceByCurrency map[string]uint64
}

// NewService returns a wallet seeded with the given balances, keyed by
// currency code in the currency's smallest unit.
func NewService(initialBalances map[string]uint64) *Service {
	balances := make(map[string]uint64)
	for code, balance := range initialBalances {
		balances[code] = balance
	}
	return &Service{
		lock:              &sync.RWMutex{},
		balanceByCurrency: balances,
	}
}

func (s *Service) AvailableBalance(currencyCode string) (uint64, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.balanceByCurrency[currencyCode], nil
}

// Broadcast computes the txid of the given raw transaction. The ledger
// wallet does not relay to any network.
func (s *Service) Broadcast(txHex string) (string, error) {
	rawTx, err := hex.DecodeString(txHex)
	if err != nil {
		return "", fmt.Errorf("invalid raw transaction: %s", err)
	}
	if len(rawTx) <= 0 {
		return "", fmt.Errorf("empty raw transaction")
	}

	txid := chainhash.DoubleHashH(rawTx)
	return txid.String(), nil
}

// Credit adds funds to the given currency's balance.
func (s *Service) Credit(currencyCode string, amount uint64) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.balanceByCurrency[currencyCode] += amount
}

// Debit removes funds from the given currency's balance, failing when
// it would go negative.
func (s *Service) Debit(currencyCode string, amount uint64) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	balance := s.balanceByCurrency[currencyCode]
	if balance < amount {
		return fmt.Errorf("insufficient %s balance", currencyCode)
	}
	s.balanceByCurrency[currencyCode] = balance - amount
	return nil
}

var _ ports.Wallet = (*Service)(nil)

package dbbadger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"

	"github.com/peertrade-network/peertrade-daemon/internal/core/domain"
	"github.com/peertrade-network/peertrade-daemon/internal/core/ports"
)

// DbManager holds the badgerhold stores in a single data structure.
type DbManager struct {
	offerStore *badgerhold.Store
	tradeStore *badgerhold.Store
}

// NewDbManager opens (or creates if not exists) the badger stores on
// disk. It expects a base data dir and an optional logger. Offers and
// trades get a dedicated directory each.
func NewDbManager(baseDbDir string, logger badger.Logger) (*DbManager, error) {
	offerDb, err := createDb(filepath.Join(baseDbDir, "offers"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening offers db: %w", err)
	}

	tradeDb, err := createDb(filepath.Join(baseDbDir, "trades"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening trades db: %w", err)
	}

	return &DbManager{
		offerStore: offerDb,
		tradeStore: tradeDb,
	}, nil
}

func (d *DbManager) OfferRepository() domain.OfferRepository {
	return newOfferRepositoryImpl(d.offerStore)
}

func (d *DbManager) TradeRepository() domain.TradeRepository {
	return newTradeRepositoryImpl(d.tradeStore)
}

func (d *DbManager) Close() {
	if err := d.offerStore.Close(); err != nil {
		log.WithError(err).Warn("closing offers db")
	}
	if err := d.tradeStore.Close(); err != nil {
		log.WithError(err).Warn("closing trades db")
	}
}

var _ ports.DbManager = (*DbManager)(nil)

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	return badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}

// JSONEncode is a custom JSON based encoder for badger.
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer
	if err := json.NewEncoder(&buff).Encode(value); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger.
func JSONDecode(data []byte, value interface{}) error {
	return json.NewDecoder(bytes.NewReader(data)).Decode(value)
}

package krakenfeeder

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/peertrade-network/peertrade-daemon/internal/core/ports"
)

const (
	// KrakenWebSocketURL is the base url to open a connection with kraken.
	// This can be tweaked if in the future it might change, even if unlikely.
	KrakenWebSocketURL = "ws.kraken.com"
)

type service struct {
	conn        *websocket.Conn
	writeTicker *time.Ticker

	currencyByTickerMtx *sync.RWMutex
	currencyByTicker    map[string]string

	latestUpdatesMtx *sync.RWMutex
	latestUpdates    map[string]ports.PriceUpdate

	chLock     *sync.Mutex
	updateChan chan ports.PriceUpdate

	quitChan chan struct{}
}

// NewService returns a price feeder streaming from the kraken websocket
// API. It subscribes the ticker channel for every given currency code,
// expressed against BTC (eg. "USD" maps to the XBT/USD pair), and
// batches updates on the returned channel at the given interval.
func NewService(
	currencyCodes []string, interval time.Duration,
) (ports.PriceFeeder, error) {
	if len(currencyCodes) <= 0 {
		return nil, fmt.Errorf("at least one currency code is required")
	}

	currencyByTicker := make(map[string]string)
	for _, code := range currencyCodes {
		currencyByTicker[tickerForCurrency(code)] = code
	}

	conn, err := connect()
	if err != nil {
		return nil, err
	}

	return &service{
		conn:                conn,
		writeTicker:         time.NewTicker(interval),
		currencyByTickerMtx: &sync.RWMutex{},
		currencyByTicker:    currencyByTicker,
		latestUpdatesMtx:    &sync.RWMutex{},
		latestUpdates:       make(map[string]ports.PriceUpdate),
		chLock:              &sync.Mutex{},
		updateChan:          make(chan ports.PriceUpdate),
		quitChan:            make(chan struct{}, 1),
	}, nil
}

func (s *service) Start(ctx context.Context) (chan ports.PriceUpdate, error) {
	if err := s.subscribe(s.tickers()); err != nil {
		return nil, err
	}

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	go func() {
		mustReconnect, err := s.run()
		for mustReconnect {
			log.WithError(err).Warn(
				"price feed connection dropped unexpectedly, reconnecting",
			)

			conn, err := connect()
			if err != nil {
				log.WithError(err).Error("price feed reconnection failed")
				return
			}
			s.conn = conn

			if err := s.subscribe(s.tickers()); err != nil {
				log.WithError(err).Error("price feed resubscription failed")
				return
			}

			log.Debug("price feed connection and subscriptions re-established")
			mustReconnect, err = s.run()
		}
	}()

	return s.updateChan, nil
}

func (s *service) Stop() {
	s.quitChan <- struct{}{}
}

func (s *service) run() (mustReconnect bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			mustReconnect = true
		}
	}()

	go func() {
		for range s.writeTicker.C {
			s.writeToUpdateChan()
		}
	}()

	for {
		select {
		case <-s.quitChan:
			s.writeTicker.Stop()
			s.closeChannels()
			err = s.conn.Close()
			return false, err
		default:
			// Referred to:
			//
			// https://support.kraken.com/hc/en-us/articles/360044504011-WebSocket-API-unexpected-disconnections-from-market-data-feeds
			//
			// Sometimes it can happen that the line below panics instead of
			// returning an UnexpectedCloseError. Because of this it's
			// mandatory here to recover a potential panic to signal that the
			// connection must be re-established.
			// Even in case the line below returns an UnexpectedCloseError,
			// this is used to panic so the deferred recover function is reused
			// to still signal the need for a reconnection with kraken websocket.
			_, message, err := s.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(
					err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
				) {
					panic(err)
				}
			}

			update := s.parseUpdate(message)
			if update == nil {
				continue
			}

			s.writeUpdate(*update)
		}
	}
}

func (s *service) writeToUpdateChan() {
	s.chLock.Lock()
	defer s.chLock.Unlock()

	for _, update := range s.readUpdates() {
		s.updateChan <- update
	}
}

func (s *service) closeChannels() {
	s.chLock.Lock()
	defer s.chLock.Unlock()

	close(s.updateChan)
	close(s.quitChan)
}

func (s *service) parseUpdate(msg []byte) *ports.PriceUpdate {
	var i []interface{}
	if err := json.Unmarshal(msg, &i); err != nil {
		return nil
	}
	if len(i) != 4 {
		return nil
	}

	ticker, ok := i[3].(string)
	if !ok {
		return nil
	}

	currencyCode, ok := s.getCurrencyByTicker(ticker)
	if !ok {
		return nil
	}

	ii, ok := i[1].(map[string]interface{})
	if !ok {
		return nil
	}

	iii, ok := ii["c"].([]interface{})
	if !ok {
		return nil
	}

	if len(iii) < 1 {
		return nil
	}
	priceStr, ok := iii[0].(string)
	if !ok {
		return nil
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil
	}

	return &ports.PriceUpdate{
		CurrencyCode: currencyCode,
		Price:        price,
	}
}

func (s *service) subscribe(tickers []string) error {
	msg := map[string]interface{}{
		"event": "subscribe",
		"pair":  tickers,
		"subscription": map[string]string{
			"name": "ticker",
		},
	}

	buf, _ := json.Marshal(msg)
	if err := s.conn.WriteMessage(websocket.TextMessage, buf); err != nil {
		return fmt.Errorf("cannot subscribe to given tickers: %s", err)
	}

	return nil
}

func connect() (*websocket.Conn, error) {
	url := fmt.Sprintf("wss://%s", KrakenWebSocketURL)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}

	return conn, nil
}

func (s *service) tickers() []string {
	s.currencyByTickerMtx.RLock()
	defer s.currencyByTickerMtx.RUnlock()

	tickers := make([]string, 0, len(s.currencyByTicker))
	for ticker := range s.currencyByTicker {
		tickers = append(tickers, ticker)
	}
	return tickers
}

func (s *service) getCurrencyByTicker(ticker string) (string, bool) {
	s.currencyByTickerMtx.RLock()
	defer s.currencyByTickerMtx.RUnlock()

	code, ok := s.currencyByTicker[ticker]
	return code, ok
}

func (s *service) readUpdates() []ports.PriceUpdate {
	s.latestUpdatesMtx.RLock()
	defer s.latestUpdatesMtx.RUnlock()

	updates := make([]ports.PriceUpdate, 0, len(s.latestUpdates))
	for _, update := range s.latestUpdates {
		updates = append(updates, update)
	}
	return updates
}

func (s *service) writeUpdate(update ports.PriceUpdate) {
	s.latestUpdatesMtx.Lock()
	defer s.latestUpdatesMtx.Unlock()

	if update.CurrencyCode == "" {
		return
	}

	s.latestUpdates[update.CurrencyCode] = update
}

// tickerForCurrency maps a currency code to the kraken pair ticker
// against bitcoin, which kraken names XBT.
func tickerForCurrency(currencyCode string) string {
	return fmt.Sprintf("XBT/%s", currencyCode)
}

package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/peertrade-network/peertrade-daemon/internal/core/application"
	"github.com/peertrade-network/peertrade-daemon/internal/core/domain"
	"github.com/peertrade-network/peertrade-daemon/internal/infrastructure/pricefeed"
	"github.com/peertrade-network/peertrade-daemon/internal/infrastructure/storage/db/inmemory"
	"github.com/peertrade-network/peertrade-daemon/internal/infrastructure/wallet"
	"github.com/peertrade-network/peertrade-daemon/internal/interfaces/web"
	"github.com/peertrade-network/peertrade-daemon/pkg/fees"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dbManager := inmemory.NewDbManager()
	priceStore := pricefeed.NewStore()
	priceStore.SetPrice("USD", decimal.NewFromInt(40_000))
	walletSvc := wallet.NewService(map[string]uint64{"BTC": 100_000_000})

	config := application.Config{
		Limits: application.Limits{
			MinTradeAmount:        10_000,
			MaxTradeAmount:        200_000_000,
			MinSecurityDepositPct: 0.05,
			MaxSecurityDepositPct: 0.5,
		},
		MaxTradePeriod:   8 * 24 * time.Hour,
		TradeStepTimeout: 24 * time.Hour,
	}

	offerSvc := application.NewOfferService(
		dbManager.OfferRepository(), dbManager.TradeRepository(),
		priceStore, walletSvc,
		fees.NewCalculator(fees.DefaultConfig()),
		config,
	)
	tradeSvc := application.NewTradeService(dbManager.TradeRepository(), config)

	webSvc := web.NewService(":0", offerSvc, tradeSvc)

	// Reuse the wired router without binding a port.
	server := httptest.NewServer(webSvc.Handler())
	t.Cleanup(server.Close)
	t.Cleanup(func() { webSvc.Stop(context.Background()) })
	return server
}

func postJSON(
	t *testing.T, server *httptest.Server, urlPath string, body interface{},
) (*http.Response, json.RawMessage) {
	t.Helper()

	buf, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(
		server.URL+urlPath, "application/json", bytes.NewReader(buf),
	)
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	return resp, raw
}

func createTestOffer(
	t *testing.T, server *httptest.Server,
) map[string]interface{} {
	t.Helper()

	resp, raw := postJSON(t, server, "/v1/offers", map[string]interface{}{
		"direction":           "SELL",
		"baseCurrencyCode":    "BTC",
		"counterCurrencyCode": "USD",
		"amount":              10_000_000,
		"minAmount":           1_000_000,
		"useMarketBasedPrice": true,
		"marketPriceMargin":   0.05,
		"paymentAccountId":    "maker-account",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var offer map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &offer))
	return offer
}

func offerId(t *testing.T, offer map[string]interface{}) string {
	t.Helper()

	inner, ok := offer["Offer"].(map[string]interface{})
	require.True(t, ok)
	id, ok := inner["Id"].(string)
	require.True(t, ok)
	return id
}

func TestOfferEndpoints(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	offer := createTestOffer(t, server)
	id := offerId(t, offer)

	t.Run("get_offer", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/v1/offers/" + id)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unknown_offer_is_404", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/v1/offers/missing")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid_edit_is_400", func(t *testing.T) {
		resp, _ := postJSON(
			t, server, fmt.Sprintf("/v1/offers/%s/edit", id),
			map[string]interface{}{
				"fixedPrice":   "40000",
				"editedFields": []string{"fixedPrice"},
			},
		)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("take_creates_a_trade", func(t *testing.T) {
		resp, raw := postJSON(
			t, server, fmt.Sprintf("/v1/offers/%s/take", id),
			map[string]interface{}{
				"amount":                5_000_000,
				"takerPaymentAccountId": "taker-account",
			},
		)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var trade domain.Trade
		require.NoError(t, json.Unmarshal(raw, &trade))
		require.Equal(t, id, trade.OfferId)

		t.Run("trade_events", func(t *testing.T) {
			resp, _ := postJSON(
				t, server, fmt.Sprintf("/v1/trades/%s/events", trade.Id),
				map[string]interface{}{
					"event": "depositPublished", "txId": "deposit-tx",
				},
			)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			// Skipping ahead is a conflict.
			resp, _ = postJSON(
				t, server, fmt.Sprintf("/v1/trades/%s/events", trade.Id),
				map[string]interface{}{"event": "paymentSent"},
			)
			require.Equal(t, http.StatusConflict, resp.StatusCode)
		})

		t.Run("cancel_after_take_is_409", func(t *testing.T) {
			resp, _ := postJSON(
				t, server, fmt.Sprintf("/v1/offers/%s/cancel", id),
				struct{}{},
			)
			require.Equal(t, http.StatusConflict, resp.StatusCode)
		})
	})
}

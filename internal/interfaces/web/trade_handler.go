package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/peertrade-network/peertrade-daemon/internal/core/application"
)

type tradeHandler struct {
	tradeSvc application.TradeService
}

func (h *tradeHandler) listTrades(w http.ResponseWriter, r *http.Request) {
	trades, err := h.tradeSvc.ListTrades(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trades)
}

func (h *tradeHandler) getTrade(w http.ResponseWriter, r *http.Request) {
	trade, err := h.tradeSvc.GetTrade(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trade)
}

// applyEvent dispatches a protocol event to the trade state machine.
func (h *tradeHandler) applyEvent(w http.ResponseWriter, r *http.Request) {
	var req tradeEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ctx, tradeId := r.Context(), mux.Vars(r)["id"]

	var err error
	switch req.Event {
	case "depositPublished":
		err = h.tradeSvc.DepositPublished(ctx, tradeId, req.TxId)
	case "depositConfirmed":
		err = h.tradeSvc.DepositConfirmed(ctx, tradeId)
	case "paymentSent":
		err = h.tradeSvc.PaymentSent(ctx, tradeId)
	case "paymentReceived":
		err = h.tradeSvc.PaymentReceived(ctx, tradeId)
	case "payoutPublished":
		err = h.tradeSvc.PayoutPublished(ctx, tradeId, req.TxId)
	case "complete":
		err = h.tradeSvc.CompleteTrade(ctx, tradeId)
	case "withdraw":
		err = h.tradeSvc.WithdrawTrade(ctx, tradeId)
	case "cancel":
		err = h.tradeSvc.CancelTrade(ctx, tradeId)
	case "openDispute":
		err = h.tradeSvc.OpenDispute(ctx, tradeId)
	case "closeDispute":
		err = h.tradeSvc.CloseDispute(ctx, tradeId, req.Refund)
	case "swapTxPublished":
		err = h.tradeSvc.SwapTxPublished(ctx, tradeId, req.TxId)
	case "swapTxConfirmed":
		err = h.tradeSvc.SwapTxConfirmed(ctx, tradeId)
	case "failSwap":
		err = h.tradeSvc.FailSwap(ctx, tradeId, req.Reason)
	default:
		writeError(
			w, http.StatusBadRequest,
			fmt.Errorf("unknown trade event %s", req.Event),
		)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	trade, err := h.tradeSvc.GetTrade(ctx, tradeId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trade)
}

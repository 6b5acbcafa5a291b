package web

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/peertrade-network/peertrade-daemon/internal/core/application"
	"github.com/peertrade-network/peertrade-daemon/internal/core/domain"
	"github.com/peertrade-network/peertrade-daemon/pkg/pricing"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Warn("error while writing response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeServiceError translates service errors into HTTP statuses:
// missing records map to 404, state conflicts to 409, everything the
// caller got wrong to 400 and the rest to 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, application.ErrOfferNotFound),
		errors.Is(err, application.ErrTradeNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrOfferNoLongerAvailable),
		errors.Is(err, domain.ErrOfferNotAvailable),
		errors.Is(err, domain.ErrOfferNotDeactivated),
		errors.Is(err, domain.ErrOfferNotPending),
		errors.Is(err, domain.ErrOfferImmutable),
		errors.Is(err, domain.ErrTradeUnexpectedPhase),
		errors.Is(err, domain.ErrTradeNotCancelable),
		errors.Is(err, domain.ErrTradeNotCompleted),
		errors.Is(err, domain.ErrTradeTerminal),
		errors.Is(err, domain.ErrTradeWrongProtocol):
		writeError(w, http.StatusConflict, err)
	case isBadRequest(err):
		writeError(w, http.StatusBadRequest, err)
	default:
		log.WithError(err).Error("unhandled service error")
		writeError(w, http.StatusInternalServerError, err)
	}
}

func isBadRequest(err error) bool {
	for _, target := range []error{
		application.ErrAmountTooLarge,
		application.ErrAmountBelowMinimum,
		application.ErrAmountOutOfRange,
		application.ErrDepositOutOfBounds,
		application.ErrInvalidEditMask,
		application.ErrCannotSetFixedPriceOnMarketOffer,
		application.ErrCannotSetMarginOnFixedOffer,
		application.ErrCannotSetTriggerOnFixedOffer,
		application.ErrInsufficientFeeCurrencyBalance,
		application.ErrNoMarketPrice,
		domain.ErrOfferInvalidCurrencyPair,
		domain.ErrOfferMinAmountGreaterThanAmount,
		domain.ErrOfferAmbiguousPricingMode,
		domain.ErrOfferMissingPrice,
		domain.ErrOfferNegativeTriggerPrice,
		domain.ErrOfferTriggerPriceOnFixedOffer,
		domain.ErrOfferSwapMustUseFixedPrice,
		pricing.ErrInvalidPrice,
		pricing.ErrInvalidMarketPrice,
		pricing.ErrNegativeTriggerPrice,
		pricing.ErrTriggerPriceOnFixedOffer,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

package web

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/peertrade-network/peertrade-daemon/internal/core/application"
)

type offerHandler struct {
	offerSvc application.OfferService
}

func (h *offerHandler) createOffer(w http.ResponseWriter, r *http.Request) {
	var req createOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	domainReq, err := req.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	offer, err := h.offerSvc.CreateOffer(r.Context(), domainReq)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, offer)
}

func (h *offerHandler) listOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.offerSvc.ListOffers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offers)
}

func (h *offerHandler) getOffer(w http.ResponseWriter, r *http.Request) {
	offer, err := h.offerSvc.GetOffer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

func (h *offerHandler) editOffer(w http.ResponseWriter, r *http.Request) {
	var req editOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	domainReq, err := req.toDomain(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	offer, err := h.offerSvc.EditOffer(r.Context(), domainReq)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

func (h *offerHandler) cancelOffer(w http.ResponseWriter, r *http.Request) {
	if err := h.offerSvc.CancelOffer(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (h *offerHandler) activateOffer(w http.ResponseWriter, r *http.Request) {
	offer, err := h.offerSvc.ActivateOffer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

func (h *offerHandler) deactivateOffer(w http.ResponseWriter, r *http.Request) {
	offer, err := h.offerSvc.DeactivateOffer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

func (h *offerHandler) takeOffer(w http.ResponseWriter, r *http.Request) {
	var req takeOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	domainReq, err := req.toDomain(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	trade, err := h.offerSvc.TakeOffer(r.Context(), domainReq)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trade)
}

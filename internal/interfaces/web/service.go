// Package web exposes the offer and trade services over a JSON/HTTP
// operator interface.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/peertrade-network/peertrade-daemon/internal/core/application"
)

type Service struct {
	server *http.Server

	offerHandler *offerHandler
	tradeHandler *tradeHandler
}

func NewService(
	addr string,
	offerSvc application.OfferService, tradeSvc application.TradeService,
) *Service {
	svc := &Service{
		offerHandler: &offerHandler{offerSvc},
		tradeHandler: &tradeHandler{tradeSvc},
	}

	router := mux.NewRouter()
	v1 := router.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/offers", svc.offerHandler.createOffer).Methods(http.MethodPost)
	v1.HandleFunc("/offers", svc.offerHandler.listOffers).Methods(http.MethodGet)
	v1.HandleFunc("/offers/{id}", svc.offerHandler.getOffer).Methods(http.MethodGet)
	v1.HandleFunc("/offers/{id}/edit", svc.offerHandler.editOffer).Methods(http.MethodPost)
	v1.HandleFunc("/offers/{id}/cancel", svc.offerHandler.cancelOffer).Methods(http.MethodPost)
	v1.HandleFunc("/offers/{id}/activate", svc.offerHandler.activateOffer).Methods(http.MethodPost)
	v1.HandleFunc("/offers/{id}/deactivate", svc.offerHandler.deactivateOffer).Methods(http.MethodPost)
	v1.HandleFunc("/offers/{id}/take", svc.offerHandler.takeOffer).Methods(http.MethodPost)

	v1.HandleFunc("/trades", svc.tradeHandler.listTrades).Methods(http.MethodGet)
	v1.HandleFunc("/trades/{id}", svc.tradeHandler.getTrade).Methods(http.MethodGet)
	v1.HandleFunc("/trades/{id}/events", svc.tradeHandler.applyEvent).Methods(http.MethodPost)

	svc.server = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return svc
}

// Handler returns the wired router, mainly to mount it on a test server.
func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

// Start serves the interface until Stop is called. Blocking.
func (s *Service) Start() error {
	log.Infof("operator interface is listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

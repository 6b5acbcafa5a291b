// Package metrics exposes the engine's lifecycle counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OffersCreated counts offers that finished preparation and were
	// published.
	OffersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "peertrade",
		Name:      "offers_created_total",
		Help:      "Number of offers created and published",
	})
	// OffersCanceled counts canceled offers, taken offers excluded.
	OffersCanceled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "peertrade",
		Name:      "offers_canceled_total",
		Help:      "Number of offers canceled by the maker",
	})
	// OffersTaken counts offers consumed by a taker.
	OffersTaken = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "peertrade",
		Name:      "offers_taken_total",
		Help:      "Number of offers taken",
	})
	// OffersTriggered counts market-priced offers auto-deactivated by
	// their trigger price.
	OffersTriggered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "peertrade",
		Name:      "offers_triggered_total",
		Help:      "Number of offers deactivated by a trigger price",
	})
	// TradesCompleted counts trades that reached COMPLETED.
	TradesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "peertrade",
		Name:      "trades_completed_total",
		Help:      "Number of completed trades",
	})
	// TradesFailed counts trades that failed or timed out.
	TradesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "peertrade",
		Name:      "trades_failed_total",
		Help:      "Number of failed trades",
	})
)

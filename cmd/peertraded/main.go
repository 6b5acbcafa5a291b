package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/peertrade-network/peertrade-daemon/config"
	"github.com/peertrade-network/peertrade-daemon/internal/core/application"
	"github.com/peertrade-network/peertrade-daemon/internal/core/ports"
	"github.com/peertrade-network/peertrade-daemon/internal/infrastructure/pricefeed"
	krakenfeeder "github.com/peertrade-network/peertrade-daemon/internal/infrastructure/pricefeed/kraken"
	dbbadger "github.com/peertrade-network/peertrade-daemon/internal/infrastructure/storage/db/badger"
	"github.com/peertrade-network/peertrade-daemon/internal/infrastructure/storage/db/inmemory"
	"github.com/peertrade-network/peertrade-daemon/internal/infrastructure/wallet"
	"github.com/peertrade-network/peertrade-daemon/internal/interfaces/web"
	"github.com/peertrade-network/peertrade-daemon/pkg/fees"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	dbManager, err := openDb()
	if err != nil {
		log.WithError(err).Fatal("error while opening db")
	}
	defer dbManager.Close()

	priceStore := pricefeed.NewStore()
	walletSvc := wallet.NewService(map[string]uint64{
		"BTC": config.GetUint64(config.WalletBtcBalanceKey),
		"BSQ": config.GetUint64(config.WalletBsqBalanceKey),
	})
	feeCalculator := fees.NewCalculator(config.GetFeesConfig())
	svcConfig := config.GetServiceConfig()

	offerRepository := dbManager.OfferRepository()
	tradeRepository := dbManager.TradeRepository()

	offerSvc := application.NewOfferService(
		offerRepository, tradeRepository,
		priceStore, walletSvc, feeCalculator, svcConfig,
	)
	tradeSvc := application.NewTradeService(tradeRepository, svcConfig)
	triggerSvc := application.NewTriggerService(offerRepository)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if !config.GetBool(config.NoPriceFeedKey) {
		if err := startPriceFeed(ctx, priceStore, triggerSvc); err != nil {
			log.WithError(err).Fatal("error while starting price feed")
		}
	}

	webSvc := web.NewService(
		fmt.Sprintf(":%d", config.GetInt(config.OperatorPortKey)),
		offerSvc, tradeSvc,
	)
	go func() {
		if err := webSvc.Start(); err != nil {
			log.WithError(err).Fatal("error while serving operator interface")
		}
	}()

	go sweepTimeouts(ctx, tradeSvc)
	go serveMetrics()

	log.Info("daemon running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(), 10*time.Second,
	)
	defer shutdownCancel()
	if err := webSvc.Stop(shutdownCtx); err != nil {
		log.WithError(err).Warn("error while stopping operator interface")
	}
}

func openDb() (ports.DbManager, error) {
	switch config.GetString(config.DBTypeKey) {
	case config.DBInMemory:
		return inmemory.NewDbManager(), nil
	default:
		return dbbadger.NewDbManager(config.GetDbDir(), nil)
	}
}

func startPriceFeed(
	ctx context.Context,
	priceStore *pricefeed.Store, triggerSvc *application.TriggerService,
) error {
	feeder, err := krakenfeeder.NewService(
		config.GetStringSlice(config.PriceFeedCurrenciesKey),
		config.GetDuration(config.PriceFeedIntervalKey),
	)
	if err != nil {
		return err
	}

	updateChan, err := feeder.Start(ctx)
	if err != nil {
		return err
	}

	go func() {
		for update := range updateChan {
			priceStore.SetPrice(update.CurrencyCode, update.Price)
			if err := triggerSvc.OnPriceUpdate(ctx, update); err != nil {
				log.WithError(err).Warn("error while checking trigger prices")
			}
		}
	}()
	return nil
}

func sweepTimeouts(ctx context.Context, tradeSvc application.TradeService) {
	interval := config.GetDuration(config.TimeoutCheckIntervalKey)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := tradeSvc.CheckTradeTimeouts(ctx); err != nil {
				log.WithError(err).Warn("error while sweeping trade timeouts")
			}
		}
	}
}

func serveMetrics() {
	addr := fmt.Sprintf(":%d", config.GetInt(config.MetricsPortKey))
	http.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.WithError(err).Error("metrics listener stopped")
	}
}

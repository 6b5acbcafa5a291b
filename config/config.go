package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"

	"github.com/peertrade-network/peertrade-daemon/internal/core/application"
	"github.com/peertrade-network/peertrade-daemon/pkg/fees"
)

const (
	// DatadirKey is the local data directory to store the internal state of daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// MinTradeAmountKey is the smallest tradable amount in satoshis, for both offer amount and min-amount
	MinTradeAmountKey = "MIN_TRADE_AMOUNT"
	// MaxTradeAmountKey is the largest tradable amount in satoshis
	MaxTradeAmountKey = "MAX_TRADE_AMOUNT"
	// MinSecurityDepositPctKey is the lowest buyer security deposit percentage a maker can pick
	MinSecurityDepositPctKey = "MIN_SECURITY_DEPOSIT_PCT"
	// MaxSecurityDepositPctKey is the highest buyer security deposit percentage a maker can pick
	MaxSecurityDepositPctKey = "MAX_SECURITY_DEPOSIT_PCT"
	// MakerFeePctKey is the maker trade fee as a fraction of the trade amount
	MakerFeePctKey = "MAKER_FEE_PCT"
	// TakerFeePctKey is the taker trade fee as a fraction of the trade amount
	TakerFeePctKey = "TAKER_FEE_PCT"
	// MinMakerFeeKey is the maker fee floor in satoshis
	MinMakerFeeKey = "MIN_MAKER_FEE"
	// MinTakerFeeKey is the taker fee floor in satoshis
	MinTakerFeeKey = "MIN_TAKER_FEE"
	// BsqFeeDiscountPctKey is the discount applied to fees paid by burning BSQ
	BsqFeeDiscountPctKey = "BSQ_FEE_DISCOUNT_PCT"
	// DefaultBuyerSecurityDepositPctKey is used when a maker does not pick a deposit percentage
	DefaultBuyerSecurityDepositPctKey = "DEFAULT_BUYER_SECURITY_DEPOSIT_PCT"
	// MaxTradePeriodKey is the duration a trade may stay open before the period elapses
	MaxTradePeriodKey = "MAX_TRADE_PERIOD"
	// TradeStepTimeoutKey is the duration a single protocol step may take before the trade is failed
	TradeStepTimeoutKey = "TRADE_STEP_TIMEOUT"
	// TimeoutCheckIntervalKey defines how often pending trades are swept for overrun steps
	TimeoutCheckIntervalKey = "TIMEOUT_CHECK_INTERVAL"
	// PriceFeedCurrenciesKey is the list of currency codes to subscribe market prices for
	PriceFeedCurrenciesKey = "PRICE_FEED_CURRENCIES"
	// PriceFeedIntervalKey is the pace at which batched price updates are delivered
	PriceFeedIntervalKey = "PRICE_FEED_INTERVAL"
	// NoPriceFeedKey is used to start the daemon without connecting to an external price feed
	NoPriceFeedKey = "NO_PRICE_FEED"
	// OperatorPortKey is the port where the JSON/HTTP operator interface listens on
	OperatorPortKey = "OPERATOR_PORT"
	// MetricsPortKey is the port where prometheus metrics are exposed on
	MetricsPortKey = "METRICS_PORT"
	// WalletBtcBalanceKey seeds the in-process wallet's BTC balance in satoshis
	WalletBtcBalanceKey = "WALLET_BTC_BALANCE"
	// WalletBsqBalanceKey seeds the in-process wallet's BSQ balance in the token's smallest unit
	WalletBsqBalanceKey = "WALLET_BSQ_BALANCE"

	DBBadger   = "badger"
	DBInMemory = "inmemory"

	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("peertrade-daemon", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("PEERTRADE")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DBTypeKey, DBBadger)
	vip.SetDefault(MinTradeAmountKey, 10_000)
	vip.SetDefault(MaxTradeAmountKey, 200_000_000)
	vip.SetDefault(MinSecurityDepositPctKey, 0.05)
	vip.SetDefault(MaxSecurityDepositPctKey, 0.5)
	vip.SetDefault(MakerFeePctKey, 0.001)
	vip.SetDefault(TakerFeePctKey, 0.007)
	vip.SetDefault(MinMakerFeeKey, 5000)
	vip.SetDefault(MinTakerFeeKey, 5000)
	vip.SetDefault(BsqFeeDiscountPctKey, 0.5)
	vip.SetDefault(DefaultBuyerSecurityDepositPctKey, 0.15)
	vip.SetDefault(MaxTradePeriodKey, 8*24*time.Hour)
	vip.SetDefault(TradeStepTimeoutKey, 24*time.Hour)
	vip.SetDefault(TimeoutCheckIntervalKey, time.Minute)
	vip.SetDefault(PriceFeedCurrenciesKey, []string{"USD", "EUR"})
	vip.SetDefault(PriceFeedIntervalKey, 5*time.Second)
	vip.SetDefault(NoPriceFeedKey, false)
	vip.SetDefault(OperatorPortKey, 9000)
	vip.SetDefault(MetricsPortKey, 9092)
	vip.SetDefault(WalletBtcBalanceKey, 100_000_000)
	vip.SetDefault(WalletBsqBalanceKey, 1_000_000)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetUint64(key string) uint64 {
	return vip.GetUint64(key)
}

func GetFloat(key string) float64 {
	return vip.GetFloat64(key)
}

func GetStringSlice(key string) []string {
	return vip.GetStringSlice(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

// GetFeesConfig assembles the fee schedule from the environment.
func GetFeesConfig() fees.Config {
	cfg := fees.DefaultConfig()
	cfg.MakerFeePct = GetFloat(MakerFeePctKey)
	cfg.TakerFeePct = GetFloat(TakerFeePctKey)
	cfg.MinMakerFeeBtc = btcutil.Amount(GetInt(MinMakerFeeKey))
	cfg.MinTakerFeeBtc = btcutil.Amount(GetInt(MinTakerFeeKey))
	cfg.BsqFeeDiscountPct = GetFloat(BsqFeeDiscountPctKey)
	cfg.DefaultBuyerSecurityDepositPct = GetFloat(DefaultBuyerSecurityDepositPctKey)
	cfg.MaxSecurityDepositPct = GetFloat(MaxSecurityDepositPctKey)
	return cfg
}

// GetServiceConfig assembles the offer/trade service config from the
// environment.
func GetServiceConfig() application.Config {
	return application.Config{
		Limits: application.Limits{
			MinTradeAmount:        GetUint64(MinTradeAmountKey),
			MaxTradeAmount:        GetUint64(MaxTradeAmountKey),
			MinSecurityDepositPct: GetFloat(MinSecurityDepositPctKey),
			MaxSecurityDepositPct: GetFloat(MaxSecurityDepositPctKey),
		},
		MaxTradePeriod:   GetDuration(MaxTradePeriodKey),
		TradeStepTimeout: GetDuration(TradeStepTimeoutKey),
	}
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	if dbType := GetString(DBTypeKey); dbType != DBBadger && dbType != DBInMemory {
		return fmt.Errorf(
			"%s must be either %s or %s", DBTypeKey, DBBadger, DBInMemory,
		)
	}

	minAmount, maxAmount := GetUint64(MinTradeAmountKey), GetUint64(MaxTradeAmountKey)
	if minAmount <= 0 || minAmount >= maxAmount {
		return fmt.Errorf(
			"%s must be positive and lower than %s",
			MinTradeAmountKey, MaxTradeAmountKey,
		)
	}

	minPct, maxPct := GetFloat(MinSecurityDepositPctKey), GetFloat(MaxSecurityDepositPctKey)
	if minPct <= 0 || minPct >= maxPct || maxPct > 1 {
		return fmt.Errorf(
			"%s and %s must define a valid percentage range",
			MinSecurityDepositPctKey, MaxSecurityDepositPctKey,
		)
	}

	if GetDuration(TradeStepTimeoutKey) > GetDuration(MaxTradePeriodKey) {
		return fmt.Errorf(
			"%s must not exceed %s", TradeStepTimeoutKey, MaxTradePeriodKey,
		)
	}

	return nil
}

func initDatadir() error {
	return makeDirectoryIfNotExists(filepath.Join(GetDatadir(), DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

// Package fees computes trade fees, mining fee estimates and bounded
// security deposits. Amounts are satoshi denominated; BSQ amounts use
// the token's smallest unit.
package fees

import (
	"math/big"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/shopspring/decimal"
)

// Role distinguishes the two trade parties for deposit bounds.
type Role int

const (
	RoleBuyer Role = iota
	RoleSeller
)

// Config carries the fee and deposit parameters. Percentages are
// fractions (0.001 = 0.1%).
type Config struct {
	MakerFeePct    float64
	TakerFeePct    float64
	MinMakerFeeBtc btcutil.Amount
	MinTakerFeeBtc btcutil.Amount
	// BsqFeeDiscountPct is the discount applied when a fee is paid by
	// burning BSQ instead of BTC.
	BsqFeeDiscountPct float64
	MinMakerFeeBsq    uint64
	MinTakerFeeBsq    uint64

	DefaultBuyerSecurityDepositPct float64
	// SellerSecurityDepositRatio derives the seller's deposit
	// percentage from the buyer's.
	SellerSecurityDepositRatio float64
	MinBuyerSecurityDeposit    btcutil.Amount
	MinSellerSecurityDeposit   btcutil.Amount
	// MaxSecurityDepositPct bounds a deposit relative to the trade
	// amount.
	MaxSecurityDepositPct float64
}

// DefaultConfig returns the protocol default fee schedule.
func DefaultConfig() Config {
	return Config{
		MakerFeePct:       0.001,
		TakerFeePct:       0.007,
		MinMakerFeeBtc:    5000,
		MinTakerFeeBtc:    5000,
		BsqFeeDiscountPct: 0.5,
		MinMakerFeeBsq:    10,
		MinTakerFeeBsq:    10,

		DefaultBuyerSecurityDepositPct: 0.15,
		SellerSecurityDepositRatio:     1.0,
		MinBuyerSecurityDeposit:        100_000,
		MinSellerSecurityDeposit:       100_000,
		MaxSecurityDepositPct:          0.5,
	}
}

// Calculator computes fees and deposits for a given config.
type Calculator struct {
	cfg Config
}

// NewCalculator returns a calculator over the given config.
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// MakerFee returns the maker's trade fee for the given amount. When
// payInBsq is set the fee is returned in BSQ units, converted with the
// given BSQ-per-BTC rate and discounted for the burn.
func (c *Calculator) MakerFee(
	amount uint64, payInBsq bool, bsqRate decimal.Decimal,
) (uint64, error) {
	return c.tradeFee(
		amount, c.cfg.MakerFeePct, c.cfg.MinMakerFeeBtc, c.cfg.MinMakerFeeBsq,
		payInBsq, bsqRate,
	)
}

// TakerFee returns the taker's trade fee for the given amount.
func (c *Calculator) TakerFee(
	amount uint64, payInBsq bool, bsqRate decimal.Decimal,
) (uint64, error) {
	return c.tradeFee(
		amount, c.cfg.TakerFeePct, c.cfg.MinTakerFeeBtc, c.cfg.MinTakerFeeBsq,
		payInBsq, bsqRate,
	)
}

func (c *Calculator) tradeFee(
	amount uint64, pct float64, minBtc btcutil.Amount, minBsq uint64,
	payInBsq bool, bsqRate decimal.Decimal,
) (uint64, error) {
	fee := mulPct(amount, pct)
	if fee < uint64(minBtc) {
		fee = uint64(minBtc)
	}
	if !payInBsq {
		return fee, nil
	}

	if bsqRate.LessThanOrEqual(decimal.Zero) {
		return 0, ErrNoBsqRate
	}
	discounted := decimal.NewFromBigInt(new(big.Int).SetUint64(fee), 0).
		Mul(decimal.NewFromFloat(1 - c.cfg.BsqFeeDiscountPct))
	bsqFee := discounted.Mul(bsqRate).Shift(-8).Round(0).BigInt().Uint64()
	if bsqFee < minBsq {
		bsqFee = minBsq
	}
	return bsqFee, nil
}

// TxFee estimates the mining fee of a transaction from its virtual size.
func (c *Calculator) TxFee(vsize, satPerVbyte uint64) btcutil.Amount {
	return btcutil.Amount(vsize * satPerVbyte)
}

// TxFeeWithBsqBurn reduces the effective BTC mining fee by the
// BTC-equivalent of a burnt BSQ fee, never below zero.
func (c *Calculator) TxFeeWithBsqBurn(
	vsize, satPerVbyte uint64, bsqFeeAsBtc btcutil.Amount,
) btcutil.Amount {
	fee := c.TxFee(vsize, satPerVbyte)
	if bsqFeeAsBtc >= fee {
		return 0
	}
	return fee - bsqFeeAsBtc
}

// DefaultBuyerSecurityDepositPct returns the configured default deposit
// percentage for buyers who did not pick one.
func (c *Calculator) DefaultBuyerSecurityDepositPct() float64 {
	return c.cfg.DefaultBuyerSecurityDepositPct
}

// SellerSecurityDepositPct derives the seller's deposit percentage from
// the buyer's via the configured ratio.
func (c *Calculator) SellerSecurityDepositPct(buyerPct float64) float64 {
	return buyerPct * c.cfg.SellerSecurityDepositRatio
}

// SecurityDeposit returns the deposit the given role locks for a trade
// of the given amount, clamped to the role's minimum and the configured
// maximum share of the amount.
func (c *Calculator) SecurityDeposit(
	amount uint64, pct float64, role Role,
) btcutil.Amount {
	deposit := mulPct(amount, pct)

	min := uint64(c.cfg.MinBuyerSecurityDeposit)
	if role == RoleSeller {
		min = uint64(c.cfg.MinSellerSecurityDeposit)
	}
	max := mulPct(amount, c.cfg.MaxSecurityDepositPct)

	if deposit > max {
		deposit = max
	}
	// The role minimum wins over the relative maximum: a deposit below
	// it no longer disincentivizes abandoning the trade.
	if deposit < min {
		deposit = min
	}
	return btcutil.Amount(deposit)
}

func mulPct(amount uint64, pct float64) uint64 {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), 0).
		Mul(decimal.NewFromFloat(pct)).Round(0).BigInt().Uint64()
}

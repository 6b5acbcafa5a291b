// Package pricing converts between fixed prices, market price margins
// and trigger prices.
//
// Prices are handled as scaled integers: fiat pairs carry 4 decimal
// places, crypto pairs 8. Crypto pairs are displayed inverted, which
// flips the sign of the margin math compared to fiat pairs.
package pricing

import (
	"github.com/shopspring/decimal"
)

const (
	// FiatPricePrecision is the number of decimal places of a fiat price.
	FiatPricePrecision = 4
	// CryptoPricePrecision is the number of decimal places of an altcoin price.
	CryptoPricePrecision = 8

	// MarginPrecision is the number of decimal digits a margin is rounded to.
	MarginPrecision = 4
)

var (
	one = decimal.NewFromInt(1)
)

// PricePrecision returns the scaling exponent for the given currency class.
func PricePrecision(isCryptoPair bool) int32 {
	if isCryptoPair {
		return CryptoPricePrecision
	}
	return FiatPricePrecision
}

// ParsePrice parses a human readable price string like "10000.1234" into
// its scaled integer representation, rounding half-up at the target
// precision.
func ParsePrice(price string, isCryptoPair bool) (int64, error) {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return 0, ErrInvalidPrice
	}
	if p.LessThanOrEqual(decimal.Zero) {
		return 0, ErrInvalidPrice
	}
	return p.Shift(PricePrecision(isCryptoPair)).Round(0).IntPart(), nil
}

// PriceToDecimal converts a scaled integer price back to its decimal value.
func PriceToDecimal(price int64, isCryptoPair bool) decimal.Decimal {
	return decimal.NewFromInt(price).Shift(-PricePrecision(isCryptoPair))
}

// PriceFromMargin derives the scaled offer price from the current market
// price and a percentage margin (0.05 = 5%).
//
// For fiat pairs a BUY offer prices below market and a SELL offer above.
// Crypto pairs are displayed inverted so the factor flips.
func PriceFromMargin(
	marketPrice decimal.Decimal, marginPct float64,
	isSellOffer, isCryptoPair bool,
) (int64, error) {
	if marketPrice.LessThanOrEqual(decimal.Zero) {
		return 0, ErrInvalidMarketPrice
	}
	margin := decimal.NewFromFloat(marginPct)
	factor := one.Sub(margin)
	if isSellOffer != isCryptoPair {
		factor = one.Add(margin)
	}
	price := marketPrice.Mul(factor).
		Shift(PricePrecision(isCryptoPair)).Round(0).IntPart()
	if price <= 0 {
		return 0, ErrInvalidPrice
	}
	return price, nil
}

// MarginFromPrice is the exact inverse of PriceFromMargin, rounded to 4
// decimal digits.
func MarginFromPrice(
	price int64, marketPrice decimal.Decimal,
	isSellOffer, isCryptoPair bool,
) (float64, error) {
	if marketPrice.LessThanOrEqual(decimal.Zero) {
		return 0, ErrInvalidMarketPrice
	}
	if price <= 0 {
		return 0, ErrInvalidPrice
	}
	ratio := PriceToDecimal(price, isCryptoPair).Div(marketPrice)
	margin := one.Sub(ratio)
	if isSellOffer != isCryptoPair {
		margin = ratio.Sub(one)
	}
	f, _ := margin.Round(MarginPrecision).Float64()
	return f, nil
}

// ValidateTriggerPrice checks a requested trigger price against the
// offer's pricing mode. A trigger of exactly 0 means disabled. Whether
// the trigger sits above or below the market is legal either way, since
// direction and currency class reverse what "better" means.
func ValidateTriggerPrice(triggerPrice int64, useMarketBasedPrice bool) error {
	if triggerPrice < 0 {
		return ErrNegativeTriggerPrice
	}
	if triggerPrice > 0 && !useMarketBasedPrice {
		return ErrTriggerPriceOnFixedOffer
	}
	return nil
}

// WasTriggered reports whether a market price update crossed the trigger
// price of a market-priced offer, ie. whether the offer should
// auto-deactivate.
func WasTriggered(
	marketPrice decimal.Decimal, triggerPrice int64,
	isSellOffer, isCryptoPair bool,
) bool {
	if triggerPrice <= 0 {
		return false
	}
	market := marketPrice.
		Shift(PricePrecision(isCryptoPair)).Round(0).IntPart()
	if isSellOffer != isCryptoPair {
		return market < triggerPrice
	}
	return market > triggerPrice
}

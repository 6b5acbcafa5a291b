package pricing

import "math"

// Tolerance classifies the deviation between a percentage margin and the
// margin realized by a computed price.
type Tolerance int

const (
	// ToleranceOk means the deviation is below the warning band.
	ToleranceOk Tolerance = iota
	// ToleranceWarn means the deviation exceeds 0.01%. Worth logging.
	ToleranceWarn
	// ToleranceError means the deviation exceeds 0.50%, which indicates
	// a computation bug rather than rounding noise.
	ToleranceError
)

const (
	warnToleranceBand  = 0.0001
	errorToleranceBand = 0.005
)

// CheckMarginTolerance reconciles an expected margin against the margin
// realized by a price that went through scaling and rounding.
func CheckMarginTolerance(expectedMarginPct, realizedMarginPct float64) Tolerance {
	deviation := math.Abs(expectedMarginPct - realizedMarginPct)
	switch {
	case deviation > errorToleranceBand:
		return ToleranceError
	case deviation > warnToleranceBand:
		return ToleranceWarn
	default:
		return ToleranceOk
	}
}

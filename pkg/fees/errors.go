package fees

import "errors"

var (
	// ErrNoBsqRate is thrown when a BSQ denominated fee is requested
	// without a known BSQ/BTC market rate.
	ErrNoBsqRate = errors.New("no BSQ market rate available")
)

package dbbadger

import "errors"

var (
	// ErrOfferNotFound ...
	ErrOfferNotFound = errors.New("offer not found")
	// ErrTradeNotFound ...
	ErrTradeNotFound = errors.New("trade not found")
)

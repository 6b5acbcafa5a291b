package inmemory

import "errors"

var (
	// ErrOfferAlreadyExists ...
	ErrOfferAlreadyExists = errors.New("offer already exists")
	// ErrOfferNotFound ...
	ErrOfferNotFound = errors.New("offer not found")
	// ErrTradeAlreadyExists ...
	ErrTradeAlreadyExists = errors.New("trade already exists")
	// ErrTradeNotFound ...
	ErrTradeNotFound = errors.New("trade not found")
)

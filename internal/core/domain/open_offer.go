package domain

import "time"

// OpenOfferState represents the lifecycle state of an offer owned by the
// local node.
type OpenOfferState int

const (
	// OpenOfferStatePending marks an offer being prepared, not yet
	// visible to peers.
	OpenOfferStatePending OpenOfferState = iota
	// OpenOfferStateAvailable marks a published offer takers can see.
	OpenOfferStateAvailable
	// OpenOfferStateDeactivated marks an offer withdrawn from
	// visibility that keeps its id and fields.
	OpenOfferStateDeactivated
	// OpenOfferStateCanceled is terminal, reached on cancel or take.
	OpenOfferStateCanceled
)

func (s OpenOfferState) String() string {
	switch s {
	case OpenOfferStateAvailable:
		return "AVAILABLE"
	case OpenOfferStateDeactivated:
		return "DEACTIVATED"
	case OpenOfferStateCanceled:
		return "CANCELED"
	default:
		return "PENDING"
	}
}

// EditedFields carries the mutation an approved edit applies. Nil fields
// are left untouched.
type EditedFields struct {
	FixedPrice        *int64
	MarketPriceMargin *float64
	TriggerPrice      *int64
	Activate          *bool
}

// OpenOffer wraps an Offer owned by the local node together with its
// lifecycle state. Version is incremented on every committed edit so the
// republished record invalidates the previous one.
type OpenOffer struct {
	Offer     Offer
	State     OpenOfferState
	Version   uint64
	CreatedAt int64
}

// NewOpenOffer returns an open offer in Pending state, ie. prepared but
// not yet visible to peers.
func NewOpenOffer(offer *Offer) *OpenOffer {
	return &OpenOffer{
		Offer:     *offer,
		State:     OpenOfferStatePending,
		CreatedAt: time.Now().Unix(),
	}
}

// Id returns the id of the wrapped offer.
func (o *OpenOffer) Id() string {
	return o.Offer.Id
}

// IsAvailable returns whether the offer can currently be taken.
func (o *OpenOffer) IsAvailable() bool {
	return o.State == OpenOfferStateAvailable
}

// IsCanceled returns whether the offer reached its terminal state.
func (o *OpenOffer) IsCanceled() bool {
	return o.State == OpenOfferStateCanceled
}

// Publish brings a pending offer to Available, making it visible.
func (o *OpenOffer) Publish() error {
	if o.State == OpenOfferStateAvailable {
		return nil
	}
	if o.State != OpenOfferStatePending {
		return ErrOfferNotPending
	}
	o.State = OpenOfferStateAvailable
	return nil
}

// Activate brings a deactivated offer back to Available.
func (o *OpenOffer) Activate() error {
	if o.State == OpenOfferStateAvailable {
		return nil
	}
	if o.State != OpenOfferStateDeactivated {
		if o.State == OpenOfferStateCanceled {
			return ErrOfferNoLongerAvailable
		}
		return ErrOfferNotDeactivated
	}
	o.State = OpenOfferStateAvailable
	return nil
}

// Deactivate withdraws an available offer from visibility.
func (o *OpenOffer) Deactivate() error {
	if o.State == OpenOfferStateDeactivated {
		return nil
	}
	if o.State != OpenOfferStateAvailable {
		if o.State == OpenOfferStateCanceled {
			return ErrOfferNoLongerAvailable
		}
		return ErrOfferNotAvailable
	}
	o.State = OpenOfferStateDeactivated
	return nil
}

// Cancel irreversibly removes the offer. Releasing reserved funds is the
// wallet collaborator's job.
func (o *OpenOffer) Cancel() error {
	if o.State == OpenOfferStateCanceled {
		return ErrOfferNoLongerAvailable
	}
	o.State = OpenOfferStateCanceled
	return nil
}

// MarkTaken consumes an available offer when a taker succeeds against it.
func (o *OpenOffer) MarkTaken() error {
	if !o.IsAvailable() {
		return ErrOfferNoLongerAvailable
	}
	o.State = OpenOfferStateCanceled
	return nil
}

// ApplyEdit commits a validator-approved mutation in one atomic step and
// bumps the record version so the edited offer appears to peers as a
// single republish, never as independent price and activation events.
func (o *OpenOffer) ApplyEdit(fields EditedFields) error {
	if o.Offer.IsBsqSwap() {
		return ErrOfferImmutable
	}
	if o.State == OpenOfferStateCanceled {
		return ErrOfferNoLongerAvailable
	}

	if fields.FixedPrice != nil {
		o.Offer.FixedPrice = *fields.FixedPrice
	}
	if fields.MarketPriceMargin != nil {
		o.Offer.MarketPriceMargin = *fields.MarketPriceMargin
	}
	if fields.TriggerPrice != nil {
		o.Offer.TriggerPrice = *fields.TriggerPrice
	}
	if fields.Activate != nil {
		if *fields.Activate {
			o.State = OpenOfferStateAvailable
		} else {
			o.State = OpenOfferStateDeactivated
		}
	}
	o.Version++
	return nil
}

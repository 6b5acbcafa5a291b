package domain

import (
	"time"

	"github.com/google/uuid"
)

// TradePhase tracks how far the funds of a trade have moved.
//
// Escrow and atomic trades walk the linear ladder from Init to Completed
// one step at a time, with a dispute branch reachable from any
// non-terminal phase and cancelation possible only before the deposit
// hits the chain. Swap trades only know Init, TxPublished and the two
// terminal outcomes since the single transaction is atomic by itself.
type TradePhase int

const (
	TradePhaseInit TradePhase = iota
	TradePhaseDepositPublished
	TradePhaseDepositConfirmed
	TradePhasePaymentSent
	TradePhasePaymentReceived
	TradePhasePayoutPublished
	TradePhaseCompleted

	TradePhaseCanceled
	TradePhaseDisputeOpened
	TradePhaseDisputeClosedRefund
	TradePhaseDisputeClosedPayout

	TradePhaseTxPublished
	TradePhaseFailed
)

func (p TradePhase) String() string {
	switch p {
	case TradePhaseDepositPublished:
		return "DEPOSIT_PUBLISHED"
	case TradePhaseDepositConfirmed:
		return "DEPOSIT_CONFIRMED"
	case TradePhasePaymentSent:
		return "PAYMENT_SENT"
	case TradePhasePaymentReceived:
		return "PAYMENT_RECEIVED"
	case TradePhasePayoutPublished:
		return "PAYOUT_PUBLISHED"
	case TradePhaseCompleted:
		return "COMPLETED"
	case TradePhaseCanceled:
		return "CANCELED"
	case TradePhaseDisputeOpened:
		return "DISPUTE_OPENED"
	case TradePhaseDisputeClosedRefund:
		return "DISPUTE_CLOSED_REFUND"
	case TradePhaseDisputeClosedPayout:
		return "DISPUTE_CLOSED_PAYOUT"
	case TradePhaseTxPublished:
		return "TX_PUBLISHED"
	case TradePhaseFailed:
		return "FAILED"
	default:
		return "INIT"
	}
}

// TradeState is the coarse outcome of a trade.
type TradeState int

const (
	TradeStateActive TradeState = iota
	TradeStateCompleted
	TradeStateWithdrawn
	TradeStateCanceled
	TradeStateDisputed
	TradeStateFailed
)

func (s TradeState) String() string {
	switch s {
	case TradeStateCompleted:
		return "COMPLETED"
	case TradeStateWithdrawn:
		return "WITHDRAWN"
	case TradeStateCanceled:
		return "CANCELED"
	case TradeStateDisputed:
		return "DISPUTED"
	case TradeStateFailed:
		return "FAILED"
	default:
		return "ACTIVE"
	}
}

// TradePeriodState splits the maximum trade period in two halves,
// relative to the deposit confirmation time. It is observational only,
// dispute eligibility is decided outside this engine.
type TradePeriodState int

const (
	TradePeriodFirstHalf TradePeriodState = iota
	TradePeriodSecondHalf
)

// EscrowData tracks the deposit and payout transactions of an escrow
// trade together with both parties' security deposits.
type EscrowData struct {
	DepositTxId           string
	DepositConfirmedAt    int64
	PayoutTxId            string
	BuyerSecurityDeposit  uint64
	SellerSecurityDeposit uint64
}

// BsqSwapData tracks the single swap transaction of a BSQ swap trade.
type BsqSwapData struct {
	TxId string
}

// AtomicData keeps the dual-denomination bookkeeping of a direct
// on-chain swap, alongside the escrow-style deposit/payout tracking.
type AtomicData struct {
	EscrowData
	BsqTradeAmount    uint64
	BtcTradeAmount    uint64
	BsqMinTradeAmount uint64
	BsqMaxTradeAmount uint64
	BtcMinTradeAmount uint64
	BtcMaxTradeAmount uint64
}

// Trade is created when an offer is taken and mutated by protocol events
// as funds move on-chain. Exactly one of the variant payloads is set,
// matching Type.
type Trade struct {
	Id                    string
	OfferId               string
	Type                  OfferType
	Direction             OfferDirection
	BaseCurrencyCode      string
	CounterCurrencyCode   string
	Phase                 TradePhase
	State                 TradeState
	PeriodState           TradePeriodState
	PeerNodeAddress       string
	TradePrice            int64
	TradeAmount           uint64
	MakerFee              uint64
	MakerFeeCurrency      FeeCurrency
	TakerFee              uint64
	TakerFeeCurrency      FeeCurrency
	TakerPaymentAccountId string
	MaxTradePeriod        int64
	TakenAt               int64
	StepStartedAt         int64
	ErrorMessage          string

	Escrow  *EscrowData
	BsqSwap *BsqSwapData
	Atomic  *AtomicData
}

// NewTrade instantiates the trade created by taking the given offer,
// with the variant payload matching the offer type.
func NewTrade(
	offer *Offer, tradeAmount uint64, tradePrice int64,
	peerNodeAddress, takerPaymentAccountId string,
	takerFee uint64, takerFeeCurrency FeeCurrency,
	maxTradePeriod time.Duration,
) *Trade {
	now := time.Now().Unix()
	trade := &Trade{
		Id:                    uuid.New().String(),
		OfferId:               offer.Id,
		Type:                  offer.Type,
		Direction:             offer.Direction,
		BaseCurrencyCode:      offer.BaseCurrencyCode,
		CounterCurrencyCode:   offer.CounterCurrencyCode,
		Phase:                 TradePhaseInit,
		State:                 TradeStateActive,
		PeriodState:           TradePeriodFirstHalf,
		PeerNodeAddress:       peerNodeAddress,
		TradePrice:            tradePrice,
		TradeAmount:           tradeAmount,
		MakerFee:              offer.MakerFee,
		MakerFeeCurrency:      offer.MakerFeeCurrency,
		TakerFee:              takerFee,
		TakerFeeCurrency:      takerFeeCurrency,
		TakerPaymentAccountId: takerPaymentAccountId,
		MaxTradePeriod:        int64(maxTradePeriod.Seconds()),
		TakenAt:               now,
		StepStartedAt:         now,
	}

	switch offer.Type {
	case OfferTypeBsqSwap:
		trade.BsqSwap = &BsqSwapData{}
	case OfferTypeAtomic:
		trade.Atomic = &AtomicData{
			BsqTradeAmount:    tradeAmount,
			BtcTradeAmount:    tradeAmount,
			BsqMinTradeAmount: offer.MinAmount,
			BsqMaxTradeAmount: offer.Amount,
			BtcMinTradeAmount: offer.MinAmount,
			BtcMaxTradeAmount: offer.Amount,
		}
	default:
		trade.Escrow = &EscrowData{}
	}
	return trade
}

// IsTerminal returns whether no further protocol event can move the
// trade.
func (t *Trade) IsTerminal() bool {
	switch t.Phase {
	case TradePhaseCompleted, TradePhaseCanceled, TradePhaseFailed,
		TradePhaseDisputeClosedRefund, TradePhaseDisputeClosedPayout:
		return true
	}
	return t.State == TradeStateWithdrawn
}

func (t *Trade) isEscrowLike() bool {
	return t.Type == OfferTypeEscrowV1 || t.Type == OfferTypeAtomic
}

func (t *Trade) escrowData() *EscrowData {
	if t.Atomic != nil {
		return &t.Atomic.EscrowData
	}
	return t.Escrow
}

func (t *Trade) isLinearPhase() bool {
	return t.Phase >= TradePhaseInit && t.Phase <= TradePhaseCompleted
}

// advance moves an escrow-like trade one step along the linear ladder.
// Re-delivered events for a phase already reached are a no-op, skipping
// ahead is an error.
func (t *Trade) advance(target TradePhase) (bool, error) {
	if !t.isEscrowLike() {
		return false, ErrTradeWrongProtocol
	}
	if t.isLinearPhase() && t.Phase >= target {
		return true, nil
	}
	if t.Phase != target-1 || t.State != TradeStateActive {
		return false, ErrTradeUnexpectedPhase
	}
	t.Phase = target
	t.StepStartedAt = time.Now().Unix()
	return true, nil
}

// DepositPublished records the broadcast deposit transaction.
func (t *Trade) DepositPublished(txId string) (bool, error) {
	ok, err := t.advance(TradePhaseDepositPublished)
	if err == nil && ok && t.escrowData().DepositTxId == "" {
		t.escrowData().DepositTxId = txId
	}
	return ok, err
}

// DepositConfirmed records the block confirmation of the deposit, which
// also starts the trade period clock.
func (t *Trade) DepositConfirmed(confirmedAt int64) (bool, error) {
	ok, err := t.advance(TradePhaseDepositConfirmed)
	if err == nil && ok && t.escrowData().DepositConfirmedAt == 0 {
		t.escrowData().DepositConfirmedAt = confirmedAt
	}
	return ok, err
}

// PaymentSent records the fiat/altcoin payment leaving the buyer.
func (t *Trade) PaymentSent() (bool, error) {
	return t.advance(TradePhasePaymentSent)
}

// PaymentReceived records the seller confirming receipt.
func (t *Trade) PaymentReceived() (bool, error) {
	return t.advance(TradePhasePaymentReceived)
}

// PayoutPublished records the broadcast payout transaction.
func (t *Trade) PayoutPublished(txId string) (bool, error) {
	ok, err := t.advance(TradePhasePayoutPublished)
	if err == nil && ok && t.escrowData().PayoutTxId == "" {
		t.escrowData().PayoutTxId = txId
	}
	return ok, err
}

// Complete settles the trade once the payout confirmed.
func (t *Trade) Complete() (bool, error) {
	ok, err := t.advance(TradePhaseCompleted)
	if err == nil && ok {
		t.State = TradeStateCompleted
	}
	return ok, err
}

// Withdraw marks the funds of a completed trade as moved out of the
// trade wallet. Terminal.
func (t *Trade) Withdraw() (bool, error) {
	if t.State == TradeStateWithdrawn {
		return true, nil
	}
	if !t.isEscrowLike() {
		return false, ErrTradeWrongProtocol
	}
	if t.State != TradeStateCompleted {
		return false, ErrTradeNotCompleted
	}
	t.State = TradeStateWithdrawn
	return true, nil
}

// Cancel aborts the trade. Only possible while no funds are exposed,
// ie. before the deposit transaction is published.
func (t *Trade) Cancel() (bool, error) {
	if t.Phase == TradePhaseCanceled {
		return true, nil
	}
	if !t.isEscrowLike() {
		return false, ErrTradeWrongProtocol
	}
	if t.Phase != TradePhaseInit {
		return false, ErrTradeNotCancelable
	}
	t.Phase = TradePhaseCanceled
	t.State = TradeStateCanceled
	return true, nil
}

// OpenDispute branches the trade into dispute handling. Reachable from
// any non-terminal phase.
func (t *Trade) OpenDispute() (bool, error) {
	if t.Phase == TradePhaseDisputeOpened {
		return true, nil
	}
	if !t.isEscrowLike() {
		return false, ErrTradeWrongProtocol
	}
	if t.IsTerminal() {
		return false, ErrTradeTerminal
	}
	t.Phase = TradePhaseDisputeOpened
	t.State = TradeStateDisputed
	t.StepStartedAt = time.Now().Unix()
	return true, nil
}

// CloseDispute settles an open dispute, either refunding the deposits or
// executing the payout.
func (t *Trade) CloseDispute(refund bool) (bool, error) {
	target := TradePhaseDisputeClosedPayout
	if refund {
		target = TradePhaseDisputeClosedRefund
	}
	if t.Phase == target {
		return true, nil
	}
	if !t.isEscrowLike() {
		return false, ErrTradeWrongProtocol
	}
	if t.Phase != TradePhaseDisputeOpened {
		return false, ErrTradeUnexpectedPhase
	}
	t.Phase = target
	return true, nil
}

// UpdatePeriodState flips the period state to SecondHalf once half of
// the maximum trade period elapsed since deposit confirmation.
func (t *Trade) UpdatePeriodState(now int64) {
	if !t.isEscrowLike() || t.IsTerminal() {
		return
	}
	confirmedAt := t.escrowData().DepositConfirmedAt
	if confirmedAt <= 0 {
		return
	}
	if now >= confirmedAt+t.MaxTradePeriod/2 {
		t.PeriodState = TradePeriodSecondHalf
	}
}

// CheckTimeout fails the trade when the current protocol step overran
// the given timeout. The phase is left untouched, escalation to dispute
// handling is the caller's responsibility.
func (t *Trade) CheckTimeout(now int64, stepTimeout time.Duration) (bool, error) {
	if t.IsTerminal() || t.State == TradeStateFailed {
		return false, nil
	}
	if now < t.StepStartedAt+int64(stepTimeout.Seconds()) {
		return false, nil
	}
	t.State = TradeStateFailed
	if t.Type == OfferTypeBsqSwap {
		t.Phase = TradePhaseFailed
	}
	t.ErrorMessage = ErrTradeTimedOut.Error()
	return true, ErrTradeTimedOut
}

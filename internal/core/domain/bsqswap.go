package domain

import "time"

// The swap protocol has no escrow phases: the single transaction either
// confirms or the trade fails. No funds are ever locked in a multisig,
// so there is no dispute branch either.

// SwapTxPublished records the broadcast swap transaction.
func (t *Trade) SwapTxPublished(txId string) (bool, error) {
	if t.Type != OfferTypeBsqSwap {
		return false, ErrTradeWrongProtocol
	}
	if t.Phase == TradePhaseTxPublished || t.Phase == TradePhaseCompleted {
		return true, nil
	}
	if t.Phase != TradePhaseInit || t.State != TradeStateActive {
		return false, ErrTradeUnexpectedPhase
	}
	t.Phase = TradePhaseTxPublished
	t.StepStartedAt = time.Now().Unix()
	if t.BsqSwap.TxId == "" {
		t.BsqSwap.TxId = txId
	}
	return true, nil
}

// SwapTxConfirmed completes the swap once the transaction confirmed.
func (t *Trade) SwapTxConfirmed() (bool, error) {
	if t.Type != OfferTypeBsqSwap {
		return false, ErrTradeWrongProtocol
	}
	if t.Phase == TradePhaseCompleted {
		return true, nil
	}
	if t.Phase != TradePhaseTxPublished || t.State != TradeStateActive {
		return false, ErrTradeUnexpectedPhase
	}
	t.Phase = TradePhaseCompleted
	t.State = TradeStateCompleted
	return true, nil
}

// SwapFailed marks the swap as failed, either because the transaction
// never broadcast or because it did not confirm in time.
func (t *Trade) SwapFailed(reason string) (bool, error) {
	if t.Type != OfferTypeBsqSwap {
		return false, ErrTradeWrongProtocol
	}
	if t.Phase == TradePhaseFailed {
		return true, nil
	}
	if t.IsTerminal() {
		return false, ErrTradeTerminal
	}
	t.Phase = TradePhaseFailed
	t.State = TradeStateFailed
	t.ErrorMessage = reason
	return true, nil
}

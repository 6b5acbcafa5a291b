package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/peertrade-network/peertrade-daemon/internal/core/domain"
)

const maxTradePeriod = 8 * 24 * time.Hour

func newTestTrade(t *testing.T, offerType domain.OfferType) *domain.Trade {
	t.Helper()

	counterCurrency := "USD"
	if offerType == domain.OfferTypeBsqSwap {
		counterCurrency = "BSQ"
	}
	offer, err := domain.NewOffer(
		offerType, domain.OfferDirectionSell,
		"BTC", counterCurrency,
		10_000_000, 1_000_000,
		400_000_000, false, 0,
		0,
		0.15, 0.15,
		domain.FeeCurrencyBtc, 10_000,
		"maker-account",
	)
	require.NoError(t, err)

	return domain.NewTrade(
		offer, 5_000_000, 400_000_000,
		"peer:9735", "taker-account",
		35_000, domain.FeeCurrencyBtc,
		maxTradePeriod,
	)
}

func TestNewTrade(t *testing.T) {
	t.Parallel()

	trade := newTestTrade(t, domain.OfferTypeEscrowV1)
	require.NotEmpty(t, trade.Id)
	require.Equal(t, domain.TradePhaseInit, trade.Phase)
	require.Equal(t, domain.TradeStateActive, trade.State)
	require.Equal(t, domain.TradePeriodFirstHalf, trade.PeriodState)
	require.NotNil(t, trade.Escrow)
	require.Nil(t, trade.BsqSwap)
	require.Nil(t, trade.Atomic)

	t.Run("swap_trade_carries_swap_payload", func(t *testing.T) {
		trade := newTestTrade(t, domain.OfferTypeBsqSwap)
		require.Nil(t, trade.Escrow)
		require.NotNil(t, trade.BsqSwap)
	})

	t.Run("atomic_trade_carries_dual_bookkeeping", func(t *testing.T) {
		trade := newTestTrade(t, domain.OfferTypeAtomic)
		require.Nil(t, trade.Escrow)
		require.NotNil(t, trade.Atomic)
		require.Equal(t, uint64(5_000_000), trade.Atomic.BtcTradeAmount)
		require.Equal(t, uint64(1_000_000), trade.Atomic.BtcMinTradeAmount)
		require.Equal(t, uint64(10_000_000), trade.Atomic.BtcMaxTradeAmount)
	})
}

func TestEscrowTradeHappyPath(t *testing.T) {
	t.Parallel()

	trade := newTestTrade(t, domain.OfferTypeEscrowV1)

	ok, err := trade.DepositPublished("deposit-tx")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "deposit-tx", trade.Escrow.DepositTxId)

	confirmedAt := time.Now().Unix()
	_, err = trade.DepositConfirmed(confirmedAt)
	require.NoError(t, err)
	require.Equal(t, confirmedAt, trade.Escrow.DepositConfirmedAt)

	_, err = trade.PaymentSent()
	require.NoError(t, err)
	_, err = trade.PaymentReceived()
	require.NoError(t, err)

	_, err = trade.PayoutPublished("payout-tx")
	require.NoError(t, err)
	require.Equal(t, "payout-tx", trade.Escrow.PayoutTxId)

	_, err = trade.Complete()
	require.NoError(t, err)
	require.Equal(t, domain.TradePhaseCompleted, trade.Phase)
	require.Equal(t, domain.TradeStateCompleted, trade.State)
	require.True(t, trade.IsTerminal())

	_, err = trade.Withdraw()
	require.NoError(t, err)
	require.Equal(t, domain.TradeStateWithdrawn, trade.State)
}

func TestTradeEventRedeliveryIsNoop(t *testing.T) {
	t.Parallel()

	trade := newTestTrade(t, domain.OfferTypeEscrowV1)

	_, err := trade.DepositPublished("deposit-tx")
	require.NoError(t, err)

	ok, err := trade.DepositPublished("other-tx")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "deposit-tx", trade.Escrow.DepositTxId)

	// An event for an earlier phase is equally a no-op.
	_, err = trade.DepositConfirmed(time.Now().Unix())
	require.NoError(t, err)
	ok, err = trade.DepositPublished("deposit-tx")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.TradePhaseDepositConfirmed, trade.Phase)
}

func TestTradeCannotSkipPhases(t *testing.T) {
	t.Parallel()

	trade := newTestTrade(t, domain.OfferTypeEscrowV1)

	_, err := trade.PaymentSent()
	require.ErrorIs(t, err, domain.ErrTradeUnexpectedPhase)

	_, err = trade.Complete()
	require.ErrorIs(t, err, domain.ErrTradeUnexpectedPhase)
}

func TestTradeCancel(t *testing.T) {
	t.Parallel()

	trade := newTestTrade(t, domain.OfferTypeEscrowV1)
	_, err := trade.Cancel()
	require.NoError(t, err)
	require.Equal(t, domain.TradePhaseCanceled, trade.Phase)
	require.Equal(t, domain.TradeStateCanceled, trade.State)
	require.True(t, trade.IsTerminal())

	t.Run("cancel_is_idempotent", func(t *testing.T) {
		ok, err := trade.Cancel()
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("no_cancel_once_funds_are_exposed", func(t *testing.T) {
		trade := newTestTrade(t, domain.OfferTypeEscrowV1)
		_, err := trade.DepositPublished("deposit-tx")
		require.NoError(t, err)

		_, err = trade.Cancel()
		require.ErrorIs(t, err, domain.ErrTradeNotCancelable)
	})
}

func TestTradeDispute(t *testing.T) {
	t.Parallel()

	trade := newTestTrade(t, domain.OfferTypeEscrowV1)
	_, err := trade.DepositPublished("deposit-tx")
	require.NoError(t, err)

	_, err = trade.OpenDispute()
	require.NoError(t, err)
	require.Equal(t, domain.TradePhaseDisputeOpened, trade.Phase)
	require.Equal(t, domain.TradeStateDisputed, trade.State)

	_, err = trade.CloseDispute(true)
	require.NoError(t, err)
	require.Equal(t, domain.TradePhaseDisputeClosedRefund, trade.Phase)
	require.True(t, trade.IsTerminal())

	t.Run("dispute_payout", func(t *testing.T) {
		trade := newTestTrade(t, domain.OfferTypeEscrowV1)
		_, err := trade.OpenDispute()
		require.NoError(t, err)
		_, err = trade.CloseDispute(false)
		require.NoError(t, err)
		require.Equal(t, domain.TradePhaseDisputeClosedPayout, trade.Phase)
	})

	t.Run("no_dispute_on_terminal_trade", func(t *testing.T) {
		trade := newTestTrade(t, domain.OfferTypeEscrowV1)
		_, err := trade.Cancel()
		require.NoError(t, err)
		_, err = trade.OpenDispute()
		require.ErrorIs(t, err, domain.ErrTradeTerminal)
	})

	t.Run("no_close_without_open", func(t *testing.T) {
		trade := newTestTrade(t, domain.OfferTypeEscrowV1)
		_, err := trade.CloseDispute(true)
		require.ErrorIs(t, err, domain.ErrTradeUnexpectedPhase)
	})
}

func TestBsqSwapTrade(t *testing.T) {
	t.Parallel()

	trade := newTestTrade(t, domain.OfferTypeBsqSwap)

	ok, err := trade.SwapTxPublished("swap-tx")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.TradePhaseTxPublished, trade.Phase)
	require.Equal(t, "swap-tx", trade.BsqSwap.TxId)

	ok, err = trade.SwapTxPublished("other-tx")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "swap-tx", trade.BsqSwap.TxId)

	_, err = trade.SwapTxConfirmed()
	require.NoError(t, err)
	require.Equal(t, domain.TradePhaseCompleted, trade.Phase)
	require.Equal(t, domain.TradeStateCompleted, trade.State)

	t.Run("swap_failure", func(t *testing.T) {
		trade := newTestTrade(t, domain.OfferTypeBsqSwap)
		_, err := trade.SwapFailed("tx never confirmed")
		require.NoError(t, err)
		require.Equal(t, domain.TradePhaseFailed, trade.Phase)
		require.Equal(t, domain.TradeStateFailed, trade.State)
		require.Equal(t, "tx never confirmed", trade.ErrorMessage)
	})

	t.Run("no_failure_after_completion", func(t *testing.T) {
		_, err := trade.SwapFailed("too late")
		require.ErrorIs(t, err, domain.ErrTradeTerminal)
	})
}

func TestTradeProtocolGuards(t *testing.T) {
	t.Parallel()

	escrow := newTestTrade(t, domain.OfferTypeEscrowV1)
	_, err := escrow.SwapTxPublished("swap-tx")
	require.ErrorIs(t, err, domain.ErrTradeWrongProtocol)

	swap := newTestTrade(t, domain.OfferTypeBsqSwap)
	_, err = swap.DepositPublished("deposit-tx")
	require.ErrorIs(t, err, domain.ErrTradeWrongProtocol)
	_, err = swap.OpenDispute()
	require.ErrorIs(t, err, domain.ErrTradeWrongProtocol)

	// Atomic trades settle with the escrow phases.
	atomic := newTestTrade(t, domain.OfferTypeAtomic)
	_, err = atomic.DepositPublished("deposit-tx")
	require.NoError(t, err)
	require.Equal(t, "deposit-tx", atomic.Atomic.DepositTxId)
}

func TestUpdatePeriodState(t *testing.T) {
	t.Parallel()

	trade := newTestTrade(t, domain.OfferTypeEscrowV1)
	confirmedAt := time.Now().Unix()
	_, err := trade.DepositPublished("deposit-tx")
	require.NoError(t, err)
	_, err = trade.DepositConfirmed(confirmedAt)
	require.NoError(t, err)

	halfPeriod := int64(maxTradePeriod.Seconds()) / 2

	trade.UpdatePeriodState(confirmedAt + halfPeriod - 1)
	require.Equal(t, domain.TradePeriodFirstHalf, trade.PeriodState)

	trade.UpdatePeriodState(confirmedAt + halfPeriod)
	require.Equal(t, domain.TradePeriodSecondHalf, trade.PeriodState)

	t.Run("clock_starts_at_deposit_confirmation", func(t *testing.T) {
		trade := newTestTrade(t, domain.OfferTypeEscrowV1)
		trade.UpdatePeriodState(time.Now().Unix() + halfPeriod)
		require.Equal(t, domain.TradePeriodFirstHalf, trade.PeriodState)
	})
}

func TestCheckTimeout(t *testing.T) {
	t.Parallel()

	stepTimeout := 24 * time.Hour

	trade := newTestTrade(t, domain.OfferTypeEscrowV1)
	timedOut, err := trade.CheckTimeout(time.Now().Unix(), stepTimeout)
	require.NoError(t, err)
	require.False(t, timedOut)

	overrun := trade.StepStartedAt + int64(stepTimeout.Seconds())
	timedOut, err = trade.CheckTimeout(overrun, stepTimeout)
	require.ErrorIs(t, err, domain.ErrTradeTimedOut)
	require.True(t, timedOut)
	require.Equal(t, domain.TradeStateFailed, trade.State)
	require.NotEmpty(t, trade.ErrorMessage)

	t.Run("swap_timeout_is_terminal", func(t *testing.T) {
		trade := newTestTrade(t, domain.OfferTypeBsqSwap)
		overrun := trade.StepStartedAt + int64(stepTimeout.Seconds())
		timedOut, err := trade.CheckTimeout(overrun, stepTimeout)
		require.ErrorIs(t, err, domain.ErrTradeTimedOut)
		require.True(t, timedOut)
		require.Equal(t, domain.TradePhaseFailed, trade.Phase)
	})

	t.Run("terminal_trades_are_skipped", func(t *testing.T) {
		trade := newTestTrade(t, domain.OfferTypeEscrowV1)
		_, err := trade.Cancel()
		require.NoError(t, err)
		overrun := trade.StepStartedAt + int64(stepTimeout.Seconds())
		timedOut, err := trade.CheckTimeout(overrun, stepTimeout)
		require.NoError(t, err)
		require.False(t, timedOut)
	})
}

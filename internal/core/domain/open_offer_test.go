package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peertrade-network/peertrade-daemon/internal/core/domain"
)

func newTestOpenOffer(t *testing.T) *domain.OpenOffer {
	t.Helper()
	return domain.NewOpenOffer(newTestOffer(t))
}

func newPublishedOffer(t *testing.T) *domain.OpenOffer {
	t.Helper()
	offer := newTestOpenOffer(t)
	require.NoError(t, offer.Publish())
	return offer
}

func TestOpenOfferLifecycle(t *testing.T) {
	t.Parallel()

	offer := newTestOpenOffer(t)
	require.Equal(t, domain.OpenOfferStatePending, offer.State)
	require.False(t, offer.IsAvailable())

	require.NoError(t, offer.Publish())
	require.True(t, offer.IsAvailable())

	require.NoError(t, offer.Deactivate())
	require.Equal(t, domain.OpenOfferStateDeactivated, offer.State)

	require.NoError(t, offer.Activate())
	require.True(t, offer.IsAvailable())

	require.NoError(t, offer.Cancel())
	require.True(t, offer.IsCanceled())
}

func TestOpenOfferIdempotentTransitions(t *testing.T) {
	t.Parallel()

	offer := newPublishedOffer(t)
	require.NoError(t, offer.Publish())
	require.NoError(t, offer.Activate())

	require.NoError(t, offer.Deactivate())
	require.NoError(t, offer.Deactivate())
}

func TestCanceledOfferIsTerminal(t *testing.T) {
	t.Parallel()

	offer := newPublishedOffer(t)
	require.NoError(t, offer.Cancel())

	require.ErrorIs(t, offer.Cancel(), domain.ErrOfferNoLongerAvailable)
	require.ErrorIs(t, offer.Activate(), domain.ErrOfferNoLongerAvailable)
	require.ErrorIs(t, offer.Deactivate(), domain.ErrOfferNoLongerAvailable)
	require.ErrorIs(t, offer.MarkTaken(), domain.ErrOfferNoLongerAvailable)
}

func TestMarkTaken(t *testing.T) {
	t.Parallel()

	offer := newPublishedOffer(t)
	require.NoError(t, offer.MarkTaken())
	require.True(t, offer.IsCanceled())

	t.Run("deactivated_offer_cannot_be_taken", func(t *testing.T) {
		offer := newPublishedOffer(t)
		require.NoError(t, offer.Deactivate())
		require.ErrorIs(t, offer.MarkTaken(), domain.ErrOfferNoLongerAvailable)
	})
}

func TestApplyEdit(t *testing.T) {
	t.Parallel()

	margin := 0.1
	trigger := int64(400_000_000)
	deactivate := false

	offer := newPublishedOffer(t)
	require.NoError(t, offer.ApplyEdit(domain.EditedFields{
		MarketPriceMargin: &margin,
		TriggerPrice:      &trigger,
		Activate:          &deactivate,
	}))

	require.Equal(t, margin, offer.Offer.MarketPriceMargin)
	require.Equal(t, trigger, offer.Offer.TriggerPrice)
	require.Equal(t, domain.OpenOfferStateDeactivated, offer.State)
	require.Equal(t, uint64(1), offer.Version)

	t.Run("nil_fields_are_untouched", func(t *testing.T) {
		offer := newPublishedOffer(t)
		require.NoError(t, offer.ApplyEdit(domain.EditedFields{}))
		require.Equal(t, 0.05, offer.Offer.MarketPriceMargin)
		require.True(t, offer.IsAvailable())
		require.Equal(t, uint64(1), offer.Version)
	})

	t.Run("every_edit_bumps_the_version", func(t *testing.T) {
		offer := newPublishedOffer(t)
		require.NoError(t, offer.ApplyEdit(domain.EditedFields{}))
		require.NoError(t, offer.ApplyEdit(domain.EditedFields{}))
		require.Equal(t, uint64(2), offer.Version)
	})

	t.Run("edit_can_restore_activation", func(t *testing.T) {
		activate := true
		offer := newPublishedOffer(t)
		require.NoError(t, offer.Deactivate())
		require.NoError(t, offer.ApplyEdit(domain.EditedFields{
			Activate: &activate,
		}))
		require.True(t, offer.IsAvailable())
	})
}

func TestFailingApplyEdit(t *testing.T) {
	t.Parallel()

	t.Run("swap_offers_are_immutable", func(t *testing.T) {
		swap, err := domain.NewOffer(
			domain.OfferTypeBsqSwap, domain.OfferDirectionSell,
			"BTC", "BSQ",
			10_000_000, 10_000_000,
			5_000, false, 0,
			0,
			0.15, 0.15,
			domain.FeeCurrencyBsq, 10_000,
			"payment-account-1",
		)
		require.NoError(t, err)

		offer := domain.NewOpenOffer(swap)
		require.NoError(t, offer.Publish())
		require.ErrorIs(
			t, offer.ApplyEdit(domain.EditedFields{}), domain.ErrOfferImmutable,
		)
	})

	t.Run("canceled_offers_cannot_be_edited", func(t *testing.T) {
		offer := newPublishedOffer(t)
		require.NoError(t, offer.Cancel())
		require.ErrorIs(
			t, offer.ApplyEdit(domain.EditedFields{}),
			domain.ErrOfferNoLongerAvailable,
		)
	})
}

package fees_test

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/peertrade-network/peertrade-daemon/pkg/fees"
)

// 15000.00 BSQ per BTC in the token's smallest unit.
var bsqRate = decimal.NewFromInt(1_500_000)

func TestTradeFees(t *testing.T) {
	t.Parallel()

	calculator := fees.NewCalculator(fees.DefaultConfig())

	tests := []struct {
		name        string
		amount      uint64
		taker       bool
		payInBsq    bool
		expectedFee uint64
	}{
		{
			name:        "maker_fee_is_percentage_of_amount",
			amount:      10_000_000,
			expectedFee: 10_000,
		},
		{
			name:        "maker_fee_has_a_floor",
			amount:      1_000_000,
			expectedFee: 5_000,
		},
		{
			name:        "taker_fee_is_higher",
			amount:      10_000_000,
			taker:       true,
			expectedFee: 70_000,
		},
		{
			name:        "taker_fee_has_a_floor",
			amount:      500_000,
			taker:       true,
			expectedFee: 5_000,
		},
		{
			name:        "bsq_fee_is_discounted_and_converted",
			amount:      10_000_000,
			payInBsq:    true,
			expectedFee: 75,
		},
		{
			// The BTC floor applies first: 5000 sats discounted to 2500
			// and converted round half-up to 38 BSQ units.
			name:        "bsq_fee_converts_the_btc_floor",
			amount:      1_000_000,
			payInBsq:    true,
			expectedFee: 38,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var fee uint64
			var err error
			if tt.taker {
				fee, err = calculator.TakerFee(tt.amount, tt.payInBsq, bsqRate)
			} else {
				fee, err = calculator.MakerFee(tt.amount, tt.payInBsq, bsqRate)
			}
			require.NoError(t, err)
			require.Equal(t, tt.expectedFee, fee)
		})
	}
}

func TestBsqFeeFloor(t *testing.T) {
	t.Parallel()

	calculator := fees.NewCalculator(fees.DefaultConfig())

	// 5000 sats discounted to 2500, converted with a near-zero rate.
	fee, err := calculator.MakerFee(100_000, true, decimal.NewFromInt(1))
	require.NoError(t, err)
	require.Equal(t, uint64(10), fee)
}

func TestFailingTradeFeeWithoutBsqRate(t *testing.T) {
	t.Parallel()

	calculator := fees.NewCalculator(fees.DefaultConfig())

	_, err := calculator.MakerFee(10_000_000, true, decimal.Zero)
	require.ErrorIs(t, err, fees.ErrNoBsqRate)
}

func TestTxFee(t *testing.T) {
	t.Parallel()

	calculator := fees.NewCalculator(fees.DefaultConfig())

	require.Equal(t, btcutil.Amount(2550), calculator.TxFee(255, 10))

	t.Run("bsq_burn_reduces_the_fee", func(t *testing.T) {
		fee := calculator.TxFeeWithBsqBurn(255, 10, 550)
		require.Equal(t, btcutil.Amount(2000), fee)
	})

	t.Run("bsq_burn_never_goes_negative", func(t *testing.T) {
		fee := calculator.TxFeeWithBsqBurn(255, 10, 10_000)
		require.Equal(t, btcutil.Amount(0), fee)
	})
}

func TestSecurityDeposit(t *testing.T) {
	t.Parallel()

	calculator := fees.NewCalculator(fees.DefaultConfig())

	tests := []struct {
		name            string
		amount          uint64
		pct             float64
		role            fees.Role
		expectedDeposit btcutil.Amount
	}{
		{
			name:            "buyer_deposit_is_percentage_of_amount",
			amount:          10_000_000,
			pct:             0.15,
			role:            fees.RoleBuyer,
			expectedDeposit: 1_500_000,
		},
		{
			name:            "deposit_is_clamped_to_the_maximum",
			amount:          10_000_000,
			pct:             0.8,
			role:            fees.RoleBuyer,
			expectedDeposit: 5_000_000,
		},
		{
			name:            "deposit_is_clamped_to_the_minimum",
			amount:          1_000_000,
			pct:             0.05,
			role:            fees.RoleBuyer,
			expectedDeposit: 100_000,
		},
		{
			name:   "minimum_wins_over_maximum",
			amount: 150_000,
			pct:    0.15,
			role:   fees.RoleBuyer,
			// 15% of the amount is 22500 and the relative maximum is
			// 75000, yet the deposit never goes below the role minimum.
			expectedDeposit: 100_000,
		},
		{
			name:            "seller_deposit_uses_the_seller_minimum",
			amount:          1_000_000,
			pct:             0.05,
			role:            fees.RoleSeller,
			expectedDeposit: 100_000,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			deposit := calculator.SecurityDeposit(tt.amount, tt.pct, tt.role)
			require.Equal(t, tt.expectedDeposit, deposit)
		})
	}
}

func TestSecurityDepositPcts(t *testing.T) {
	t.Parallel()

	calculator := fees.NewCalculator(fees.DefaultConfig())

	require.Equal(t, 0.15, calculator.DefaultBuyerSecurityDepositPct())
	require.Equal(t, 0.1, calculator.SellerSecurityDepositPct(0.1))
}

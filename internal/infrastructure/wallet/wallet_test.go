package wallet_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peertrade-network/peertrade-daemon/internal/infrastructure/wallet"
)

func TestBalances(t *testing.T) {
	t.Parallel()

	svc := wallet.NewService(map[string]uint64{"BTC": 100_000, "BSQ": 500})

	balance, err := svc.AvailableBalance("BTC")
	require.NoError(t, err)
	require.Equal(t, uint64(100_000), balance)

	balance, err = svc.AvailableBalance("XMR")
	require.NoError(t, err)
	require.Zero(t, balance)

	svc.Credit("BTC", 50_000)
	require.NoError(t, svc.Debit("BTC", 120_000))

	balance, err = svc.AvailableBalance("BTC")
	require.NoError(t, err)
	require.Equal(t, uint64(30_000), balance)

	require.Error(t, svc.Debit("BTC", 30_001))
}

func TestBroadcast(t *testing.T) {
	t.Parallel()

	svc := wallet.NewService(nil)

	// Double-SHA256 of 0xdeadbeef, byte-reversed per bitcoin convention.
	txid, err := svc.Broadcast("deadbeef")
	require.NoError(t, err)
	require.Len(t, txid, 64)

	// Broadcasting is deterministic on the raw bytes.
	again, err := svc.Broadcast("deadbeef")
	require.NoError(t, err)
	require.Equal(t, txid, again)

	_, err = svc.Broadcast("not-hex")
	require.Error(t, err)

	_, err = svc.Broadcast("")
	require.Error(t, err)
}

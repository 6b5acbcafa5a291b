package ports

// Wallet is the collaborator holding the node's funds. The engine only
// reads balances for availability checks; reservation and spending are
// the wallet's own business, including its locking.
type Wallet interface {
	// AvailableBalance returns the spendable amount of the given
	// currency in its smallest unit.
	AvailableBalance(currencyCode string) (uint64, error)
	// Broadcast publishes a raw transaction and returns its txid.
	Broadcast(txHex string) (string, error)
}

// PeerChannel delivers protocol messages to the trading peer of a given
// trade.
type PeerChannel interface {
	Send(tradeId string, message []byte) error
}

package balance

import "github.com/iov-one/ledger"

// Topics of the token events.
const (
	TopicApprove  = "approve"
	TopicTransfer = "transfer"
	TopicBurn     = "burn"
	TopicMint     = "mint"
)

// ApproveEvent is emitted when an allowance is set.
func ApproveEvent(from, spender ledger.Address, amount int64, expiration uint64) ledger.Event {
	return ledger.NewEvent(TopicApprove).
		With("from", from).
		With("spender", spender).
		With("amount", amount).
		With("expiration", expiration)
}

// TransferEvent is emitted when tokens move between accounts.
func TransferEvent(from, to ledger.Address, amount int64) ledger.Event {
	return ledger.NewEvent(TopicTransfer).
		With("from", from).
		With("to", to).
		With("amount", amount)
}

// BurnEvent is emitted when tokens are destroyed.
func BurnEvent(from ledger.Address, amount int64) ledger.Event {
	return ledger.NewEvent(TopicBurn).
		With("from", from).
		With("amount", amount)
}

// MintEvent is emitted when the administrator creates tokens.
func MintEvent(admin, to ledger.Address, amount int64) ledger.Event {
	return ledger.NewEvent(TopicMint).
		With("admin", admin).
		With("to", to).
		With("amount", amount)
}

package multisig

import "github.com/iov-one/ledger"

const (
	TopicSetup   = "setup_multisig"
	TopicPropose = "propose_multisig_transaction"
	TopicApprove = "approve_multisig_transaction"
	TopicExecute = "execute_multisig_transaction"
)

func SetupEvent(admin ledger.Address, owners int, threshold uint32) ledger.Event {
	return ledger.NewEvent(TopicSetup).
		With("admin", admin).
		With("owners", owners).
		With("threshold", threshold)
}

func ProposeEvent(sender ledger.Address, id uint64, t *Transaction) ledger.Event {
	return ledger.NewEvent(TopicPropose).
		With("sender", sender).
		With("id", id).
		With("operation", t.Operation).
		With("target", t.Target).
		With("amount", t.Amount).
		With("expiration", t.Expiration)
}

func ApproveEvent(sender ledger.Address, id uint64) ledger.Event {
	return ledger.NewEvent(TopicApprove).
		With("sender", sender).
		With("id", id)
}

func ExecuteEvent(id uint64, t *Transaction) ledger.Event {
	return ledger.NewEvent(TopicExecute).
		With("id", id).
		With("operation", t.Operation).
		With("target", t.Target).
		With("amount", t.Amount)
}

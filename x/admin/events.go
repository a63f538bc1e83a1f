package admin

import "github.com/iov-one/ledger"

const (
	TopicSetAdmin = "set_admin"
	TopicFreeze   = "freeze_account"
	TopicUnfreeze = "unfreeze_account"
)

// SetAdminEvent is emitted when the administrator is replaced.
func SetAdminEvent(admin, newAdmin ledger.Address) ledger.Event {
	return ledger.NewEvent(TopicSetAdmin).
		With("admin", admin).
		With("new_admin", newAdmin)
}

// FreezeEvent is emitted when an account is frozen or unfrozen.
func FreezeEvent(frozen bool, admin, account ledger.Address) ledger.Event {
	topic := TopicUnfreeze
	if frozen {
		topic = TopicFreeze
	}
	return ledger.NewEvent(topic).
		With("admin", admin).
		With("account", account)
}

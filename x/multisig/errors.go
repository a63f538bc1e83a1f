package multisig

import (
	"github.com/iov-one/ledger/errors"
)

// multisig takes 1200-1299
var (
	ErrEmptyOwnerList      = errors.Register(1200, "owner list is empty")
	ErrInvalidThreshold    = errors.Register(1201, "invalid threshold")
	ErrNotAnOwner          = errors.Register(1202, "not a multisig owner")
	ErrTransactionNotFound = errors.Register(1203, "transaction not found")
	ErrAlreadyExecuted     = errors.Register(1204, "transaction already executed")
	ErrTransactionExpired  = errors.Register(1205, "transaction expired")
	ErrUnknownOperation    = errors.Register(1206, "unknown operation")
	ErrNotConfigured       = errors.Register(1207, "multisig not configured")
)

package admin

import "github.com/iov-one/ledger/errors"

// x/admin reserves 1100 ~ 1199.
var (
	ErrAlreadyInitialized = errors.Register(1100, "already initialized")
	ErrDecimalOverflow    = errors.Register(1101, "decimal must not be greater than 255")
)

package balance

import "github.com/iov-one/ledger/errors"

// x/balance reserves 1000 ~ 1099.
var (
	ErrNegativeAmount        = errors.Register(1000, "negative amount")
	ErrAccountFrozen         = errors.Register(1001, "account frozen")
	ErrInsufficientBalance   = errors.Register(1002, "insufficient balance")
	ErrInsufficientAllowance = errors.Register(1003, "insufficient allowance")
	ErrAllowanceExpired      = errors.Register(1004, "allowance expired")
)

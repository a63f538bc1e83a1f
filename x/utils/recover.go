package utils

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// Recovery converts a panic raised down the stack into errors.ErrPanic and
// logs it with the message path. The panic value is only logged, callers
// see the redacted error.
type Recovery struct{}

var _ ledger.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Checker) (res *ledger.CheckResult, err error) {
	defer logPanic(ctx, tx, &err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (res *ledger.DeliverResult, err error) {
	defer logPanic(ctx, tx, &err)
	return next.Deliver(ctx, db, tx)
}

func logPanic(ctx ledger.Context, tx ledger.Tx, err *error) {
	r := recover()
	if r == nil {
		return
	}
	*err = errors.Wrapf(errors.ErrPanic, "%v", r)
	ledger.GetLogger(ctx).Error("Recovered from panic",
		"path", ledger.GetPath(tx),
		"panic", r)
}

package utils

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// Savepoint runs the rest of the stack on a cache wrap that is written
// only if the call succeeded. Decorators placed above a savepoint keep
// their writes when a message handler fails, which is how signer nonces
// survive a rejected transaction.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ ledger.Decorator = Savepoint{}

// NewSavepoint returns a disabled savepoint. Enable it with OnCheck and
// OnDeliver.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck enables the savepoint for Check calls.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver enables the savepoint for Deliver calls.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	cache, ok := cacheWrap(db, s.onCheck)
	if !ok {
		return next.Check(ctx, db, tx)
	}
	res, err := next.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write savepoint")
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	cache, ok := cacheWrap(db, s.onDeliver)
	if !ok {
		return next.Deliver(ctx, db, tx)
	}
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write savepoint")
	}
	return res, nil
}

func cacheWrap(db ledger.KVStore, enabled bool) (ledger.KVCacheWrap, bool) {
	if !enabled {
		return nil, false
	}
	cdb, ok := db.(ledger.CacheableKVStore)
	if !ok {
		return nil, false
	}
	return cdb.CacheWrap(), true
}

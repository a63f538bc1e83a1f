/*
Package sigs provides basic authentication
middleware to verify the signatures on the transaction,
and maintain nonces for replay protection.
*/
package sigs

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// RegisterQuery will register this bucket as "/auth"
func RegisterQuery(qr ledger.QueryRouter) {
	qr.Register("/auth", NewBucket())
}

// Decorator verifies the signatures and adds them to the context
type Decorator struct {
	allowMissingSigs bool
}

var _ ledger.Decorator = Decorator{}

// NewDecorator returns a default authentication decorator,
// which appends the chainID before checking the signature,
// and requires at least one signature to be present
func NewDecorator() Decorator {
	return Decorator{
		allowMissingSigs: false,
	}
}

// AllowMissingSigs allows us to pass along items with no signatures
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

// Check verifies signatures before calling down the stack.
func (d Decorator) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	ctx, err := d.verify(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, store, tx)
}

// Deliver verifies signatures before calling down the stack.
func (d Decorator) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	ctx, err := d.verify(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) verify(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx) (ledger.Context, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, nil
	}

	// Nonces are bumped for all signers or for none.
	var wrap ledger.KVCacheWrap
	db := store
	if c, ok := store.(ledger.CacheableKVStore); ok {
		wrap = c.CacheWrap()
		db = wrap
	}
	chainID := ledger.GetChainID(ctx)
	signers, err := VerifyTxSignatures(db, stx, chainID)
	if err != nil {
		if wrap != nil {
			wrap.Discard()
		}
		return nil, errors.Wrap(err, "cannot verify signatures")
	}
	if wrap != nil {
		if err := wrap.Write(); err != nil {
			return nil, errors.Wrap(err, "write nonces")
		}
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), nil
}

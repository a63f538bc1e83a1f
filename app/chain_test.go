package app

import (
	"context"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest"
	"github.com/iov-one/ledger/x/utils"
	"github.com/stretchr/testify/assert"
)

// panicAtSequence panics once the sequence in the context reaches the
// configured value.
type panicAtSequence uint64

func (p panicAtSequence) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	if seq, _ := ledger.GetSequence(ctx); seq >= uint64(p) {
		panic("too high")
	}
	return next.Check(ctx, db, tx)
}

func (p panicAtSequence) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	if seq, _ := ledger.GetSequence(ctx); seq >= uint64(p) {
		panic("too high")
	}
	return next.Deliver(ctx, db, tx)
}

func TestChain(t *testing.T) {
	c1 := &ledgertest.Decorator{}
	c2 := &ledgertest.Decorator{}
	c3 := &ledgertest.Decorator{}
	h := &ledgertest.Handler{}

	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		utils.NewRecovery(),
		nil,
		c2,
		panicAtSequence(6),
		c3,
	).WithHandler(h)

	bg := context.Background()

	// make some calls, make sure it is fine
	_, err := stack.Check(ledger.WithSequence(bg, 1), nil, &ledgertest.Tx{})
	assert.NoError(t, err)
	_, err = stack.Deliver(ledger.WithSequence(bg, 4), nil, &ledgertest.Tx{})
	assert.NoError(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// now, let's trigger a panic
	ctx := ledger.WithSequence(bg, 8)
	_, err = stack.Check(ctx, nil, &ledgertest.Tx{})
	assert.True(t, errors.ErrPanic.Is(err))
	_, err = stack.Deliver(ctx, nil, &ledgertest.Tx{})
	assert.True(t, errors.ErrPanic.Is(err))

	assert.Equal(t, 4, c1.CallCount())
	assert.Equal(t, 4, c2.CallCount())
	// the panic happens before c3 is reached
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

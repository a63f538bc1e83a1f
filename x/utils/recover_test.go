package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest"
	"github.com/iov-one/ledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestRecovery(t *testing.T) {
	var h panicHandler
	r := NewRecovery()

	var logs bytes.Buffer
	ctx := ledger.WithLogger(context.Background(), log.NewTMLogger(&logs))
	db := store.MemStore()
	tx := &ledgertest.Tx{Msg: &ledgertest.Msg{RoutePath: "balance/burn"}}

	assert.Panics(t, func() { h.Check(ctx, db, tx) })
	assert.Panics(t, func() { h.Deliver(ctx, db, tx) })

	_, err := r.Check(ctx, db, tx, h)
	assert.True(t, errors.ErrPanic.Is(err))

	_, err = r.Deliver(ctx, db, tx, h)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, logs.String(), "path=balance/burn")
	assert.Contains(t, logs.String(), "panic=\"deliver panic\"")

	// A missing transaction must not panic again while logging.
	_, err = r.Deliver(context.Background(), db, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))
}

func TestRecoveryPassesResult(t *testing.T) {
	h := &ledgertest.Handler{DeliverResult: ledger.DeliverResult{Log: "ok"}}
	res, err := NewRecovery().Deliver(context.Background(), store.MemStore(), &ledgertest.Tx{}, h)
	assert.NoError(t, err)
	assert.Equal(t, "ok", res.Log)
}

type panicHandler struct{}

var _ ledger.Handler = panicHandler{}

func (panicHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	panic("check panic")
}

func (panicHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	panic("deliver panic")
}

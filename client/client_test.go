package client

import (
	"context"
	"testing"

	"github.com/iov-one/ledger"
	ledgerd "github.com/iov-one/ledger/cmd/ledgerd/app"
	"github.com/iov-one/ledger/crypto"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest"
	"github.com/iov-one/ledger/x/admin"
	"github.com/iov-one/ledger/x/balance"
	"github.com/iov-one/ledger/x/multisig"
	"github.com/iov-one/ledger/x/sigs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	kv, err := ledgerd.CommitKVStore("")
	require.NoError(t, err)
	a, err := ledgerd.Application(kv, nil)
	require.NoError(t, err)
	require.NoError(t, a.InitChain("client-test", ledger.Options{}))
	return NewClient(a)
}

func addr(s crypto.Signer) ledger.Address {
	return s.PublicKey().Address()
}

func TestTokenOperations(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	adm, u1, u2, u3 := ledgertest.NewKey(), ledgertest.NewKey(), ledgertest.NewKey(), ledgertest.NewKey()

	_, err := c.Metadata(ctx)
	require.True(t, errors.ErrNotFound.Is(err), "got %+v", err)

	require.NoError(t, c.Initialize(ctx, u1, addr(adm), admin.Metadata{Decimal: 7, Name: "Name", Symbol: "SYM"}))
	err = c.Initialize(ctx, u1, addr(u1), admin.Metadata{})
	require.True(t, admin.ErrAlreadyInitialized.Is(err), "got %+v", err)
	err = c.Initialize(ctx, u1, addr(u1), admin.Metadata{Decimal: 256})
	require.True(t, admin.ErrAlreadyInitialized.Is(err), "got %+v", err)

	decimals, err := c.Decimals(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), decimals)
	name, err := c.Name(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Name", name)
	symbol, err := c.Symbol(ctx)
	require.NoError(t, err)
	assert.Equal(t, "SYM", symbol)
	got, err := c.Admin(ctx)
	require.NoError(t, err)
	assert.Equal(t, addr(adm), got)

	require.NoError(t, c.Mint(ctx, adm, addr(u1), 1000))
	require.NoError(t, c.Approve(ctx, u2, addr(u3), 500, 200))
	require.NoError(t, c.Transfer(ctx, u1, addr(u2), 600))
	require.NoError(t, c.TransferFrom(ctx, u3, addr(u2), addr(u1), 400))

	cases := map[string]struct {
		account ledger.Address
		want    int64
	}{
		"u1": {addr(u1), 800},
		"u2": {addr(u2), 200},
		"u3": {addr(u3), 0},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			b, err := c.Balance(ctx, tc.account)
			require.NoError(t, err)
			assert.Equal(t, tc.want, b)
		})
	}
	allowance, err := c.Allowance(ctx, addr(u2), addr(u3))
	require.NoError(t, err)
	assert.Equal(t, int64(100), allowance)

	require.NoError(t, c.BurnFrom(ctx, u3, addr(u2), 100))
	allowance, err = c.Allowance(ctx, addr(u2), addr(u3))
	require.NoError(t, err)
	assert.Equal(t, int64(0), allowance)
	require.NoError(t, c.Burn(ctx, u1, 800))

	require.NoError(t, c.Freeze(ctx, adm, addr(u2)))
	frozen, err := c.IsFrozen(ctx, addr(u2))
	require.NoError(t, err)
	assert.True(t, frozen)
	err = c.Transfer(ctx, u2, addr(u1), 1)
	require.True(t, balance.ErrAccountFrozen.Is(err), "got %+v", err)
	require.NoError(t, c.Unfreeze(ctx, adm, addr(u2)))
	require.NoError(t, c.Transfer(ctx, u2, addr(u1), 100))

	require.NoError(t, c.SetAdmin(ctx, adm, addr(u3)))
	err = c.Mint(ctx, adm, addr(u1), 1)
	require.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)
	require.NoError(t, c.Mint(ctx, u3, addr(u1), 1))
}

func TestMultisigOperations(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	adm, o1, o2, target := ledgertest.NewKey(), ledgertest.NewKey(), ledgertest.NewKey(), ledgertest.NewKey()

	require.NoError(t, c.Initialize(ctx, adm, addr(adm), admin.Metadata{}))
	_, err := c.MultisigConfig(ctx)
	require.True(t, multisig.ErrNotConfigured.Is(err), "got %+v", err)

	require.NoError(t, c.SetupMultisig(ctx, adm, []ledger.Address{addr(o1), addr(o2)}, 2))
	conf, err := c.MultisigConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), conf.Threshold)
	assert.Len(t, conf.Owners, 2)

	id, err := c.Propose(ctx, o1, multisig.OpMint, addr(target), 70, 1000)
	require.NoError(t, err)
	approvals, err := c.Approvals(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []ledger.Address{addr(o1)}, approvals)

	executed, err := c.ApproveMultisig(ctx, o1, id)
	require.NoError(t, err)
	assert.False(t, executed)

	executed, err = c.ApproveMultisig(ctx, o2, id, adm)
	require.NoError(t, err)
	assert.True(t, executed)

	tx, err := c.Transaction(ctx, id)
	require.NoError(t, err)
	assert.True(t, tx.Executed)
	b, err := c.Balance(ctx, addr(target))
	require.NoError(t, err)
	assert.Equal(t, int64(70), b)

	_, err = c.Transaction(ctx, id+1)
	require.True(t, multisig.ErrTransactionNotFound.Is(err), "got %+v", err)
}

func TestCancelledContext(t *testing.T) {
	c := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Mint(ctx, ledgertest.NewKey(), ledgertest.RandomAddr(t), 1)
	require.True(t, errors.ErrState.Is(err), "got %+v", err)
}

func TestRejectedTransactionCannotBeReplayed(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	adm, u1, u2 := ledgertest.NewKey(), ledgertest.NewKey(), ledgertest.NewKey()
	require.NoError(t, c.Initialize(ctx, adm, addr(adm), admin.Metadata{}))

	tx, err := c.SignTx(ctx, &balance.TransferMsg{From: addr(u1), To: addr(u2), Amount: 50}, u1)
	require.NoError(t, err)
	_, err = c.CommitTx(ctx, tx)
	require.True(t, balance.ErrInsufficientBalance.Is(err), "got %+v", err)

	nonce, err := c.NextNonce(ctx, addr(u1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), nonce)

	require.NoError(t, c.Mint(ctx, adm, addr(u1), 100))

	// The same signed transaction would now succeed if its nonce was free.
	_, err = c.CommitTx(ctx, tx)
	require.True(t, sigs.ErrInvalidSequence.Is(err), "got %+v", err)

	cases := map[string]struct {
		account ledger.Address
		want    int64
	}{
		"u1": {addr(u1), 100},
		"u2": {addr(u2), 0},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			b, err := c.Balance(ctx, tc.account)
			require.NoError(t, err)
			assert.Equal(t, tc.want, b)
		})
	}
}

func TestCheckTxDoesNotConsumeNonce(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	adm := ledgertest.NewKey()
	require.NoError(t, c.Initialize(ctx, adm, addr(adm), admin.Metadata{}))

	tx, err := c.SignTx(ctx, &admin.MintMsg{To: addr(adm), Amount: 5}, adm)
	require.NoError(t, err)
	_, err = c.CheckTx(ctx, tx)
	require.NoError(t, err)

	b, err := c.Balance(ctx, addr(adm))
	require.NoError(t, err)
	assert.Equal(t, int64(0), b)

	// The checked transaction can still be delivered.
	_, err = c.CommitTx(ctx, tx)
	require.NoError(t, err)
	b, err = c.Balance(ctx, addr(adm))
	require.NoError(t, err)
	assert.Equal(t, int64(5), b)
}

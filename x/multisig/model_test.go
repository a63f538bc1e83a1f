package multisig

import (
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/ledgertest"
	"github.com/iov-one/ledger/orm"
	"github.com/iov-one/ledger/store"
	"github.com/stretchr/testify/require"
)

func TestTransactionBucket(t *testing.T) {
	db := store.MemStore()
	b := NewTransactionBucket()
	target := ledgertest.RandomAddr(t)

	total, err := b.Total(db)
	require.NoError(t, err)
	require.Equal(t, uint64(0), total)

	for want := uint64(0); want < 3; want++ {
		id, err := b.Create(db, &Transaction{Operation: OpMint, Target: target, Amount: int64(want)})
		require.NoError(t, err)
		require.Equal(t, want, id)
	}
	total, err = b.Total(db)
	require.NoError(t, err)
	require.Equal(t, uint64(3), total)

	got, err := b.GetTransaction(db, 2)
	require.NoError(t, err)
	require.Equal(t, int64(2), got.Amount)
	require.False(t, got.Executed)

	_, err = b.GetTransaction(db, 3)
	require.True(t, ErrTransactionNotFound.Is(err))

	// Invalid transactions do not consume an id.
	_, err = b.Create(db, &Transaction{Target: target})
	require.True(t, ErrUnknownOperation.Is(err))
	total, err = b.Total(db)
	require.NoError(t, err)
	require.Equal(t, uint64(3), total)
}

func TestApprovalBucket(t *testing.T) {
	db := store.MemStore()
	b := NewApprovalBucket()
	alice := ledgertest.RandomAddr(t)
	bob := ledgertest.RandomAddr(t)

	a, err := b.GetApprovals(db, 7)
	require.NoError(t, err)
	require.Empty(t, a.Owners)

	_, err = b.Approve(db, 7, alice)
	require.NoError(t, err)
	_, err = b.Approve(db, 7, alice)
	require.NoError(t, err)
	a, err = b.Approve(db, 7, bob)
	require.NoError(t, err)
	require.Equal(t, []ledger.Address{alice, bob}, a.Owners)

	a, err = b.GetApprovals(db, 7)
	require.NoError(t, err)
	require.Len(t, a.Owners, 2)
	require.True(t, a.Has(bob))

	models, err := b.Query(db, ledger.KeyQueryMod, orm.EncodeSequence(7))
	require.NoError(t, err)
	require.Len(t, models, 1)
}

func TestConfiguration(t *testing.T) {
	db := store.MemStore()
	alice := ledgertest.RandomAddr(t)

	_, err := LoadConfiguration(db)
	require.True(t, ErrNotConfigured.Is(err))

	err = SaveConfiguration(db, &Configuration{Owners: []ledger.Address{alice}, Threshold: 2})
	require.True(t, ErrInvalidThreshold.Is(err))

	require.NoError(t, SaveConfiguration(db, &Configuration{Owners: []ledger.Address{alice}, Threshold: 1, Required: true}))
	c, err := LoadConfiguration(db)
	require.NoError(t, err)
	require.True(t, c.IsOwner(alice))
	require.False(t, c.IsOwner(ledgertest.RandomAddr(t)))
	require.True(t, c.Required)
}

package sigs

import (
	"testing"

	"github.com/iov-one/ledger/crypto"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserModel(t *testing.T) {
	kv := store.MemStore()

	bucket := NewBucket()
	pub := crypto.GenPrivKeyEd25519().PublicKey()
	addr := pub.Address()

	// load fail
	user, err := bucket.Get(kv, addr)
	require.NoError(t, err)
	assert.Nil(t, user)

	// create
	user, err = bucket.GetOrCreate(kv, pub)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NoError(t, user.Validate())
	assert.Equal(t, int64(0), user.Sequence)

	// set sequence
	assert.Error(t, user.CheckAndIncrementSequence(5))
	assert.NoError(t, user.CheckAndIncrementSequence(0))
	assert.Error(t, user.CheckAndIncrementSequence(0))
	assert.NoError(t, user.CheckAndIncrementSequence(1))
	assert.Equal(t, int64(2), user.Sequence)

	// save and load
	require.NoError(t, bucket.Save(kv, user))
	user2, err := bucket.Get(kv, addr)
	require.NoError(t, err)
	require.NotNil(t, user2)
	assert.Equal(t, int64(2), user2.Sequence)
	assert.Equal(t, pub.Ed25519, user2.Pubkey.Ed25519)

	nonce, err := NextNonce(kv, addr)
	require.NoError(t, err)
	assert.Equal(t, int64(2), nonce)
}

func TestUserValidation(t *testing.T) {
	var u UserData
	assert.True(t, errors.ErrEmpty.Is(u.Validate()))

	u.Pubkey = crypto.GenPrivKeyEd25519().PublicKey()
	assert.NoError(t, u.Validate())

	u.Sequence = -30
	assert.True(t, ErrInvalidSequence.Is(u.Validate()))
	u.Sequence = 17
	assert.NoError(t, u.Validate())
}

func TestSequenceOverflow(t *testing.T) {
	u := UserData{Sequence: (1 << 53) - 1}
	err := u.CheckAndIncrementSequence((1 << 53) - 1)
	assert.True(t, errors.ErrOverflow.Is(err))
}

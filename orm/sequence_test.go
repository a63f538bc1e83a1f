package orm

import (
	"bytes"
	"testing"

	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	cases := map[string]struct {
		increments int
	}{
		"single":   {increments: 1},
		"a few":    {increments: 11},
		"over 255": {increments: 300},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			s := NewSequence("test", "id")

			count, err := s.Count(db)
			require.NoError(t, err)
			assert.Equal(t, uint64(0), count)

			var prev []byte
			for i := 0; i < tc.increments; i++ {
				raw, err := s.NextVal(db)
				require.NoError(t, err)
				val, err := DecodeSequence(raw)
				require.NoError(t, err)
				// the first value is zero and each is one more
				assert.Equal(t, uint64(i), val)
				if prev != nil {
					assert.Equal(t, 1, bytes.Compare(raw, prev))
				}
				prev = raw
			}

			count, err = s.Count(db)
			require.NoError(t, err)
			assert.Equal(t, uint64(tc.increments), count)
		})
	}
}

func TestSequencesAreIndependent(t *testing.T) {
	db := store.MemStore()
	a := NewSequence("multisig", "total_transfers")
	b := NewSequence("other", "total_transfers")

	v, err := a.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)
	v, err = a.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)

	v, err = b.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)

	raw, err := db.Get([]byte("_s.multisig:total_transfers"))
	require.NoError(t, err)
	assert.Equal(t, EncodeSequence(2), raw)
}

func TestSequenceOverflow(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("test", "id")
	require.NoError(t, db.Set([]byte("_s.test:id"), EncodeSequence(^uint64(0))))
	_, err := s.NextInt(db)
	assert.True(t, errors.ErrOverflow.Is(err))
}

func TestDecodeSequence(t *testing.T) {
	_, err := DecodeSequence([]byte{1, 2})
	assert.True(t, errors.ErrInput.Is(err))
	v, err := DecodeSequence(nil)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), v)
}

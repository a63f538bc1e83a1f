package orm

import (
	"encoding/binary"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// Sequence maintains a counter, and generates a
// series of keys. Each key is greater than the last,
// both by value as well as bytes.Compare() on the encoded form.
//
// The first value handed out is 0.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is using following pattern
// to construct a key:
//
//	_s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{
		id: []byte(id),
	}
}

// NextVal returns the next unused value as 8 bytes and increments the
// sequence.
func (s *Sequence) NextVal(db ledger.KVStore) ([]byte, error) {
	val, err := s.NextInt(db)
	if err != nil {
		return nil, err
	}
	return EncodeSequence(val), nil
}

// NextInt returns the next unused value and increments the sequence.
func (s *Sequence) NextInt(db ledger.KVStore) (uint64, error) {
	val, err := s.Count(db)
	if err != nil {
		return 0, err
	}
	if val == ^uint64(0) {
		return 0, errors.Wrap(errors.ErrOverflow, "sequence exhausted")
	}
	if err := db.Set(s.id, EncodeSequence(val+1)); err != nil {
		return 0, errors.Wrap(err, "cannot store sequence")
	}
	return val, nil
}

// Count returns how many values were handed out so far. It is also the
// value that will be returned by the next NextInt call. This method does
// not modify the sequence state.
func (s *Sequence) Count(db ledger.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, errors.Wrap(err, "cannot load sequence")
	}
	return DecodeSequence(raw)
}

// DecodeSequence reads the 8 bytes big endian encoded value. Nil decodes
// to zero.
func DecodeSequence(bz []byte) (uint64, error) {
	if bz == nil {
		return 0, nil
	}
	if err := ValidateSequence(bz); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(bz), nil
}

// EncodeSequence returns the 8 bytes big endian representation of the
// value. Encoded values sort the same way as numbers.
func EncodeSequence(val uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}

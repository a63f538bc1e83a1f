package store

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/iov-one/ledger/errors"
)

// MemCommitStore is an in-memory CommitKVStore. It keeps no history, each
// commit only increments the version and computes a digest of the whole
// state. Use it in tests and for a throwaway ledger.
type MemCommitStore struct {
	state   CacheableKVStore
	version int64
	hash    []byte
}

var _ CommitKVStore = (*MemCommitStore)(nil)

// NewMemCommitStore returns an empty store at version 0.
func NewMemCommitStore() *MemCommitStore {
	return &MemCommitStore{state: MemStore()}
}

// Get returns the value at last written state.
func (m *MemCommitStore) Get(key []byte) ([]byte, error) {
	return m.state.Get(key)
}

// Has checks if the key exists in the last written state.
func (m *MemCommitStore) Has(key []byte) (bool, error) {
	return m.state.Has(key)
}

// Iterator over the last written state.
func (m *MemCommitStore) Iterator(start, end []byte) (Iterator, error) {
	return m.state.Iterator(start, end)
}

// ReverseIterator over the last written state.
func (m *MemCommitStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return m.state.ReverseIterator(start, end)
}

// CacheWrap returns a scratch pad that is written back to this store.
func (m *MemCommitStore) CacheWrap() KVCacheWrap {
	return m.state.CacheWrap()
}

// Commit bumps the version and computes the state digest.
func (m *MemCommitStore) Commit() (CommitID, error) {
	it, err := m.state.Iterator(nil, nil)
	if err != nil {
		return CommitID{}, errors.Wrap(err, "iterator")
	}
	all, err := ReadAll(it)
	if err != nil {
		return CommitID{}, err
	}

	h := sha256.New()
	var size [8]byte
	for _, kv := range all {
		binary.BigEndian.PutUint64(size[:], uint64(len(kv.Key)))
		h.Write(size[:])
		h.Write(kv.Key)
		binary.BigEndian.PutUint64(size[:], uint64(len(kv.Value)))
		h.Write(size[:])
		h.Write(kv.Value)
	}
	m.version++
	m.hash = h.Sum(nil)
	return m.LatestVersion()
}

// LoadLatestVersion is a noop, there is nothing to load.
func (m *MemCommitStore) LoadLatestVersion() error {
	return nil
}

// LatestVersion returns the last commit information.
func (m *MemCommitStore) LatestVersion() (CommitID, error) {
	return CommitID{Version: m.version, Hash: m.hash}, nil
}

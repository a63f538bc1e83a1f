package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/ledger/ledgertest/assert"
	"github.com/iov-one/ledger/store"
)

// makeBase returns the base layer
func makeBase() (store.CacheableKVStore, func()) {
	commit, close := makeCommitStore()
	return commit.Adapter(), close
}

func makeCommitStore() (CommitStore, func()) {
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	if err != nil {
		panic(err)
	}
	commit, err := NewCommitStore(tmpDir, "base")
	if err != nil {
		panic(err)
	}
	close := func() {
		commit.Close()
		os.RemoveAll(tmpDir)
	}
	return commit, close
}

var suite = store.NewTestSuite(makeBase)

func TestIavlGetSet(t *testing.T)         { suite.GetSet(t) }
func TestIavlNestedRollback(t *testing.T) { suite.NestedRollback(t) }
func TestIavlCacheConflicts(t *testing.T) { suite.CacheConflicts(t) }
func TestIavlIterator(t *testing.T)       { suite.Iterator(t) }

func TestCommitAndReload(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "iavl-commit-")
	assert.Nil(t, err)
	defer os.RemoveAll(tmpDir)

	db, err := NewCommitStore(tmpDir, "ledger")
	assert.Nil(t, err)
	assert.Nil(t, db.LoadLatestVersion())

	cache := db.CacheWrap()
	assert.Nil(t, cache.Set([]byte("acct:alice"), []byte("100")))
	assert.Nil(t, cache.Set([]byte("acct:bob"), []byte("50")))
	assert.Nil(t, cache.Write())

	id, err := db.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)

	// a discarded cache leaves no trace
	cache = db.CacheWrap()
	assert.Nil(t, cache.Delete([]byte("acct:alice")))
	cache.Discard()

	id2, err := db.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), id2.Version)
	assert.Equal(t, id.Hash, id2.Hash)
	db.Close()

	// open again and find the committed state
	db, err = NewCommitStore(tmpDir, "ledger")
	assert.Nil(t, err)
	defer db.Close()
	assert.Nil(t, db.LoadLatestVersion())
	latest, err := db.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, id2, latest)

	val, err := db.Get([]byte("acct:alice"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("100"), val)

	it, err := db.ReverseIterator(nil, nil)
	assert.Nil(t, err)
	all, err := store.ReadAll(it)
	assert.Nil(t, err)
	assert.Equal(t, []store.Model{
		store.Pair([]byte("acct:bob"), []byte("50")),
		store.Pair([]byte("acct:alice"), []byte("100")),
	}, all)
}

func TestMemCommitStore(t *testing.T) {
	db := NewMemCommitStore()
	cache := db.CacheWrap()
	assert.Nil(t, cache.Set([]byte("a"), []byte("1")))
	assert.Nil(t, cache.Write())
	id, err := db.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
	has, err := db.Has([]byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, true, has)
}

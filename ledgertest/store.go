package ledgertest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/store"
	"github.com/iov-one/ledger/store/iavl"
)

// CommitKVStore returns a store instance that is using a filesystem backend
// engine to store the data.
// This implementation should be used instead of MemStore when you want the
// exact same storage implementation as the production instance is using.
func CommitKVStore(t testing.TB) (db ledger.CommitKVStore, cleanup func()) {
	t.Helper()
	dbpath, err := ioutil.TempDir("", "ledgertest")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}

	cs, err := iavl.NewCommitStore(dbpath, "db")
	if err != nil {
		os.RemoveAll(dbpath)
		t.Fatalf("cannot open commit store: %s", err)
	}
	return cs, func() {
		cs.Close()
		os.RemoveAll(dbpath)
	}
}

// MemStore returns a fresh in memory store.
func MemStore() ledger.CacheableKVStore {
	return store.MemStore()
}

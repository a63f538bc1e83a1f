package store

import (
	"bytes"
	"testing"

	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest/assert"
)

// TestSuite runs the same KVStore checks against any store implementation.
// btree_test.go and iavl/adapter_test.go only provide the constructor.
type TestSuite struct {
	makeBase TestStoreConstructor
}

type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// account returns a key/value pair shaped like a stored balance.
func account(name, balance string) Model {
	return Pair([]byte("acct:"+name), []byte(balance))
}

// GetSet checks that cache wraps see the data below them, keep their own
// writes private until Write and drop them on Discard.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	alice, bob, carol := account("alice", "10"), account("bob", "20"), account("carol", "30")

	s.AssertGetHas(t, base, alice.Key, nil, false)
	assert.Nil(t, base.Set(alice.Key, alice.Value))
	s.AssertGetHas(t, base, alice.Key, alice.Value, true)

	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, alice.Key, alice.Value, true)
	assert.Nil(t, cache.Set(bob.Key, bob.Value))
	s.AssertGetHas(t, cache, bob.Key, bob.Value, true)
	s.AssertGetHas(t, base, bob.Key, nil, false)

	assert.Nil(t, cache.Write())
	s.AssertGetHas(t, base, alice.Key, alice.Value, true)
	s.AssertGetHas(t, base, bob.Key, bob.Value, true)

	discarded := base.CacheWrap()
	assert.Nil(t, discarded.Set(carol.Key, carol.Value))
	discarded.Discard()
	s.AssertGetHas(t, base, carol.Key, nil, false)

	deleting := base.CacheWrap()
	assert.Nil(t, deleting.Delete(alice.Key))
	s.AssertGetHas(t, base, alice.Key, alice.Value, true)
	assert.Nil(t, deleting.Write())
	s.AssertGetHas(t, base, alice.Key, nil, false)
	s.AssertGetHas(t, base, bob.Key, bob.Value, true)
}

// NestedRollback checks that an inner cache can be discarded while the
// outer one is still written. This is how a failed invocation is dropped
// without touching the changes of the previous ones.
func (s *TestSuite) NestedRollback(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	outer := base.CacheWrap()
	assert.Nil(t, outer.Set([]byte("acct:alice"), []byte("10")))

	inner := outer.CacheWrap()
	assert.Nil(t, inner.Set([]byte("acct:alice"), []byte("0")))
	assert.Nil(t, inner.Set([]byte("acct:bob"), []byte("10")))
	s.AssertGetHas(t, inner, []byte("acct:bob"), []byte("10"), true)
	inner.Discard()

	s.AssertGetHas(t, outer, []byte("acct:alice"), []byte("10"), true)
	s.AssertGetHas(t, outer, []byte("acct:bob"), nil, false)
	assert.Nil(t, outer.Write())

	s.AssertGetHas(t, base, []byte("acct:alice"), []byte("10"), true)
	s.AssertGetHas(t, base, []byte("acct:bob"), nil, false)
}

// CacheConflicts checks overwrites and deletes of values stored in the
// parent.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	cases := map[string]struct {
		parentOps  []Op
		childOps   []Op
		wantParent []Model // nil Value means missing
		wantChild  []Model
	}{
		"overwrite one, delete another, add a third": {
			parentOps:  []Op{SetOp([]byte("acct:a"), []byte("1")), SetOp([]byte("acct:b"), []byte("2"))},
			childOps:   []Op{SetOp([]byte("acct:a"), []byte("9")), SetOp([]byte("acct:c"), []byte("3")), DelOp([]byte("acct:b"))},
			wantParent: []Model{account("a", "1"), account("b", "2"), Pair([]byte("acct:c"), nil)},
			wantChild:  []Model{account("a", "9"), Pair([]byte("acct:b"), nil), account("c", "3")},
		},
		"delete then set again": {
			parentOps:  []Op{SetOp([]byte("acct:a"), []byte("1"))},
			childOps:   []Op{DelOp([]byte("acct:a")), SetOp([]byte("acct:a"), []byte("5"))},
			wantParent: []Model{account("a", "1")},
			wantChild:  []Model{account("a", "5")},
		},
		"delete a missing key": {
			childOps:   []Op{DelOp([]byte("acct:x"))},
			wantParent: []Model{Pair([]byte("acct:x"), nil)},
			wantChild:  []Model{Pair([]byte("acct:x"), nil)},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := s.makeBase()
			defer cleanup()

			for _, op := range tc.parentOps {
				assert.Nil(t, op.Apply(parent))
			}
			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				assert.Nil(t, op.Apply(child))
			}

			for _, q := range tc.wantParent {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
			for _, q := range tc.wantChild {
				s.AssertGetHas(t, child, q.Key, q.Value, q.Value != nil)
			}

			assert.Nil(t, child.Write())
			for _, q := range tc.wantChild {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
		})
	}
}

// Iterator checks ranged iteration over a cache wrap merged with its
// parent, in both directions.
func (s *TestSuite) Iterator(t *testing.T) {
	a, b, c, d := account("a", "1"), account("b", "2"), account("c", "3"), account("d", "4")
	a2, b2 := account("a", "10"), account("b", "20")

	cases := map[string]struct {
		parentOps []Op
		childOps  []Op
		queries   []rangeQuery
	}{
		"child only": {
			childOps: []Op{SetOp(c.Key, c.Value), SetOp(a.Key, a.Value), SetOp(b.Key, b.Value)},
			queries: []rangeQuery{
				{want: []Model{a, b, c}},
				{start: b.Key, end: c.Key, want: []Model{b}},
				{reverse: true, want: []Model{c, b, a}},
			},
		},
		"parent only": {
			parentOps: []Op{SetOp(a.Key, a.Value), SetOp(b.Key, b.Value), SetOp(c.Key, c.Value)},
			queries: []rangeQuery{
				{want: []Model{a, b, c}},
				{start: b.Key, want: []Model{b, c}},
				{end: b.Key, reverse: true, want: []Model{a}},
			},
		},
		"child and parent merged": {
			parentOps: []Op{SetOp(a.Key, a.Value), SetOp(c.Key, c.Value)},
			childOps:  []Op{SetOp(b.Key, b.Value), SetOp(d.Key, d.Value)},
			queries: []rangeQuery{
				{want: []Model{a, b, c, d}},
				{start: b.Key, end: d.Key, want: []Model{b, c}},
				{start: b.Key, reverse: true, want: []Model{d, c, b}},
			},
		},
		"child overwrites parent": {
			parentOps: []Op{SetOp(a.Key, a.Value), SetOp(b.Key, b.Value), SetOp(c.Key, c.Value)},
			childOps:  []Op{SetOp(a2.Key, a2.Value), SetOp(b2.Key, b2.Value), SetOp(d.Key, d.Value)},
			queries: []rangeQuery{
				{want: []Model{a2, b2, c, d}},
				{start: b.Key, end: d.Key, want: []Model{b2, c}},
				{reverse: true, want: []Model{d, c, b2, a2}},
			},
		},
		"child deletes are skipped": {
			parentOps: []Op{SetOp(a.Key, a.Value), SetOp(c.Key, c.Value), SetOp(d.Key, d.Value)},
			childOps:  []Op{DelOp(a.Key), DelOp(b.Key), DelOp(d.Key)},
			queries: []rangeQuery{
				{want: []Model{c}},
				{end: c.Key, want: nil},
				{reverse: true, want: []Model{c}},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()

			for _, op := range tc.parentOps {
				assert.Nil(t, op.Apply(base))
			}
			child := base.CacheWrap()
			for _, op := range tc.childOps {
				assert.Nil(t, op.Apply(child))
			}
			for _, q := range tc.queries {
				q.verify(t, child)
			}
		})
	}
}

func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

// rangeQuery is a single iteration over [start, end) and its expected
// result.
type rangeQuery struct {
	start, end []byte
	reverse    bool
	want       []Model
}

func (q rangeQuery) verify(t testing.TB, kv ReadOnlyKVStore) {
	t.Helper()
	var (
		it  Iterator
		err error
	)
	if q.reverse {
		it, err = kv.ReverseIterator(q.start, q.end)
	} else {
		it, err = kv.Iterator(q.start, q.end)
	}
	assert.Nil(t, err)

	for i, m := range q.want {
		key, value, err := it.Next()
		assert.Nil(t, err)
		if !bytes.Equal(m.Key, key) {
			t.Fatalf("want key %d to be %q, got %q", i, m.Key, key)
		}
		assert.Equal(t, m.Value, value)
	}
	if _, _, err := it.Next(); !errors.ErrIteratorDone.Is(err) {
		t.Fatalf("want ErrIteratorDone, got %+v", err)
	}
}

package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/ledger/errors"
)

// ascendRange returns all btree items within [start, end), in ascending
// order. A nil start or end means the range is not limited on that side.
func ascendRange(bt *btree.BTree, start, end []byte) []keyer {
	var items []keyer
	collect := func(item btree.Item) bool {
		items = append(items, item.(keyer))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	return items
}

// mergeItems combines sorted entries of the backing store with sorted
// items of the cache. When both contain a key, the cache wins. Deleted
// items hide the backing entry and are not returned.
func mergeItems(below []Model, above []keyer) []Model {
	res := make([]Model, 0, len(below)+len(above))
	i, j := 0, 0
	for i < len(below) || j < len(above) {
		var cmp int
		switch {
		case j >= len(above):
			cmp = -1
		case i >= len(below):
			cmp = 1
		default:
			cmp = bytes.Compare(below[i].Key, above[j].Key())
		}

		if cmp < 0 {
			res = append(res, below[i])
			i++
			continue
		}
		if cmp == 0 {
			i++
		}
		if item, ok := above[j].(setItem); ok {
			res = append(res, Pair(item.key, item.value))
		}
		j++
	}
	return res
}

// ReadAll consumes the iterator and returns all entries it yields. The
// iterator is released.
func ReadAll(it Iterator) ([]Model, error) {
	defer it.Release()

	var res []Model
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, Pair(key, value))
	}
}

package gconf

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// QueryHandler returns the serialized configuration of the package named
// by the query data. Only the key query mod is supported.
type QueryHandler struct{}

var _ ledger.QueryHandler = QueryHandler{}

// RegisterQuery will register the configuration store as "/gconf".
func RegisterQuery(qr ledger.QueryRouter) {
	qr.Register("/gconf", QueryHandler{})
}

func (QueryHandler) Query(db ledger.ReadOnlyKVStore, mod string, data []byte) ([]ledger.Model, error) {
	if mod != ledger.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	raw, err := db.Get(Key(string(data)))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return []ledger.Model{ledger.Pair(data, raw)}, nil
}

package orm

import (
	"bytes"
	"fmt"
	"reflect"
	"regexp"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// ModelBucket stores models of a single type under a common key prefix.
// It operates directly on the KVStore.
type ModelBucket interface {
	ledger.QueryHandler

	// One query the database for a single model instance. Lookup is done
	// by the primary key. Result is loaded into given destination model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db ledger.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given key exists, ErrNotFound
	// otherwise.
	Has(db ledger.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database. The model is validated first.
	Put(db ledger.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db ledger.KVStore, key []byte) error

	// DBKey returns the full key under which the model is stored.
	DBKey(key []byte) []byte
}

// NewModelBucket returns a ModelBucket instance that stores models of the
// same type as the example.
//
// Name must be 3 to 10 lowercase characters. All keys are prefixed with the
// name and a colon.
func NewModelBucket(name string, example Model) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	return &modelBucket{
		prefix: []byte(name + ":"),
		model:  reflect.TypeOf(example),
	}
}

type modelBucket struct {
	prefix []byte
	model  reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) DBKey(key []byte) []byte {
	return append(append([]byte{}, mb.prefix...), key...)
}

func (mb *modelBucket) One(db ledger.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != mb.model {
		return errors.Wrapf(errors.ErrType, "%v cannot be represented as %T", mb.model, dest)
	}
	raw, err := db.Get(mb.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot load from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	return Unmarshal(raw, dest)
}

func (mb *modelBucket) Has(db ledger.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot query the database")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%v not in the store", mb.model)
	}
	return nil
}

func (mb *modelBucket) Put(db ledger.KVStore, key []byte, m Model) error {
	if reflect.TypeOf(m) != mb.model {
		return errors.Wrapf(errors.ErrType, "cannot store %T in %v bucket", m, mb.model)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := Marshal(m)
	if err != nil {
		return err
	}
	if err := db.Set(mb.DBKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db ledger.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return db.Delete(mb.DBKey(key))
}

// Query implements ledger.QueryHandler. Returned keys do not contain the
// bucket prefix.
func (mb *modelBucket) Query(db ledger.ReadOnlyKVStore, mod string, data []byte) ([]ledger.Model, error) {
	switch mod {
	case ledger.KeyQueryMod:
		raw, err := db.Get(mb.DBKey(data))
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, nil
		}
		return []ledger.Model{ledger.Pair(data, raw)}, nil
	case ledger.PrefixQueryMod:
		start, end := PrefixRange(mb.DBKey(data))
		it, err := db.Iterator(start, end)
		if err != nil {
			return nil, err
		}
		defer it.Release()

		var res []ledger.Model
		for {
			key, value, err := it.Next()
			if errors.ErrIteratorDone.Is(err) {
				return res, nil
			}
			if err != nil {
				return nil, err
			}
			res = append(res, ledger.Pair(bytes.TrimPrefix(key, mb.prefix), value))
		}
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

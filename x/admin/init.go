package admin

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

const optKey = "admin"

// Genesis is the "admin" section of the genesis file.
type Genesis struct {
	Admin ledger.Address `json:"admin"`
	Metadata
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ ledger.Initializer = Initializer{}

// FromGenesis initializes the ledger if the genesis declares an
// administrator. A missing section leaves the ledger uninitialized so that
// the initialize message can be used instead.
func (Initializer) FromGenesis(opts ledger.Options, db ledger.KVStore) error {
	var g Genesis
	if err := opts.ReadOptions(optKey, &g); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if g.Admin == nil {
		return nil
	}
	if err := g.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	meta := g.Metadata
	return Initialize(db, g.Admin, &meta)
}

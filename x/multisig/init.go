package multisig

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

const optKey = "multisig"

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ ledger.Initializer = Initializer{}

// FromGenesis stores the owner configuration if the genesis declares one.
func (Initializer) FromGenesis(opts ledger.Options, kv ledger.KVStore) error {
	var g struct {
		Owners    []ledger.Address `json:"owners"`
		Threshold uint32           `json:"threshold"`
	}
	if err := opts.ReadOptions(optKey, &g); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if g.Owners == nil && g.Threshold == 0 {
		return nil
	}
	conf := Configuration{
		Owners:    g.Owners,
		Threshold: g.Threshold,
		Required:  true,
	}
	if err := SaveConfiguration(kv, &conf); err != nil {
		return errors.Wrap(err, "multisig configuration")
	}
	return nil
}

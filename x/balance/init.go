package balance

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

const optKey = "balances"

// GenesisAccount is used to parse the json from genesis file.
// Address is a ledger.Address, so it can be given in hex or bech32.
type GenesisAccount struct {
	Address ledger.Address `json:"address"`
	Balance int64          `json:"balance"`
	Frozen  bool           `json:"frozen,omitempty"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ ledger.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts ledger.Options, kv ledger.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	bucket := NewAccountBucket()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		a := Account{Balance: acct.Balance, Frozen: acct.Frozen}
		if err := bucket.Put(kv, acct.Address, &a); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}

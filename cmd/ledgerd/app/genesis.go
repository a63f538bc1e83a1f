package app

import (
	"encoding/json"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/app"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x/admin"
	"github.com/iov-one/ledger/x/balance"
)

// GenesisOptions describe the initial state of a new ledger.
type GenesisOptions struct {
	ChainID   string
	Admin     ledger.Address
	Metadata  admin.Metadata
	Accounts  []balance.GenesisAccount
	Owners    []ledger.Address
	Threshold uint32
}

// GenGenesis produces a genesis document for given options. The multisig
// section is included only if owners are declared.
func GenGenesis(o GenesisOptions) (*app.Genesis, error) {
	if !ledger.IsValidChainID(o.ChainID) {
		return nil, errors.Wrapf(errors.ErrInput, "invalid chain id: %q", o.ChainID)
	}
	state := make(ledger.Options)
	if err := setOption(state, "admin", admin.Genesis{Admin: o.Admin, Metadata: o.Metadata}); err != nil {
		return nil, err
	}
	accounts := o.Accounts
	if accounts == nil {
		accounts = []balance.GenesisAccount{}
	}
	if err := setOption(state, "balances", accounts); err != nil {
		return nil, err
	}
	if len(o.Owners) > 0 {
		ms := struct {
			Owners    []ledger.Address `json:"owners"`
			Threshold uint32           `json:"threshold"`
		}{o.Owners, o.Threshold}
		if err := setOption(state, "multisig", ms); err != nil {
			return nil, err
		}
	}
	return &app.Genesis{ChainID: o.ChainID, AppState: state}, nil
}

func setOption(opts ledger.Options, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "%s: %s", key, err)
	}
	opts[key] = raw
	return nil
}

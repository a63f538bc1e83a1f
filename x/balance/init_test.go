package balance

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest"
	"github.com/iov-one/ledger/ledgertest/assert"
	"github.com/iov-one/ledger/store"
)

func TestGenesis(t *testing.T) {
	addr := ledgertest.DecodeAddr(t, "0102030405060708090021222324252627282930")

	cases := map[string]struct {
		genesis     string
		wantErr     *errors.Error
		wantBalance int64
		wantFrozen  bool
	}{
		"no balances": {
			genesis: `{}`,
		},
		"unrelated options": {
			genesis: `{"foo": "bar"}`,
		},
		"hex address": {
			genesis:     `{"balances": [{"address": "0102030405060708090021222324252627282930", "balance": 1000}]}`,
			wantBalance: 1000,
		},
		"frozen account": {
			genesis:     `{"balances": [{"address": "hex:0102030405060708090021222324252627282930", "balance": 5, "frozen": true}]}`,
			wantBalance: 5,
			wantFrozen:  true,
		},
		"missing address": {
			genesis: `{"balances": [{"balance": 5}]}`,
			wantErr: errors.ErrInput,
		},
		"negative balance": {
			genesis: `{"balances": [{"address": "0102030405060708090021222324252627282930", "balance": -5}]}`,
			wantErr: ErrNegativeAmount,
		},
		"malformed": {
			genesis: `{"balances": {"address": 1}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts ledger.Options
			if err := json.Unmarshal([]byte(tc.genesis), &opts); err != nil {
				t.Fatalf("cannot unmarshal genesis: %s", err)
			}

			db := store.MemStore()
			err := Initializer{}.FromGenesis(opts, db)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)

			ctrl := NewController()
			got, err := ctrl.Balance(db, addr)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantBalance, got)
			frozen, err := ctrl.IsFrozen(db, addr)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantFrozen, frozen)
		})
	}
}

package admin

import (
	"context"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest"
	"github.com/iov-one/ledger/ledgertest/assert"
	"github.com/iov-one/ledger/orm"
	"github.com/iov-one/ledger/store"
	"github.com/iov-one/ledger/x/balance"
)

type testRouter map[string]ledger.Handler

func (r testRouter) Handle(path string, h ledger.Handler) {
	r[path] = h
}

func TestHandlers(t *testing.T) {
	alice := ledgertest.NewCondition()
	bob := ledgertest.NewCondition()
	auth := &ledgertest.CtxAuth{Key: "auth"}

	cases := map[string]struct {
		skipInit     bool
		signer       ledger.Condition
		msg          ledger.Msg
		wantCheckErr *errors.Error
		wantErr      *errors.Error
		wantTopics   []string
		wantAdmin    ledger.Condition
		wantBalance  int64 // of bob
		wantFrozen   bool  // bob
	}{
		"initialize": {
			skipInit:  true,
			msg:       &InitializeMsg{Admin: bob.Address(), Decimal: 7, Name: "Token", Symbol: "TKN"},
			wantAdmin: bob,
		},
		"initialize twice": {
			msg:          &InitializeMsg{Admin: bob.Address(), Decimal: 7, Name: "Token", Symbol: "TKN"},
			wantCheckErr: ErrAlreadyInitialized,
			wantErr:      ErrAlreadyInitialized,
			wantAdmin:    alice,
		},
		"initialize twice with too many decimals": {
			msg:          &InitializeMsg{Admin: bob.Address(), Decimal: 256},
			wantCheckErr: ErrAlreadyInitialized,
			wantErr:      ErrAlreadyInitialized,
			wantAdmin:    alice,
		},
		"initialize with too many decimals": {
			skipInit:     true,
			msg:          &InitializeMsg{Admin: bob.Address(), Decimal: 256},
			wantCheckErr: ErrDecimalOverflow,
			wantErr:      ErrDecimalOverflow,
		},
		"set admin": {
			signer:     alice,
			msg:        &SetAdminMsg{NewAdmin: bob.Address()},
			wantTopics: []string{TopicSetAdmin},
			wantAdmin:  bob,
		},
		"set admin signed by someone else": {
			signer:       bob,
			msg:          &SetAdminMsg{NewAdmin: bob.Address()},
			wantCheckErr: errors.ErrUnauthorized,
			wantErr:      errors.ErrUnauthorized,
			wantAdmin:    alice,
		},
		"set admin on an uninitialized ledger": {
			skipInit:     true,
			signer:       alice,
			msg:          &SetAdminMsg{NewAdmin: bob.Address()},
			wantCheckErr: errors.ErrNotFound,
			wantErr:      errors.ErrNotFound,
		},
		"mint": {
			signer:      alice,
			msg:         &MintMsg{To: bob.Address(), Amount: 1000},
			wantTopics:  []string{balance.TopicMint},
			wantAdmin:   alice,
			wantBalance: 1000,
		},
		"mint negative amount": {
			signer:       alice,
			msg:          &MintMsg{To: bob.Address(), Amount: -1},
			wantCheckErr: balance.ErrNegativeAmount,
			wantErr:      balance.ErrNegativeAmount,
			wantAdmin:    alice,
		},
		"mint signed by the receiver": {
			signer:       bob,
			msg:          &MintMsg{To: bob.Address(), Amount: 1},
			wantCheckErr: errors.ErrUnauthorized,
			wantErr:      errors.ErrUnauthorized,
			wantAdmin:    alice,
		},
		"freeze": {
			signer:     alice,
			msg:        &FreezeMsg{Account: bob.Address()},
			wantTopics: []string{TopicFreeze},
			wantAdmin:  alice,
			wantFrozen: true,
		},
		"freeze signed by someone else": {
			signer:       bob,
			msg:          &FreezeMsg{Account: bob.Address()},
			wantCheckErr: errors.ErrUnauthorized,
			wantErr:      errors.ErrUnauthorized,
			wantAdmin:    alice,
		},
		"unfreeze": {
			signer:     alice,
			msg:        &UnfreezeMsg{Account: bob.Address()},
			wantTopics: []string{TopicUnfreeze},
			wantAdmin:  alice,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctrl := balance.NewController()
			r := make(testRouter)
			RegisterRoutes(r, auth, ctrl)

			db := store.MemStore()
			if !tc.skipInit {
				meta := &Metadata{Decimal: 2, Name: "Test", Symbol: "TST"}
				assert.Nil(t, Initialize(db, alice.Address(), meta))
			}

			ctx := ledger.WithSequence(context.Background(), 1)
			if tc.signer != nil {
				ctx = auth.SetConditions(ctx, tc.signer)
			}
			tx := &ledgertest.Tx{Msg: tc.msg}

			h, ok := r[tc.msg.Path()]
			if !ok {
				t.Fatalf("no handler for %q", tc.msg.Path())
			}

			cache := db.CacheWrap()
			_, err := h.Check(ctx, cache, tx)
			if tc.wantCheckErr != nil {
				assert.IsErr(t, tc.wantCheckErr, err)
			} else {
				assert.Nil(t, err)
			}
			cache.Discard()

			cache = db.CacheWrap()
			res, err := h.Deliver(ctx, cache, tx)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				cache.Discard()
			} else {
				assert.Nil(t, err)
				assert.Nil(t, cache.Write())
				assert.Topics(t, res.Events, tc.wantTopics...)
			}

			admin, err := LoadAdmin(db)
			if tc.wantAdmin == nil {
				assert.IsErr(t, errors.ErrNotFound, err)
			} else {
				assert.Nil(t, err)
				assert.Equal(t, tc.wantAdmin.Address(), admin)
			}

			got, err := ctrl.Balance(db, bob.Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.wantBalance, got)
			frozen, err := ctrl.IsFrozen(db, bob.Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.wantFrozen, frozen)
		})
	}
}

func TestFreezeIsIdempotent(t *testing.T) {
	admin := ledgertest.NewCondition()
	account := ledgertest.RandomAddr(t)
	auth := &ledgertest.Auth{Signer: admin}
	ctrl := balance.NewController()
	db := store.MemStore()
	assert.Nil(t, Initialize(db, admin.Address(), &Metadata{}))

	h := NewFreezeHandler(auth, ctrl, true)
	tx := &ledgertest.Tx{Msg: &FreezeMsg{Account: account}}
	for i := 0; i < 2; i++ {
		res, err := h.Deliver(context.Background(), db, tx)
		assert.Nil(t, err)
		assert.Topics(t, res.Events, TopicFreeze)
	}
	frozen, err := ctrl.IsFrozen(db, account)
	assert.Nil(t, err)
	assert.Equal(t, true, frozen)

	// Freezing blocks transfers but still allows credits.
	mint := NewMintHandler(auth, ctrl)
	_, err = mint.Deliver(context.Background(), db, &ledgertest.Tx{Msg: &MintMsg{To: account, Amount: 5}})
	assert.Nil(t, err)
	err = balance.Transfer(db, ctrl, account, ledgertest.RandomAddr(t), 1)
	assert.IsErr(t, balance.ErrAccountFrozen, err)
}

func TestMintEventAttributes(t *testing.T) {
	admin := ledgertest.NewCondition()
	to := ledgertest.RandomAddr(t)
	auth := &ledgertest.Auth{Signer: admin}
	db := store.MemStore()
	assert.Nil(t, Initialize(db, admin.Address(), &Metadata{}))

	h := NewMintHandler(auth, balance.NewController())
	res, err := h.Deliver(context.Background(), db, &ledgertest.Tx{Msg: &MintMsg{To: to, Amount: 7}})
	assert.Nil(t, err)
	assert.Topics(t, res.Events, balance.TopicMint)
	assert.Attribute(t, res.Events[0], "admin", admin.Address().String())
	assert.Attribute(t, res.Events[0], "to", to.String())
	assert.Attribute(t, res.Events[0], "amount", "7")
}

func TestRegistryQuery(t *testing.T) {
	admin := ledgertest.RandomAddr(t)
	qr := ledger.NewQueryRouter()
	RegisterQuery(qr)
	h := qr.Handler("/admin")
	if h == nil {
		t.Fatal("query handler not registered")
	}

	db := store.MemStore()
	models, err := h.Query(db, ledger.KeyQueryMod, nil)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(models))

	assert.Nil(t, SaveAdmin(db, admin))
	models, err = h.Query(db, ledger.KeyQueryMod, nil)
	assert.Nil(t, err)
	if len(models) != 1 {
		t.Fatalf("want one model, got %d", len(models))
	}
	var r Registry
	assert.Nil(t, orm.Unmarshal(models[0].Value, &r))
	assert.Equal(t, admin, r.Admin)

	_, err = h.Query(db, ledger.PrefixQueryMod, nil)
	assert.IsErr(t, errors.ErrInput, err)
}

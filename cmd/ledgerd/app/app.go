/*
Package app links together all the various components
to construct the ledgerd application.
*/
package app

import (
	"path/filepath"
	"strings"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/app"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/gconf"
	"github.com/iov-one/ledger/store/iavl"
	"github.com/iov-one/ledger/x"
	"github.com/iov-one/ledger/x/admin"
	"github.com/iov-one/ledger/x/balance"
	"github.com/iov-one/ledger/x/multisig"
	"github.com/iov-one/ledger/x/sigs"
	"github.com/iov-one/ledger/x/utils"
	"github.com/prometheus/client_golang/prometheus"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle recovery, logging,
// metrics and signature verification. Metrics are collected only if a
// registerer is given. Handler writes are isolated by a savepoint below
// the signature check, so a rejected transaction still consumes the
// nonces of its signers and cannot be replayed.
func Chain(reg prometheus.Registerer) app.Decorators {
	var metrics ledger.Decorator
	if reg != nil {
		metrics = utils.NewMetrics(reg)
	}
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching all ledger messages.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	ctrl := balance.NewController()
	balance.RegisterRoutes(r, authFn, ctrl)
	admin.RegisterRoutes(r, authFn, ctrl)
	multisig.RegisterRoutes(r, authFn, ctrl)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/accounts", "/allowances", "/admin", "/auth",
// "/gconf", "/multisig/transactions" and "/multisig/approvals"
func QueryRouter() ledger.QueryRouter {
	r := ledger.NewQueryRouter()
	r.RegisterAll(
		balance.RegisterQuery,
		admin.RegisterQuery,
		multisig.RegisterQuery,
		sigs.RegisterQuery,
		gconf.RegisterQuery,
	)
	return r
}

// Messages returns the registry of all messages the ledger accepts.
func Messages() *app.MsgRegistry {
	return app.NewMsgRegistry(
		&admin.InitializeMsg{},
		&admin.SetAdminMsg{},
		&admin.MintMsg{},
		&admin.FreezeMsg{},
		&admin.UnfreezeMsg{},
		&balance.ApproveMsg{},
		&balance.TransferMsg{},
		&balance.TransferFromMsg{},
		&balance.BurnMsg{},
		&balance.BurnFromMsg{},
		&multisig.SetupMsg{},
		&multisig.ProposeMsg{},
		&multisig.ApproveMsg{},
	)
}

// Initializers returns the genesis loaders of all extensions.
func Initializers() ledger.Initializer {
	return app.ChainInitializers(
		admin.Initializer{},
		balance.Initializer{},
		multisig.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into app.NewApplication.
func Stack(reg prometheus.Registerer) ledger.Handler {
	authFn := Authenticator()
	return Chain(reg).WithHandler(Router(authFn))
}

// Application constructs the ledger application on top of given store.
// Metrics are registered with reg unless it is nil.
func Application(kv ledger.CommitKVStore, reg prometheus.Registerer) (*app.Application, error) {
	a, err := app.NewApplication(kv, Stack(reg), QueryRouter())
	if err != nil {
		return nil, err
	}
	return a.WithInit(Initializers()), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path. An empty path returns a memory backed store.
func CommitKVStore(dbPath string) (iavl.CommitStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return iavl.CommitStore{}, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}

/*
Package app contains the building blocks of a ledger application: a
router dispatching messages to handlers, decorator chains, the
transaction envelope and the Application that runs every transaction
against the committed store.
*/
package app

import (
	"context"
	"sync"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Application processes one transaction at a time. Every transaction is
// executed on a cache wrap of the committed store. A failed transaction
// writes back only what the handler stack chose to keep, so message
// handlers must run below a savepoint decorator (see x/utils.Savepoint)
// while authenticator state such as signer nonces is kept. Events are
// published only for successful transactions, after the write.
type Application struct {
	mu sync.Mutex

	store       ledger.CommitKVStore
	handler     ledger.Handler
	queries     ledger.QueryRouter
	initializer ledger.Initializer
	clock       ledger.Clock
	sink        ledger.EventSink
	logger      log.Logger

	// chainID is loaded from db in initialization
	// saved once in InitChain
	chainID string
}

// NewApplication loads the latest version of the store. The application
// must be initialized with InitChain before it can process transactions,
// unless the store already contains an initialized ledger.
func NewApplication(store ledger.CommitKVStore, handler ledger.Handler, queries ledger.QueryRouter) (*Application, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	chainID, err := loadChainID(store)
	if err != nil {
		return nil, err
	}
	return &Application{
		store:   store,
		handler: handler,
		queries: queries,
		sink:    ledger.NopSink{},
		logger:  log.NewNopLogger(),
		chainID: chainID,
	}, nil
}

// WithInit is used to set the init function we call
func (a *Application) WithInit(init ledger.Initializer) *Application {
	a.initializer = init
	return a
}

// WithClock sets the source of the ledger sequence. By default the
// sequence is the version that will be created by the next commit.
func (a *Application) WithClock(clock ledger.Clock) *Application {
	a.clock = clock
	return a
}

// WithSink sets where the events of delivered transactions are published.
func (a *Application) WithSink(sink ledger.EventSink) *Application {
	a.sink = sink
	return a
}

// WithLogger sets the logger on the Application and returns it,
// to make it easy to chain in initialization
func (a *Application) WithLogger(logger log.Logger) *Application {
	a.logger = logger
	return a
}

// ChainID returns the chain id or an empty string if the application was
// not initialized.
func (a *Application) ChainID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.chainID
}

// InitChain stores the chain id, loads the genesis state and commits it.
// It can be called only once for a given store.
func (a *Application) InitChain(chainID string, opts ledger.Options) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.chainID != "" {
		return errors.Wrapf(errors.ErrState, "already initialized for chain %s", a.chainID)
	}
	cache := a.store.CacheWrap()
	if err := saveChainID(cache, chainID); err != nil {
		cache.Discard()
		return err
	}
	if a.initializer != nil {
		if err := a.initializer.FromGenesis(opts, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "genesis")
		}
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write genesis")
	}
	if _, err := a.store.Commit(); err != nil {
		return errors.Wrap(err, "commit genesis")
	}
	a.chainID = chainID
	a.logger.Info("Chain initialized", "chain_id", chainID)
	return nil
}

// Check runs the transaction without persisting any change.
func (a *Application) Check(tx ledger.Tx) (*ledger.CheckResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx, err := a.context("check", tx)
	if err != nil {
		return nil, err
	}
	cache := a.store.CacheWrap()
	defer cache.Discard()
	return a.handler.Check(ctx, cache, tx)
}

// Deliver runs the transaction and persists the changes left by the
// handler stack. Failing to publish the events is logged but does not
// fail the transaction, the state change is already written.
func (a *Application) Deliver(tx ledger.Tx) (*ledger.DeliverResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx, err := a.context("deliver", tx)
	if err != nil {
		return nil, err
	}
	cache := a.store.CacheWrap()
	res, err := a.handler.Deliver(ctx, cache, tx)
	if err != nil {
		if werr := cache.Write(); werr != nil {
			return nil, errors.Wrap(werr, "write")
		}
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write")
	}
	if err := a.sink.Publish(ctx, res.Events...); err != nil {
		ledger.GetLogger(ctx).Error("Cannot publish events", "err", err)
	}
	return res, nil
}

// Commit persists all delivered transactions as a new version.
func (a *Application) Commit() (ledger.CommitID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id, err := a.store.Commit()
	if err != nil {
		return id, err
	}
	a.logger.Debug("Commit synced", "version", id.Version)
	return id, nil
}

// Query dispatches the read request to the handler registered for path.
func (a *Application) Query(path, mod string, data []byte) ([]ledger.Model, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	h := a.queries.Handler(path)
	if h == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "no query handler for %q", path)
	}
	return h.Query(a.store, mod, data)
}

// Sequence returns the ledger sequence the next transaction is processed
// at.
func (a *Application) Sequence() (uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.now()
}

func (a *Application) context(call string, tx ledger.Tx) (ledger.Context, error) {
	if a.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	seq, err := a.now()
	if err != nil {
		return nil, err
	}
	ctx := ledger.WithChainID(context.Background(), a.chainID)
	ctx = ledger.WithSequence(ctx, seq)
	ctx = ledger.WithLogger(ctx, a.logger)
	ctx = ledger.WithLogInfo(ctx, "call", call, "path", ledger.GetPath(tx), "seq", seq)
	return ctx, nil
}

func (a *Application) now() (uint64, error) {
	if a.clock != nil {
		return a.clock.Now(), nil
	}
	id, err := a.store.LatestVersion()
	if err != nil {
		return 0, errors.Wrap(err, "latest version")
	}
	return uint64(id.Version) + 1, nil
}

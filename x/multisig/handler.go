package multisig

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
	"github.com/iov-one/ledger/x"
	"github.com/iov-one/ledger/x/admin"
	"github.com/iov-one/ledger/x/balance"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r ledger.Registry, auth x.Authenticator, ctrl balance.Controller) {
	r.Handle(pathSetupMsg, NewSetupHandler(auth))
	r.Handle(pathProposeMsg, NewProposeHandler(auth))
	r.Handle(pathApproveMsg, NewApproveHandler(auth, ctrl))
}

// RegisterQuery registers the transaction and the approval buckets. The
// owner configuration is available through the gconf query handler under
// the "multisig" name.
func RegisterQuery(qr ledger.QueryRouter) {
	qr.Register("/multisig/transactions", NewTransactionBucket())
	qr.Register("/multisig/approvals", NewApprovalBucket())
}

// SetupHandler stores the owner configuration.
type SetupHandler struct {
	auth x.Authenticator
}

var _ ledger.Handler = SetupHandler{}

func NewSetupHandler(auth x.Authenticator) SetupHandler {
	return SetupHandler{auth: auth}
}

func (h SetupHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{}, nil
}

func (h SetupHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	adm, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf := Configuration{
		Owners:    msg.Owners,
		Threshold: msg.Threshold,
		Required:  true,
	}
	if err := SaveConfiguration(db, &conf); err != nil {
		return nil, errors.Wrap(err, "save configuration")
	}
	res := &ledger.DeliverResult{}
	res.Emit(SetupEvent(adm, len(msg.Owners), msg.Threshold))
	return res, nil
}

func (h SetupHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.Address, *SetupMsg, error) {
	var msg SetupMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	adm, err := admin.RequireAdmin(ctx, db, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return adm, &msg, nil
}

// requireOwner ensures the sender signed the transaction and is one of the
// registered owners.
func requireOwner(ctx ledger.Context, db ledger.ReadOnlyKVStore, auth x.Authenticator, sender ledger.Address) error {
	if err := x.RequireAddress(ctx, auth, sender, "sender"); err != nil {
		return err
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return err
	}
	if !conf.IsOwner(sender) {
		return errors.Wrapf(ErrNotAnOwner, "sender %s", sender)
	}
	return nil
}

// ProposeHandler creates a transaction approved by its proposer.
type ProposeHandler struct {
	auth      x.Authenticator
	txs       TransactionBucket
	approvals ApprovalBucket
}

var _ ledger.Handler = ProposeHandler{}

func NewProposeHandler(auth x.Authenticator) ProposeHandler {
	return ProposeHandler{
		auth:      auth,
		txs:       NewTransactionBucket(),
		approvals: NewApprovalBucket(),
	}
}

func (h ProposeHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{}, nil
}

// Deliver stores the transaction together with the proposer approval. The
// id of the new transaction is returned as the result data.
func (h ProposeHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	t := msg.Transaction()
	id, err := h.txs.Create(db, t)
	if err != nil {
		return nil, err
	}
	if _, err := h.approvals.Approve(db, id, msg.Sender); err != nil {
		return nil, err
	}
	res := &ledger.DeliverResult{Data: orm.EncodeSequence(id)}
	res.Emit(ProposeEvent(msg.Sender, id, t))
	return res, nil
}

func (h ProposeHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ProposeMsg, error) {
	var msg ProposeMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireOwner(ctx, db, h.auth, msg.Sender); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ApproveHandler records an owner approval and executes the transaction
// once the threshold is reached.
type ApproveHandler struct {
	auth      x.Authenticator
	txs       TransactionBucket
	approvals ApprovalBucket
	executor  Executor
}

var _ ledger.Handler = ApproveHandler{}

func NewApproveHandler(auth x.Authenticator, ctrl balance.Controller) ApproveHandler {
	return ApproveHandler{
		auth:      auth,
		txs:       NewTransactionBucket(),
		approvals: NewApprovalBucket(),
		executor:  NewExecutor(auth, ctrl),
	}
}

func (h ApproveHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{}, nil
}

func (h ApproveHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.approvals.Approve(db, msg.TransactionID, msg.Sender); err != nil {
		return nil, err
	}
	res := &ledger.DeliverResult{}
	res.Emit(ApproveEvent(msg.Sender, msg.TransactionID))

	events, err := h.executor.ExecuteIfApproved(ctx, db, msg.TransactionID)
	if err != nil {
		return nil, errors.Wrap(err, "execute")
	}
	res.Emit(events...)
	return res, nil
}

func (h ApproveHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ApproveMsg, error) {
	var msg ApproveMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireOwner(ctx, db, h.auth, msg.Sender); err != nil {
		return nil, err
	}
	t, err := h.txs.GetTransaction(db, msg.TransactionID)
	if err != nil {
		return nil, err
	}
	if t.Executed {
		return nil, errors.Wrapf(ErrAlreadyExecuted, "id %d", msg.TransactionID)
	}
	now, err := ledger.CurrentSequence(ctx)
	if err != nil {
		return nil, err
	}
	if ledger.IsExpired(now, t.Expiration) {
		return nil, errors.Wrapf(ErrTransactionExpired, "id %d", msg.TransactionID)
	}
	return &msg, nil
}

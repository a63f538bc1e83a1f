package balance

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r ledger.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(pathApproveMsg, NewApproveHandler(auth, ctrl))
	r.Handle(pathTransferMsg, NewTransferHandler(auth, ctrl))
	r.Handle(pathTransferFromMsg, NewTransferFromHandler(auth, ctrl))
	r.Handle(pathBurnMsg, NewBurnHandler(auth, ctrl))
	r.Handle(pathBurnFromMsg, NewBurnFromHandler(auth, ctrl))
}

// RegisterQuery will register the account bucket as "/accounts" and the
// allowance bucket as "/allowances".
func RegisterQuery(qr ledger.QueryRouter) {
	qr.Register("/accounts", NewAccountBucket())
	qr.Register("/allowances", NewAllowanceBucket())
}

// ApproveHandler sets an allowance on behalf of the owner.
type ApproveHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ ledger.Handler = ApproveHandler{}

func NewApproveHandler(auth x.Authenticator, ctrl Controller) ApproveHandler {
	return ApproveHandler{auth: auth, ctrl: ctrl}
}

func (h ApproveHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{}, nil
}

func (h ApproveHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	now, err := ledger.CurrentSequence(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.SetAllowance(db, now, msg.From, msg.Spender, msg.Amount, msg.Expiration); err != nil {
		return nil, errors.Wrap(err, "set allowance")
	}
	res := &ledger.DeliverResult{}
	res.Emit(ApproveEvent(msg.From, msg.Spender, msg.Amount, msg.Expiration))
	return res, nil
}

func (h ApproveHandler) validate(ctx ledger.Context, tx ledger.Tx) (*ApproveMsg, error) {
	var msg ApproveMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.From, "owner"); err != nil {
		return nil, err
	}
	return &msg, nil
}

// TransferHandler moves tokens out of the signer account.
type TransferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ ledger.Handler = TransferHandler{}

func NewTransferHandler(auth x.Authenticator, ctrl Controller) TransferHandler {
	return TransferHandler{auth: auth, ctrl: ctrl}
}

func (h TransferHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{}, nil
}

func (h TransferHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := Transfer(db, h.ctrl, msg.From, msg.To, msg.Amount); err != nil {
		return nil, err
	}
	res := &ledger.DeliverResult{}
	res.Emit(TransferEvent(msg.From, msg.To, msg.Amount))
	return res, nil
}

func (h TransferHandler) validate(ctx ledger.Context, tx ledger.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.From, "owner"); err != nil {
		return nil, err
	}
	return &msg, nil
}

// TransferFromHandler moves tokens using an allowance.
type TransferFromHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ ledger.Handler = TransferFromHandler{}

func NewTransferFromHandler(auth x.Authenticator, ctrl Controller) TransferFromHandler {
	return TransferFromHandler{auth: auth, ctrl: ctrl}
}

func (h TransferFromHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{}, nil
}

func (h TransferFromHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	now, err := ledger.CurrentSequence(ctx)
	if err != nil {
		return nil, err
	}
	if err := RequireNotFrozen(db, h.ctrl, msg.From); err != nil {
		return nil, err
	}
	if err := h.ctrl.SpendAllowance(db, now, msg.From, msg.Spender, msg.Amount); err != nil {
		return nil, err
	}
	if err := Transfer(db, h.ctrl, msg.From, msg.To, msg.Amount); err != nil {
		return nil, err
	}
	res := &ledger.DeliverResult{}
	res.Emit(TransferEvent(msg.From, msg.To, msg.Amount))
	return res, nil
}

func (h TransferFromHandler) validate(ctx ledger.Context, tx ledger.Tx) (*TransferFromMsg, error) {
	var msg TransferFromMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Spender, "spender"); err != nil {
		return nil, err
	}
	return &msg, nil
}

// BurnHandler destroys tokens of the signer account.
type BurnHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ ledger.Handler = BurnHandler{}

func NewBurnHandler(auth x.Authenticator, ctrl Controller) BurnHandler {
	return BurnHandler{auth: auth, ctrl: ctrl}
}

func (h BurnHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{}, nil
}

func (h BurnHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := RequireNotFrozen(db, h.ctrl, msg.From); err != nil {
		return nil, err
	}
	if err := h.ctrl.Spend(db, msg.From, msg.Amount); err != nil {
		return nil, err
	}
	res := &ledger.DeliverResult{}
	res.Emit(BurnEvent(msg.From, msg.Amount))
	return res, nil
}

func (h BurnHandler) validate(ctx ledger.Context, tx ledger.Tx) (*BurnMsg, error) {
	var msg BurnMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.From, "owner"); err != nil {
		return nil, err
	}
	return &msg, nil
}

// BurnFromHandler destroys tokens using an allowance.
type BurnFromHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ ledger.Handler = BurnFromHandler{}

func NewBurnFromHandler(auth x.Authenticator, ctrl Controller) BurnFromHandler {
	return BurnFromHandler{auth: auth, ctrl: ctrl}
}

func (h BurnFromHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{}, nil
}

func (h BurnFromHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	now, err := ledger.CurrentSequence(ctx)
	if err != nil {
		return nil, err
	}
	if err := RequireNotFrozen(db, h.ctrl, msg.From); err != nil {
		return nil, err
	}
	if err := h.ctrl.SpendAllowance(db, now, msg.From, msg.Spender, msg.Amount); err != nil {
		return nil, err
	}
	if err := h.ctrl.Spend(db, msg.From, msg.Amount); err != nil {
		return nil, err
	}
	res := &ledger.DeliverResult{}
	res.Emit(BurnEvent(msg.From, msg.Amount))
	return res, nil
}

func (h BurnFromHandler) validate(ctx ledger.Context, tx ledger.Tx) (*BurnFromMsg, error) {
	var msg BurnFromMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Spender, "spender"); err != nil {
		return nil, err
	}
	return &msg, nil
}

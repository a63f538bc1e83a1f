package admin

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x"
	"github.com/iov-one/ledger/x/balance"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r ledger.Registry, auth x.Authenticator, ctrl balance.Controller) {
	r.Handle(pathInitializeMsg, NewInitializeHandler())
	r.Handle(pathSetAdminMsg, NewSetAdminHandler(auth))
	r.Handle(pathMintMsg, NewMintHandler(auth, ctrl))
	r.Handle(pathFreezeMsg, NewFreezeHandler(auth, ctrl, true))
	r.Handle(pathUnfreezeMsg, NewFreezeHandler(auth, ctrl, false))
}

// RegisterQuery will register the administrator registry as "/admin".
// Token metadata is available through the gconf query handler under the
// "token" name.
func RegisterQuery(qr ledger.QueryRouter) {
	qr.Register("/admin", registryQuery{})
}

type registryQuery struct{}

func (registryQuery) Query(db ledger.ReadOnlyKVStore, mod string, data []byte) ([]ledger.Model, error) {
	if mod != ledger.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	raw, err := db.Get(RegistryKey)
	if err != nil || raw == nil {
		return nil, err
	}
	return []ledger.Model{ledger.Pair(RegistryKey, raw)}, nil
}

// InitializeHandler sets the administrator and the token metadata. No
// authorization is required, but it succeeds only once.
type InitializeHandler struct{}

var _ ledger.Handler = InitializeHandler{}

func NewInitializeHandler() InitializeHandler {
	return InitializeHandler{}
}

func (h InitializeHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	var msg InitializeMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := CanInitialize(db, msg.Metadata()); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{}, nil
}

func (h InitializeHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	var msg InitializeMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := Initialize(db, msg.Admin, msg.Metadata()); err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{}, nil
}

// SetAdminHandler replaces the administrator.
type SetAdminHandler struct {
	auth x.Authenticator
}

var _ ledger.Handler = SetAdminHandler{}

func NewSetAdminHandler(auth x.Authenticator) SetAdminHandler {
	return SetAdminHandler{auth: auth}
}

func (h SetAdminHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{}, nil
}

func (h SetAdminHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	admin, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := SaveAdmin(db, msg.NewAdmin); err != nil {
		return nil, errors.Wrap(err, "save administrator")
	}
	res := &ledger.DeliverResult{}
	res.Emit(SetAdminEvent(admin, msg.NewAdmin))
	return res, nil
}

func (h SetAdminHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.Address, *SetAdminMsg, error) {
	var msg SetAdminMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	admin, err := RequireAdmin(ctx, db, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return admin, &msg, nil
}

// MintHandler creates new tokens.
type MintHandler struct {
	auth x.Authenticator
	ctrl balance.Controller
}

var _ ledger.Handler = MintHandler{}

func NewMintHandler(auth x.Authenticator, ctrl balance.Controller) MintHandler {
	return MintHandler{auth: auth, ctrl: ctrl}
}

func (h MintHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{}, nil
}

func (h MintHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	admin, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Receive(db, msg.To, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "mint")
	}
	res := &ledger.DeliverResult{}
	res.Emit(balance.MintEvent(admin, msg.To, msg.Amount))
	return res, nil
}

func (h MintHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.Address, *MintMsg, error) {
	var msg MintMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	admin, err := RequireAdmin(ctx, db, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return admin, &msg, nil
}

// FreezeHandler sets or clears the frozen flag of an account.
type FreezeHandler struct {
	auth   x.Authenticator
	ctrl   balance.Controller
	freeze bool
}

var _ ledger.Handler = FreezeHandler{}

// NewFreezeHandler returns a handler of FreezeMsg when freeze is true and
// of UnfreezeMsg otherwise.
func NewFreezeHandler(auth x.Authenticator, ctrl balance.Controller, freeze bool) FreezeHandler {
	return FreezeHandler{auth: auth, ctrl: ctrl, freeze: freeze}
}

func (h FreezeHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{}, nil
}

func (h FreezeHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	admin, account, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.SetFrozen(db, account, h.freeze); err != nil {
		return nil, errors.Wrap(err, "set frozen")
	}
	res := &ledger.DeliverResult{}
	res.Emit(FreezeEvent(h.freeze, admin, account))
	return res, nil
}

func (h FreezeHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (ledger.Address, ledger.Address, error) {
	var account ledger.Address
	if h.freeze {
		var msg FreezeMsg
		if err := ledger.LoadMsg(tx, &msg); err != nil {
			return nil, nil, errors.Wrap(err, "load msg")
		}
		account = msg.Account
	} else {
		var msg UnfreezeMsg
		if err := ledger.LoadMsg(tx, &msg); err != nil {
			return nil, nil, errors.Wrap(err, "load msg")
		}
		account = msg.Account
	}
	admin, err := RequireAdmin(ctx, db, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return admin, account, nil
}

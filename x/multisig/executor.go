package multisig

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x"
	"github.com/iov-one/ledger/x/admin"
	"github.com/iov-one/ledger/x/balance"
)

// Executor runs approved transactions.
type Executor struct {
	auth      x.Authenticator
	ctrl      balance.Controller
	txs       TransactionBucket
	approvals ApprovalBucket
}

func NewExecutor(auth x.Authenticator, ctrl balance.Controller) Executor {
	return Executor{
		auth:      auth,
		ctrl:      ctrl,
		txs:       NewTransactionBucket(),
		approvals: NewApprovalBucket(),
	}
}

// ExecuteIfApproved executes the transaction if it collected at least as
// many approvals as the current threshold requires. Pending transactions
// return no events and no error.
//
// Executing requires the administrator authorization.
func (e Executor) ExecuteIfApproved(ctx ledger.Context, db ledger.KVStore, id uint64) ([]ledger.Event, error) {
	t, err := e.txs.GetTransaction(db, id)
	if err != nil {
		return nil, err
	}
	if t.Executed {
		return nil, errors.Wrapf(ErrAlreadyExecuted, "id %d", id)
	}
	now, err := ledger.CurrentSequence(ctx)
	if err != nil {
		return nil, err
	}
	if ledger.IsPastExpiration(now, t.Expiration) {
		return nil, errors.Wrapf(ErrTransactionExpired, "id %d", id)
	}

	approvals, err := e.approvals.GetApprovals(db, id)
	if err != nil {
		return nil, err
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, err
	}
	if len(approvals.Owners) < int(conf.Threshold) {
		return nil, nil
	}

	adm, err := admin.RequireAdmin(ctx, db, e.auth)
	if err != nil {
		return nil, err
	}
	var events []ledger.Event
	switch t.Operation {
	case OpTransfer:
		if err := e.ctrl.Spend(db, t.Target, t.Amount); err != nil {
			return nil, err
		}
		if err := e.ctrl.Receive(db, t.Target, t.Amount); err != nil {
			return nil, err
		}
		events = append(events, balance.TransferEvent(adm, t.Target, t.Amount))
	case OpMint:
		if err := e.ctrl.Receive(db, t.Target, t.Amount); err != nil {
			return nil, err
		}
		events = append(events, balance.MintEvent(adm, t.Target, t.Amount))
	case OpBurn:
		if err := e.ctrl.Spend(db, t.Target, t.Amount); err != nil {
			return nil, err
		}
		events = append(events, balance.BurnEvent(adm, t.Amount))
	default:
		return nil, errors.Wrapf(ErrUnknownOperation, "id %d: %d", id, t.Operation)
	}

	t.Executed = true
	if err := e.txs.Save(db, id, t); err != nil {
		return nil, errors.Wrap(err, "cannot save transaction")
	}
	return append(events, ExecuteEvent(id, t)), nil
}

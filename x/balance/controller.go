package balance

import (
	"math"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
)

// Controller is the functionality needed by the token handlers and by
// other extensions that move tokens.
//
// All methods operate on the store they are given and never keep state
// between calls.
type Controller interface {
	Balance(db ledger.ReadOnlyKVStore, account ledger.Address) (int64, error)
	IsFrozen(db ledger.ReadOnlyKVStore, account ledger.Address) (bool, error)
	SetFrozen(db ledger.KVStore, account ledger.Address, frozen bool) error

	// Receive credits the account. Credits are accepted even when the
	// account is frozen.
	Receive(db ledger.KVStore, account ledger.Address, amount int64) error
	// Spend debits the account or fails with ErrInsufficientBalance.
	Spend(db ledger.KVStore, account ledger.Address, amount int64) error

	Allowance(db ledger.ReadOnlyKVStore, now uint64, owner, spender ledger.Address) (int64, error)
	SetAllowance(db ledger.KVStore, now uint64, owner, spender ledger.Address, amount int64, expiration uint64) error
	SpendAllowance(db ledger.KVStore, now uint64, owner, spender ledger.Address, amount int64) error
}

// BaseController is the Controller backed by the account and the
// allowance buckets.
type BaseController struct {
	accounts   orm.ModelBucket
	allowances orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller using the default buckets.
func NewController() BaseController {
	return BaseController{
		accounts:   NewAccountBucket(),
		allowances: NewAllowanceBucket(),
	}
}

func (c BaseController) account(db ledger.ReadOnlyKVStore, addr ledger.Address) (*Account, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "account")
	}
	var acc Account
	switch err := c.accounts.One(db, addr, &acc); {
	case err == nil:
		return &acc, nil
	case errors.ErrNotFound.Is(err):
		return &Account{}, nil
	default:
		return nil, errors.Wrap(err, "load account")
	}
}

// Balance returns the balance of given account. Unknown accounts have a
// zero balance.
func (c BaseController) Balance(db ledger.ReadOnlyKVStore, account ledger.Address) (int64, error) {
	acc, err := c.account(db, account)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

// IsFrozen returns true if debits from given account are blocked.
func (c BaseController) IsFrozen(db ledger.ReadOnlyKVStore, account ledger.Address) (bool, error) {
	acc, err := c.account(db, account)
	if err != nil {
		return false, err
	}
	return acc.Frozen, nil
}

// SetFrozen sets or clears the frozen flag. Setting the current value again
// is not an error.
func (c BaseController) SetFrozen(db ledger.KVStore, account ledger.Address, frozen bool) error {
	acc, err := c.account(db, account)
	if err != nil {
		return err
	}
	acc.Frozen = frozen
	return c.accounts.Put(db, account, acc)
}

func (c BaseController) Receive(db ledger.KVStore, account ledger.Address, amount int64) error {
	if amount < 0 {
		return errors.Wrapf(ErrNegativeAmount, "receive %d", amount)
	}
	acc, err := c.account(db, account)
	if err != nil {
		return err
	}
	if acc.Balance > math.MaxInt64-amount {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", account)
	}
	acc.Balance += amount
	return c.accounts.Put(db, account, acc)
}

func (c BaseController) Spend(db ledger.KVStore, account ledger.Address, amount int64) error {
	if amount < 0 {
		return errors.Wrapf(ErrNegativeAmount, "spend %d", amount)
	}
	acc, err := c.account(db, account)
	if err != nil {
		return err
	}
	if acc.Balance < amount {
		return errors.Wrapf(ErrInsufficientBalance, "balance %d, want %d", acc.Balance, amount)
	}
	acc.Balance -= amount
	return c.accounts.Put(db, account, acc)
}

func (c BaseController) allowance(db ledger.ReadOnlyKVStore, owner, spender ledger.Address) (*Allowance, error) {
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	if err := spender.Validate(); err != nil {
		return nil, errors.Wrap(err, "spender")
	}
	var a Allowance
	if err := c.allowances.One(db, AllowanceKey(owner, spender), &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Allowance returns the amount spender may still debit from the owner
// account. Missing and expired allowances read as zero.
func (c BaseController) Allowance(db ledger.ReadOnlyKVStore, now uint64, owner, spender ledger.Address) (int64, error) {
	a, err := c.allowance(db, owner, spender)
	switch {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, errors.Wrap(err, "load allowance")
	case a.Expiration < now:
		return 0, nil
	}
	return a.Amount, nil
}

// SetAllowance overwrites the allowance granted by owner to spender.
// A positive amount that is already expired is rejected.
func (c BaseController) SetAllowance(db ledger.KVStore, now uint64, owner, spender ledger.Address, amount int64, expiration uint64) error {
	if amount < 0 {
		return errors.Wrapf(ErrNegativeAmount, "allowance %d", amount)
	}
	if amount > 0 && expiration < now {
		return errors.Wrapf(ErrAllowanceExpired, "expiration %d is before %d", expiration, now)
	}
	if err := owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := spender.Validate(); err != nil {
		return errors.Wrap(err, "spender")
	}
	a := Allowance{Amount: amount, Expiration: expiration}
	return c.allowances.Put(db, AllowanceKey(owner, spender), &a)
}

// SpendAllowance decrements the allowance granted by owner to spender. The
// allowance must exist, must not be expired and must cover the amount.
// A failed call leaves the allowance unchanged.
func (c BaseController) SpendAllowance(db ledger.KVStore, now uint64, owner, spender ledger.Address, amount int64) error {
	if amount < 0 {
		return errors.Wrapf(ErrNegativeAmount, "spend %d", amount)
	}
	a, err := c.allowance(db, owner, spender)
	switch {
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(ErrInsufficientAllowance, "no allowance for %s", spender)
	case err != nil:
		return errors.Wrap(err, "load allowance")
	}
	if a.Expiration < now {
		return errors.Wrapf(ErrAllowanceExpired, "expired at %d", a.Expiration)
	}
	if a.Amount < amount {
		return errors.Wrapf(ErrInsufficientAllowance, "allowance %d, want %d", a.Amount, amount)
	}
	a.Amount -= amount
	return c.allowances.Put(db, AllowanceKey(owner, spender), a)
}

// Transfer debits from and credits to. A frozen source account fails with
// ErrAccountFrozen before anything is modified.
func Transfer(db ledger.KVStore, ctrl Controller, from, to ledger.Address, amount int64) error {
	if err := RequireNotFrozen(db, ctrl, from); err != nil {
		return err
	}
	if err := ctrl.Spend(db, from, amount); err != nil {
		return err
	}
	return ctrl.Receive(db, to, amount)
}

// RequireNotFrozen returns ErrAccountFrozen if debits from the account are
// blocked.
func RequireNotFrozen(db ledger.ReadOnlyKVStore, ctrl Controller, account ledger.Address) error {
	frozen, err := ctrl.IsFrozen(db, account)
	if err != nil {
		return err
	}
	if frozen {
		return errors.Wrapf(ErrAccountFrozen, "account %s", account)
	}
	return nil
}

package client

import (
	"context"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
	"github.com/iov-one/ledger/x/admin"
	"github.com/iov-one/ledger/x/balance"
	"github.com/iov-one/ledger/x/multisig"
)

// Balance returns the balance of the account. Unknown accounts hold zero
// tokens.
func (c *Client) Balance(ctx context.Context, account ledger.Address) (int64, error) {
	var acc balance.Account
	switch err := c.queryOne(ctx, "/accounts", account, &acc); {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, err
	}
	return acc.Balance, nil
}

// IsFrozen returns true if debits from the account are blocked.
func (c *Client) IsFrozen(ctx context.Context, account ledger.Address) (bool, error) {
	var acc balance.Account
	switch err := c.queryOne(ctx, "/accounts", account, &acc); {
	case errors.ErrNotFound.Is(err):
		return false, nil
	case err != nil:
		return false, err
	}
	return acc.Frozen, nil
}

// Allowance returns the amount the spender can still debit from the owner
// account. Expired allowances read as zero.
func (c *Client) Allowance(ctx context.Context, owner, spender ledger.Address) (int64, error) {
	var a balance.Allowance
	switch err := c.queryOne(ctx, "/allowances", balance.AllowanceKey(owner, spender), &a); {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, err
	}
	now, err := c.node.Sequence()
	if err != nil {
		return 0, err
	}
	if a.Expiration < now {
		return 0, nil
	}
	return a.Amount, nil
}

// Admin returns the administrator address.
func (c *Client) Admin(ctx context.Context) (ledger.Address, error) {
	var r admin.Registry
	if err := c.queryOne(ctx, "/admin", nil, &r); err != nil {
		return nil, err
	}
	return r.Admin, nil
}

// Metadata returns the token metadata.
func (c *Client) Metadata(ctx context.Context) (*admin.Metadata, error) {
	var m admin.Metadata
	if err := c.queryOne(ctx, "/gconf", []byte(admin.MetadataPkg), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Decimals returns the number of fraction digits of the token.
func (c *Client) Decimals(ctx context.Context) (uint32, error) {
	m, err := c.Metadata(ctx)
	if err != nil {
		return 0, err
	}
	return m.Decimal, nil
}

// Name returns the token name.
func (c *Client) Name(ctx context.Context) (string, error) {
	m, err := c.Metadata(ctx)
	if err != nil {
		return "", err
	}
	return m.Name, nil
}

// Symbol returns the token symbol.
func (c *Client) Symbol(ctx context.Context) (string, error) {
	m, err := c.Metadata(ctx)
	if err != nil {
		return "", err
	}
	return m.Symbol, nil
}

// MultisigConfig returns the multisig owners and threshold.
func (c *Client) MultisigConfig(ctx context.Context) (*multisig.Configuration, error) {
	var conf multisig.Configuration
	switch err := c.queryOne(ctx, "/gconf", []byte(multisig.ConfigPkg), &conf); {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrap(multisig.ErrNotConfigured, "no configuration")
	case err != nil:
		return nil, err
	}
	return &conf, nil
}

// Transaction returns the multisig transaction with given id.
func (c *Client) Transaction(ctx context.Context, id uint64) (*multisig.Transaction, error) {
	var t multisig.Transaction
	switch err := c.queryOne(ctx, "/multisig/transactions", orm.EncodeSequence(id), &t); {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(multisig.ErrTransactionNotFound, "id %d", id)
	case err != nil:
		return nil, err
	}
	return &t, nil
}

// Approvals returns the owners that approved the multisig transaction.
func (c *Client) Approvals(ctx context.Context, id uint64) ([]ledger.Address, error) {
	var a multisig.Approvals
	switch err := c.queryOne(ctx, "/multisig/approvals", orm.EncodeSequence(id), &a); {
	case errors.ErrNotFound.Is(err):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return a.Owners, nil
}

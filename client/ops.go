package client

import (
	"context"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/crypto"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
	"github.com/iov-one/ledger/x/admin"
	"github.com/iov-one/ledger/x/balance"
	"github.com/iov-one/ledger/x/multisig"
)

// Initialize sets the administrator and the token metadata. Any key can
// sign the initialization.
func (c *Client) Initialize(ctx context.Context, signer crypto.Signer, adm ledger.Address, meta admin.Metadata) error {
	_, err := c.Do(ctx, &admin.InitializeMsg{
		Admin:   adm,
		Decimal: meta.Decimal,
		Name:    meta.Name,
		Symbol:  meta.Symbol,
	}, signer)
	return err
}

// Mint creates new tokens on the recipient account.
func (c *Client) Mint(ctx context.Context, adm crypto.Signer, to ledger.Address, amount int64) error {
	_, err := c.Do(ctx, &admin.MintMsg{To: to, Amount: amount}, adm)
	return err
}

// SetAdmin hands the administrator role over to another address.
func (c *Client) SetAdmin(ctx context.Context, adm crypto.Signer, newAdmin ledger.Address) error {
	_, err := c.Do(ctx, &admin.SetAdminMsg{NewAdmin: newAdmin}, adm)
	return err
}

// Freeze blocks all debits from the account.
func (c *Client) Freeze(ctx context.Context, adm crypto.Signer, account ledger.Address) error {
	_, err := c.Do(ctx, &admin.FreezeMsg{Account: account}, adm)
	return err
}

// Unfreeze lifts the block set by Freeze.
func (c *Client) Unfreeze(ctx context.Context, adm crypto.Signer, account ledger.Address) error {
	_, err := c.Do(ctx, &admin.UnfreezeMsg{Account: account}, adm)
	return err
}

// Approve lets the spender debit up to amount from the signer account
// until the expiration sequence.
func (c *Client) Approve(ctx context.Context, from crypto.Signer, spender ledger.Address, amount int64, expiration uint64) error {
	_, err := c.Do(ctx, &balance.ApproveMsg{
		From:       from.PublicKey().Address(),
		Spender:    spender,
		Amount:     amount,
		Expiration: expiration,
	}, from)
	return err
}

// Transfer moves tokens from the signer account.
func (c *Client) Transfer(ctx context.Context, from crypto.Signer, to ledger.Address, amount int64) error {
	_, err := c.Do(ctx, &balance.TransferMsg{
		From:   from.PublicKey().Address(),
		To:     to,
		Amount: amount,
	}, from)
	return err
}

// TransferFrom moves tokens from an account that granted the signer an
// allowance.
func (c *Client) TransferFrom(ctx context.Context, spender crypto.Signer, from, to ledger.Address, amount int64) error {
	_, err := c.Do(ctx, &balance.TransferFromMsg{
		Spender: spender.PublicKey().Address(),
		From:    from,
		To:      to,
		Amount:  amount,
	}, spender)
	return err
}

// Burn destroys tokens of the signer account.
func (c *Client) Burn(ctx context.Context, from crypto.Signer, amount int64) error {
	_, err := c.Do(ctx, &balance.BurnMsg{From: from.PublicKey().Address(), Amount: amount}, from)
	return err
}

// BurnFrom destroys tokens of an account that granted the signer an
// allowance.
func (c *Client) BurnFrom(ctx context.Context, spender crypto.Signer, from ledger.Address, amount int64) error {
	_, err := c.Do(ctx, &balance.BurnFromMsg{
		Spender: spender.PublicKey().Address(),
		From:    from,
		Amount:  amount,
	}, spender)
	return err
}

// SetupMultisig replaces the multisig owners and threshold.
func (c *Client) SetupMultisig(ctx context.Context, adm crypto.Signer, owners []ledger.Address, threshold uint32) error {
	_, err := c.Do(ctx, &multisig.SetupMsg{Owners: owners, Threshold: threshold}, adm)
	return err
}

// Propose records a new multisig transaction approved by the signing
// owner and returns its id.
func (c *Client) Propose(ctx context.Context, owner crypto.Signer, op multisig.Operation, target ledger.Address, amount int64, expiration uint64) (uint64, error) {
	res, err := c.Do(ctx, &multisig.ProposeMsg{
		Sender:     owner.PublicKey().Address(),
		Operation:  op,
		Target:     target,
		Amount:     amount,
		Expiration: expiration,
	}, owner)
	if err != nil {
		return 0, err
	}
	id, err := orm.DecodeSequence(res.Data)
	if err != nil {
		return 0, errors.Wrap(err, "transaction id")
	}
	return id, nil
}

// ApproveMultisig adds the signing owner approval. The transaction is
// executed when the threshold is reached, in which case the administrator
// must be one of the cosigners. It returns true if the transaction was
// executed.
func (c *Client) ApproveMultisig(ctx context.Context, owner crypto.Signer, id uint64, cosigners ...crypto.Signer) (bool, error) {
	signers := append([]crypto.Signer{owner}, cosigners...)
	res, err := c.Do(ctx, &multisig.ApproveMsg{
		Sender:        owner.PublicKey().Address(),
		TransactionID: id,
	}, signers...)
	if err != nil {
		return false, err
	}
	for _, e := range res.Events {
		if e.Topic == multisig.TopicExecute {
			return true, nil
		}
	}
	return false, nil
}

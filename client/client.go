/*
Package client provides a Go API to a ledger application. All write
operations build the message, sign it with the keys of everyone who has
to authorize it and commit it. Read operations decode the query results
into the ledger models.
*/
package client

import (
	"context"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/app"
	"github.com/iov-one/ledger/crypto"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
	"github.com/iov-one/ledger/x/sigs"
)

// Node is the ledger application a client talks to. It is implemented by
// *app.Application.
type Node interface {
	ChainID() string
	Sequence() (uint64, error)
	Check(ledger.Tx) (*ledger.CheckResult, error)
	Deliver(ledger.Tx) (*ledger.DeliverResult, error)
	Commit() (ledger.CommitID, error)
	Query(path, mod string, data []byte) ([]ledger.Model, error)
}

var _ Node = (*app.Application)(nil)

// Client is a ledger client wrapped to provide simple access to the
// token operations.
type Client struct {
	node Node
}

// NewClient wraps a Client around given node.
func NewClient(node Node) *Client {
	return &Client{node: node}
}

// NextNonce returns the nonce the signer must use for the next
// transaction.
func (c *Client) NextNonce(ctx context.Context, signer ledger.Address) (int64, error) {
	var user sigs.UserData
	switch err := c.queryOne(ctx, "/auth", signer, &user); {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, errors.Wrap(err, "nonce")
	}
	return user.Sequence, nil
}

// SignTx wraps the message into a transaction signed by all signers.
func (c *Client) SignTx(ctx context.Context, msg ledger.Msg, signers ...crypto.Signer) (*app.Tx, error) {
	chainID := c.node.ChainID()
	if chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	tx := &app.Tx{Msg: msg}
	for _, s := range signers {
		nonce, err := c.NextNonce(ctx, s.PublicKey().Address())
		if err != nil {
			return nil, err
		}
		sig, err := sigs.SignTx(s, tx, chainID, nonce)
		if err != nil {
			return nil, errors.Wrap(err, "sign")
		}
		tx.Signatures = append(tx.Signatures, sig)
	}
	return tx, nil
}

// CheckTx runs the transaction without changing the ledger.
func (c *Client) CheckTx(ctx context.Context, tx *app.Tx) (*ledger.CheckResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrState, err.Error())
	}
	res, err := c.node.Check(tx)
	if err != nil {
		return nil, errors.Wrap(err, "check")
	}
	return res, nil
}

// CommitTx delivers the transaction and commits the result. A rejected
// transaction is committed too: its message has no effect but the nonces
// of its signers are consumed, so it cannot be submitted again.
func (c *Client) CommitTx(ctx context.Context, tx *app.Tx) (*ledger.DeliverResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrState, err.Error())
	}
	res, derr := c.node.Deliver(tx)
	if _, err := c.node.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	if derr != nil {
		return nil, errors.Wrap(derr, "deliver")
	}
	return res, nil
}

// Do signs and commits the message.
func (c *Client) Do(ctx context.Context, msg ledger.Msg, signers ...crypto.Signer) (*ledger.DeliverResult, error) {
	tx, err := c.SignTx(ctx, msg, signers...)
	if err != nil {
		return nil, err
	}
	return c.CommitTx(ctx, tx)
}

// queryOne loads a single model stored under key. ErrNotFound is returned
// if nothing is stored there.
func (c *Client) queryOne(ctx context.Context, path string, key []byte, dest orm.Model) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrState, err.Error())
	}
	models, err := c.node.Query(path, ledger.KeyQueryMod, key)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", path, key)
	}
	return orm.Unmarshal(models[0].Value, dest)
}

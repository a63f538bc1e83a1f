package ledgertest

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/crypto"
)

// NewKey returns a freshly generated ed25519 private key.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns a signature condition of a freshly generated key.
func NewCondition() ledger.Condition {
	return NewKey().PublicKey().Condition()
}

package crypto

import (
	"encoding/json"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/stellar/go/strkey"
	"golang.org/x/crypto/ed25519"
)

var _ PubKey = (*PublicKey)(nil)

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	if len(sig.GetEd25519()) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.GetEd25519())
}

// Condition encodes the public key into a ledger condition
func (p *PublicKey) Condition() ledger.Condition {
	if p == nil || len(p.Ed25519) == 0 {
		return nil
	}
	return ledger.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address returns the address of the key holder.
func (p *PublicKey) Address() ledger.Address {
	c := p.Condition()
	if c == nil {
		return nil
	}
	return c.Address()
}

// StrKey returns the stellar "G..." representation of the key.
func (p *PublicKey) StrKey() (string, error) {
	s, err := strkey.Encode(strkey.VersionByteAccountID, p.Ed25519)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "strkey: %s", err)
	}
	return s, nil
}

// ParsePublicKey reads a key in the stellar "G..." representation.
func ParsePublicKey(s string) (*PublicKey, error) {
	raw, err := strkey.Decode(strkey.VersionByteAccountID, s)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "strkey: %s", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid public key length")
	}
	return &PublicKey{Ed25519: raw}, nil
}

// MarshalJSON uses the strkey representation.
func (p PublicKey) MarshalJSON() ([]byte, error) {
	s, err := p.StrKey()
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// UnmarshalJSON reads the strkey representation.
func (p *PublicKey) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "public key must be a string")
	}
	key, err := ParsePublicKey(s)
	if err != nil {
		return err
	}
	*p = *key
	return nil
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.GetEd25519()) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid private key")
	}
	bz := ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)
	return &Signature{Ed25519: bz}, nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	if len(p.GetEd25519()) != ed25519.PrivateKeySize {
		return &PublicKey{}
	}
	privateKey := ed25519.PrivateKey(p.Ed25519)
	pub := privateKey.Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// StrKey returns the stellar "S..." representation of the key seed.
func (p *PrivateKey) StrKey() (string, error) {
	if len(p.GetEd25519()) != ed25519.PrivateKeySize {
		return "", errors.Wrap(errors.ErrInput, "invalid private key")
	}
	s, err := strkey.Encode(strkey.VersionByteSeed, p.Ed25519[:ed25519.SeedSize])
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "strkey: %s", err)
	}
	return s, nil
}

// ParsePrivateKey reads a key seed in the stellar "S..." representation.
func ParsePrivateKey(s string) (*PrivateKey, error) {
	seed, err := strkey.Decode(strkey.VersionByteSeed, s)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "strkey: %s", err)
	}
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrap(errors.ErrInput, "invalid seed length")
	}
	return PrivKeyEd25519FromSeed(seed), nil
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	priv := ed25519.NewKeyFromSeed(seed)
	return &PrivateKey{Ed25519: priv}
}

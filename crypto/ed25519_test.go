package crypto

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest/assert"
	"github.com/iov-one/ledger/orm"
)

func TestEd25519Signing(t *testing.T) {
	private := GenPrivKeyEd25519()
	public := private.PublicKey()

	msg := []byte("foobar")
	msg2 := []byte("dingbooms")

	sig, err := private.Sign(msg)
	assert.Nil(t, err)
	sig2, err := private.Sign(msg2)
	assert.Nil(t, err)

	bz, err := orm.Marshal(sig)
	assert.Nil(t, err)
	bz2, err := orm.Marshal(sig2)
	assert.Nil(t, err)

	if bytes.Equal(bz, bz2) {
		t.Fatal("marshaling different signatures produce the same binary representation")
	}

	if !public.Verify(msg, sig) {
		t.Fatal("cannot verify a message signed with this public key")
	}
	if !public.Verify(msg2, sig2) {
		t.Fatal("cannot verify a message signed with this public key")
	}

	if public.Verify(msg, sig2) {
		t.Fatal("verified message signature of the wrong message")
	}
	if public.Verify(msg2, sig) {
		t.Fatal("verified message signature of the wrong message")
	}

	if public.Verify(msg, &Signature{}) {
		t.Fatal("verified an empty signature of a message")
	}
	if public.Verify(msg, nil) {
		t.Fatal("verified a nil signature of a message")
	}
}

func TestEd25519Address(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	pub2 := GenPrivKeyEd25519().PublicKey()
	empty := PublicKey{}

	assert.Nil(t, pub.Condition().Validate())
	assert.Nil(t, pub2.Condition().Validate())
	if bytes.Equal(pub.Condition(), pub2.Condition()) {
		t.Fatal("different public keys produce the same condition")
	}
	assert.Nil(t, empty.Condition())
	assert.Nil(t, empty.Address())
	assert.Nil(t, pub.Address().Validate())

	bz, err := orm.Marshal(pub)
	assert.Nil(t, err)
	var read PublicKey
	assert.Nil(t, orm.Unmarshal(bz, &read))
	assert.Equal(t, read.Condition(), pub.Condition())
}

func TestPrivKeyEd25519FromSeed(t *testing.T) {
	cases := map[string]struct {
		seed     []byte
		expected []byte
	}{
		"success 1": {
			seed:     []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			expected: []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 59, 106, 39, 188, 206, 182, 164, 45, 98, 163, 168, 208, 42, 111, 13, 115, 101, 50, 21, 119, 29, 226, 67, 166, 58, 192, 72, 161, 139, 89, 218, 41},
		},
		"success 2": {
			seed:     []byte{31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31},
			expected: []byte{31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 67, 4, 107, 254, 64, 146, 179, 233, 73, 148, 234, 218, 21, 220, 194, 13, 138, 170, 7, 182, 88, 253, 57, 84, 235, 142, 14, 251, 139, 220, 165, 222},
		},
		"failure no seed": {
			seed:     nil,
			expected: nil,
		},
		"failure wrong seed size (n<32)": {
			seed:     []byte{0},
			expected: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if tc.expected != nil {
				privKey := PrivKeyEd25519FromSeed(tc.seed)
				assert.Equal(t, tc.expected, privKey.GetEd25519())
			} else {
				assert.Panics(t, func() { PrivKeyEd25519FromSeed(tc.seed) })
			}
		})
	}
}

func TestStrKey(t *testing.T) {
	priv := PrivKeyEd25519FromSeed(bytes.Repeat([]byte{7}, 32))
	pub := priv.PublicKey()

	s, err := pub.StrKey()
	assert.Nil(t, err)
	if !strings.HasPrefix(s, "G") {
		t.Fatalf("unexpected public strkey: %s", s)
	}
	parsed, err := ParsePublicKey(s)
	assert.Nil(t, err)
	assert.Equal(t, pub.Ed25519, parsed.Ed25519)

	seed, err := priv.StrKey()
	assert.Nil(t, err)
	if !strings.HasPrefix(seed, "S") {
		t.Fatalf("unexpected seed strkey: %s", seed)
	}
	back, err := ParsePrivateKey(seed)
	assert.Nil(t, err)
	assert.Equal(t, priv.Ed25519, back.Ed25519)

	// a seed is not a public key
	_, err = ParsePublicKey(seed)
	assert.IsErr(t, errors.ErrInput, err)
	_, err = ParsePrivateKey(s)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestPublicKeyJSON(t *testing.T) {
	pub := PrivKeyEd25519FromSeed(bytes.Repeat([]byte{1}, 32)).PublicKey()
	raw, err := json.Marshal(pub)
	assert.Nil(t, err)

	var got PublicKey
	assert.Nil(t, json.Unmarshal(raw, &got))
	assert.Equal(t, pub.Ed25519, got.Ed25519)

	assert.IsErr(t, errors.ErrInput, json.Unmarshal([]byte(`"GABC"`), &got))
	assert.IsErr(t, errors.ErrInput, json.Unmarshal([]byte(`12`), &got))
}

package ledger

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/iov-one/ledger/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionParse(t *testing.T) {
	cases := map[string]struct {
		cond    Condition
		wantErr bool
		ext     string
		typ     string
		data    []byte
	}{
		"valid": {
			cond: NewCondition("sigs", "ed25519", []byte{1, 2, 3}),
			ext:  "sigs",
			typ:  "ed25519",
			data: []byte{1, 2, 3},
		},
		"data may contain newline": {
			cond: NewCondition("multi", "owner", []byte("a\nb")),
			ext:  "multi",
			typ:  "owner",
			data: []byte("a\nb"),
		},
		"extension too short": {
			cond:    NewCondition("a", "ed25519", []byte{1}),
			wantErr: true,
		},
		"no data": {
			cond:    Condition("sigs/ed25519/"),
			wantErr: true,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ext, typ, data, err := tc.cond.Parse()
			if tc.wantErr {
				assert.True(t, errors.ErrInput.Is(err))
				assert.True(t, errors.ErrInput.Is(tc.cond.Validate()))
				return
			}
			require.NoError(t, err)
			assert.NoError(t, tc.cond.Validate())
			assert.Equal(t, tc.ext, ext)
			assert.Equal(t, tc.typ, typ)
			assert.Equal(t, tc.data, data)
		})
	}
}

func TestConditionJSON(t *testing.T) {
	c := NewCondition("sigs", "ed25519", []byte{0xAB, 0xCD})
	raw, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `"sigs/ed25519/ABCD"`, string(raw))

	var got Condition
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, c, got)
}

func TestAddressFromCondition(t *testing.T) {
	a := NewCondition("sigs", "ed25519", []byte{1}).Address()
	b := NewCondition("sigs", "ed25519", []byte{2}).Address()
	assert.Len(t, a, AddressLength)
	assert.NoError(t, a.Validate())
	assert.False(t, a.Equals(b))
	assert.True(t, a.Equals(NewCondition("sigs", "ed25519", []byte{1}).Address()))
	assert.Nil(t, NewAddress(nil))
}

func TestAddressUnmarshalJSON(t *testing.T) {
	addr := NewCondition("sigs", "ed25519", []byte{9, 9}).Address()
	bech, err := addr.Bech32()
	require.NoError(t, err)

	cases := map[string]struct {
		json    string
		want    Address
		wantErr *errors.Error
	}{
		"default hex": {
			json: `"` + hex.EncodeToString(addr) + `"`,
			want: addr,
		},
		"explicit hex": {
			json: `"hex:` + hex.EncodeToString(addr) + `"`,
			want: addr,
		},
		"condition": {
			json: `"cond:sigs/ed25519/0909"`,
			want: addr,
		},
		"bech32": {
			json: `"bech32:` + bech + `"`,
			want: addr,
		},
		"empty": {
			json: `""`,
			want: nil,
		},
		"invalid hex": {
			json:    `"zzzz"`,
			wantErr: errors.ErrInput,
		},
		"wrong length": {
			json:    `"ABCD"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"base64:AAAA"`,
			wantErr: errors.ErrType,
		},
		"not a string": {
			json:    `42`,
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got Address
			err := json.Unmarshal([]byte(tc.json), &got)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAddressMarshalJSON(t *testing.T) {
	addr := Address([]byte{0xAB, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10, 0x11, 0x12, 0x13})
	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"AB0102030405060708090A0B0C0D0E0F10111213"`, string(raw))
	assert.Equal(t, "(nil)", Address(nil).String())

	raw, err = json.Marshal(Address(nil))
	require.NoError(t, err)
	assert.Equal(t, `""`, string(raw))
	var empty Address
	require.NoError(t, json.Unmarshal(raw, &empty))
	assert.Nil(t, empty)
}

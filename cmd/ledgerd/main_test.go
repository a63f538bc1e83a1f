package main

import (
	"bytes"
	"encoding/json"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/x/sigs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withTestConfig points all commands to a fresh home directory.
func withTestConfig(t *testing.T) (string, func()) {
	t.Helper()
	home, err := ioutil.TempDir("", "ledgerd")
	require.NoError(t, err)
	prev := conf
	conf = Config{
		Home:     home,
		LogLevel: "error",
		ChainID:  "ledgerd-test",
		EventsDB: filepath.Join(home, "events.db"),
	}
	return home, func() {
		conf = prev
		os.RemoveAll(home)
	}
}

// run executes the command and returns its output.
func run(t *testing.T, cmd func(input io.Reader, output io.Writer, args []string) error, input string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, cmd(strings.NewReader(input), &out, args))
	return out.String()
}

func keygen(t *testing.T, home, name string) (string, ledger.Address) {
	t.Helper()
	path := filepath.Join(home, name+".key")
	out := run(t, cmdKeygen, "", "-key", path)
	addr, err := ledger.ParseAddress(strings.TrimSpace(out))
	require.NoError(t, err)
	return path, addr
}

func TestCommandPipeline(t *testing.T) {
	home, cleanup := withTestConfig(t)
	defer cleanup()

	adminKey, adminAddr := keygen(t, home, "admin")
	aliceKey, aliceAddr := keygen(t, home, "alice")
	_, bobAddr := keygen(t, home, "bob")

	run(t, cmdInit, "", "-admin", adminAddr.String(), "-decimal", "2", "-symbol", "TKN", "-owners", adminAddr.String()+","+aliceAddr.String(), "-threshold", "2")

	// mint | sign | submit
	tx := run(t, cmdMint, "", "-to", aliceAddr.String(), "-amount", "1250")
	signed := run(t, cmdSign, tx, "-key", adminKey)
	out := run(t, cmdSubmit, signed)
	var res txResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "admin/mint", res.Path)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "mint", res.Events[0].Topic)

	tx = run(t, cmdTransfer, "", "-from", aliceAddr.String(), "-to", bobAddr.String(), "-amount", "250")
	run(t, cmdSubmit, run(t, cmdSign, tx, "-key", aliceKey))

	assert.Equal(t, "10.00 TKN\n", run(t, cmdBalance, "", "-account", aliceAddr.String()))
	assert.Equal(t, "250\n", run(t, cmdBalance, "", "-account", bobAddr.String(), "-raw"))

	// A multisig mint proposed by alice and executed with the second
	// approval signed by the administrator.
	tx = run(t, cmdPropose, "", "-sender", aliceAddr.String(), "-operation", "mint", "-target", bobAddr.String(), "-amount", "50", "-expiration", "1000")
	out = run(t, cmdSubmit, run(t, cmdSign, tx, "-key", aliceKey))
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.NotNil(t, res.TransactionID)
	assert.Equal(t, uint64(0), *res.TransactionID)

	tx = run(t, cmdApproveMultisig, "", "-sender", adminAddr.String(), "-id", "0")
	run(t, cmdSubmit, run(t, cmdSign, tx, "-key", adminKey))
	assert.Equal(t, "300\n", run(t, cmdBalance, "", "-account", bobAddr.String(), "-raw"))

	var mtx struct {
		Executed  bool             `json:"executed"`
		Approvals []ledger.Address `json:"approvals"`
	}
	require.NoError(t, json.Unmarshal([]byte(run(t, cmdMultisigTx, "", "-id", "0")), &mtx))
	assert.True(t, mtx.Executed)
	assert.Len(t, mtx.Approvals, 2)

	events := run(t, cmdEvents, "", "-topic", "mint")
	assert.Equal(t, 2, strings.Count(events, "mint("))
}

func TestSubmitFailure(t *testing.T) {
	home, cleanup := withTestConfig(t)
	defer cleanup()

	_, adminAddr := keygen(t, home, "admin")
	strangerKey, _ := keygen(t, home, "stranger")
	run(t, cmdInit, "", "-admin", adminAddr.String())

	tx := run(t, cmdMint, "", "-to", adminAddr.String(), "-amount", "1")
	signed := run(t, cmdSign, tx, "-key", strangerKey)
	var out bytes.Buffer
	err := cmdSubmit(strings.NewReader(signed), &out, nil)
	require.Error(t, err)
	assert.Empty(t, out.String())
}

func TestSubmitCheck(t *testing.T) {
	home, cleanup := withTestConfig(t)
	defer cleanup()

	adminKey, adminAddr := keygen(t, home, "admin")
	run(t, cmdInit, "", "-admin", adminAddr.String())

	signed := run(t, cmdSign, run(t, cmdMint, "", "-to", adminAddr.String(), "-amount", "9"), "-key", adminKey)
	out := run(t, cmdSubmit, signed, "-check")
	assert.Contains(t, out, `"path": "admin/mint"`)
	assert.Equal(t, "0\n", run(t, cmdBalance, "", "-account", adminAddr.String(), "-raw"))

	// The nonce was not consumed by the check.
	run(t, cmdSubmit, signed)
	assert.Equal(t, "9\n", run(t, cmdBalance, "", "-account", adminAddr.String(), "-raw"))
}

func TestStart(t *testing.T) {
	home, cleanup := withTestConfig(t)
	defer cleanup()

	adminKey, adminAddr := keygen(t, home, "admin")
	run(t, cmdInit, "", "-admin", adminAddr.String())

	// Both transactions use the same nonce, the second one is rejected.
	first := run(t, cmdSign, run(t, cmdMint, "", "-to", adminAddr.String(), "-amount", "5"), "-key", adminKey)
	second := run(t, cmdSign, run(t, cmdMint, "", "-to", adminAddr.String(), "-amount", "7"), "-key", adminKey)

	out := run(t, cmdStart, first+"\n"+second, "-metrics", "")
	dec := json.NewDecoder(strings.NewReader(out))
	var ok, rejected map[string]interface{}
	require.NoError(t, dec.Decode(&ok))
	require.NoError(t, dec.Decode(&rejected))
	assert.Equal(t, "admin/mint", ok["path"])
	assert.Nil(t, ok["error"])
	assert.Equal(t, "admin/mint", rejected["path"])
	assert.Equal(t, float64(sigs.ErrInvalidSequence.Code()), rejected["code"])
	assert.Contains(t, rejected["error"], "invalid sequence number")

	assert.Equal(t, "5\n", run(t, cmdBalance, "", "-account", adminAddr.String(), "-raw"))
}

func TestKeyaddr(t *testing.T) {
	home, cleanup := withTestConfig(t)
	defer cleanup()

	path, addr := keygen(t, home, "key")
	out := run(t, cmdKeyaddr, "", "-key", path)
	assert.Contains(t, out, "address: "+addr.String())
	assert.Contains(t, out, "pubkey:  G")

	var buf bytes.Buffer
	err := cmdKeygen(nil, &buf, []string{"-key", path})
	require.Error(t, err)
}

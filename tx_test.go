package ledger_test

import (
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest"
	"github.com/iov-one/ledger/ledgertest/assert"
)

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      ledger.Tx
		wantErr *errors.Error
	}{
		"valid message": {
			tx: &ledgertest.Tx{Msg: &ledgertest.Msg{RoutePath: "test/load"}},
		},
		"invalid message": {
			tx:      &ledgertest.Tx{Msg: &ledgertest.Msg{RoutePath: "test/load", Err: errors.ErrAmount}},
			wantErr: errors.ErrAmount,
		},
		"transaction error": {
			tx:      &ledgertest.Tx{Err: errors.ErrInput},
			wantErr: errors.ErrInput,
		},
		"missing message": {
			tx:      &ledgertest.Tx{},
			wantErr: errors.ErrMsg,
		},
		"message of another type": {
			tx:      &ledgertest.Tx{Msg: &otherMsg{}},
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var msg ledgertest.Msg
			err := ledger.LoadMsg(tc.tx, &msg)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, "test/load", msg.Path())
		})
	}
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "test/path", ledger.GetPath(&ledgertest.Tx{Msg: &ledgertest.Msg{RoutePath: "test/path"}}))
	assert.Equal(t, "(missing)", ledger.GetPath(&ledgertest.Tx{}))
	assert.Equal(t, "(missing)", ledger.GetPath(nil))
}

type otherMsg struct{}

func (*otherMsg) Reset()          {}
func (*otherMsg) String() string  { return "other" }
func (*otherMsg) ProtoMessage()   {}
func (*otherMsg) Path() string    { return "test/other" }
func (*otherMsg) Validate() error { return nil }

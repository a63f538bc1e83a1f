package app

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
	"github.com/iov-one/ledger/x/sigs"
)

// Tx is the transaction envelope. It carries a single message together
// with the signatures of everyone authorizing it.
type Tx struct {
	Msg        ledger.Msg
	Signatures []*sigs.StdSignature
}

var _ ledger.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the message carried by the transaction.
func (tx *Tx) GetMsg() (ledger.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "transaction carries no message")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures attached to the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the message path followed by a zero byte and the
// protobuf serialized message. Signatures are not part of the signed data.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	raw, err := orm.Marshal(msg)
	if err != nil {
		return nil, err
	}
	path := msg.Path()
	bz := make([]byte, 0, len(path)+1+len(raw))
	bz = append(bz, path...)
	bz = append(bz, 0)
	return append(bz, raw...), nil
}

// wireTx is the JSON representation of a transaction.
type wireTx struct {
	Path       string               `json:"path"`
	Msg        json.RawMessage      `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures,omitempty"`
}

// EncodeTx returns the JSON representation of given transaction.
func EncodeTx(tx *Tx) ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "cannot serialize: %s", err)
	}
	return json.Marshal(wireTx{
		Path:       msg.Path(),
		Msg:        raw,
		Signatures: tx.Signatures,
	})
}

// MsgRegistry knows all message types that can be decoded from their JSON
// representation.
type MsgRegistry struct {
	types map[string]reflect.Type
}

// NewMsgRegistry returns a registry of given messages.
func NewMsgRegistry(msgs ...ledger.Msg) *MsgRegistry {
	r := &MsgRegistry{types: make(map[string]reflect.Type)}
	for _, m := range msgs {
		r.Register(m)
	}
	return r
}

// Register adds the message type. Message must be a pointer to a struct
// and its path must not be used yet, otherwise this method panics.
func (r *MsgRegistry) Register(msg ledger.Msg) {
	t := reflect.TypeOf(msg)
	if t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("message must be a pointer to a struct, got %T", msg))
	}
	path := msg.Path()
	if _, ok := r.types[path]; ok {
		panic(fmt.Sprintf("message path %q already registered", path))
	}
	r.types[path] = t.Elem()
}

// New returns a zero value message registered for given path.
func (r *MsgRegistry) New(path string) (ledger.Msg, error) {
	t, ok := r.types[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "unknown message path %q", path)
	}
	return reflect.New(t).Interface().(ledger.Msg), nil
}

// Paths returns all registered message paths in alphabetical order.
func (r *MsgRegistry) Paths() []string {
	paths := make([]string, 0, len(r.types))
	for p := range r.types {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// DecodeTx parses the JSON representation of a transaction. The message is
// decoded into the type registered for its path.
func (r *MsgRegistry) DecodeTx(raw []byte) (*Tx, error) {
	var w wireTx
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode transaction: %s", err)
	}
	msg, err := r.New(w.Path)
	if err != nil {
		return nil, err
	}
	if len(w.Msg) == 0 {
		return nil, errors.Wrap(errors.ErrMsg, "missing message")
	}
	if err := json.Unmarshal(w.Msg, msg); err != nil {
		// Keep registered errors returned by custom unmarshalers.
		if errors.Code(err) > 1 {
			return nil, errors.Wrap(err, "cannot decode message")
		}
		return nil, errors.Wrapf(errors.ErrMsg, "cannot decode message: %s", err)
	}
	return &Tx{Msg: msg, Signatures: w.Signatures}, nil
}

// TxDecoder returns the decoder of the registered messages.
func (r *MsgRegistry) TxDecoder() ledger.TxDecoder {
	return func(raw []byte) (ledger.Tx, error) {
		tx, err := r.DecodeTx(raw)
		if err != nil {
			return nil, err
		}
		return tx, nil
	}
}

package multisig

import (
	"encoding/json"

	"github.com/iov-one/ledger/errors"
)

// Operation is the token operation executed once a transaction is approved.
type Operation int32

const (
	OpUnknown Operation = iota
	OpTransfer
	OpMint
	OpBurn
)

var operationNames = map[Operation]string{
	OpTransfer: "transfer",
	OpMint:     "mint",
	OpBurn:     "burn",
}

// ParseOperation returns the operation with given name.
func ParseOperation(name string) (Operation, error) {
	for op, n := range operationNames {
		if n == name {
			return op, nil
		}
	}
	return OpUnknown, errors.Wrapf(ErrUnknownOperation, "%q", name)
}

func (op Operation) String() string {
	if n, ok := operationNames[op]; ok {
		return n
	}
	return "unknown"
}

func (op Operation) Validate() error {
	if _, ok := operationNames[op]; !ok {
		return errors.Wrapf(ErrUnknownOperation, "%d", op)
	}
	return nil
}

func (op Operation) MarshalText() ([]byte, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	return []byte(op.String()), nil
}

func (op *Operation) UnmarshalText(text []byte) error {
	o, err := ParseOperation(string(text))
	if err != nil {
		return err
	}
	*op = o
	return nil
}

func (op Operation) MarshalJSON() ([]byte, error) {
	text, err := op.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

func (op *Operation) UnmarshalJSON(raw []byte) error {
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return errors.Wrap(ErrUnknownOperation, "operation must be a string")
	}
	return op.UnmarshalText([]byte(name))
}

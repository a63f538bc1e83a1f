package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	proto.Message
	Validate() error
}

// Marshal serializes given message using the protobuf wire format.
func Marshal(m proto.Message) ([]byte, error) {
	raw, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "marshal %T: %s", m, err)
	}
	// A zero value message encodes to nothing, but a store value must
	// never be nil.
	if raw == nil {
		raw = []byte{}
	}
	return raw, nil
}

// Unmarshal loads the protobuf serialized data into given message.
func Unmarshal(raw []byte, m proto.Message) error {
	if err := proto.Unmarshal(raw, m); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal %T: %s", m, err)
	}
	return nil
}

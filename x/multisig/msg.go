package multisig

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x/balance"
)

const (
	pathSetupMsg   = "multisig/setup"
	pathProposeMsg = "multisig/propose"
	pathApproveMsg = "multisig/approve"
)

// SetupMsg registers the owners and the approval threshold. It replaces
// any previous configuration.
type SetupMsg struct {
	Owners    []ledger.Address `protobuf:"bytes,1,rep,name=owners,proto3,casttype=github.com/iov-one/ledger.Address" json:"owners"`
	Threshold uint32           `protobuf:"varint,2,opt,name=threshold,proto3" json:"threshold"`
}

func (m *SetupMsg) Reset()         { *m = SetupMsg{} }
func (m *SetupMsg) String() string { return proto.CompactTextString(m) }
func (*SetupMsg) ProtoMessage()    {}

var _ ledger.Msg = (*SetupMsg)(nil)

func (SetupMsg) Path() string {
	return pathSetupMsg
}

func (m *SetupMsg) Validate() error {
	return validateOwners(m.Owners, m.Threshold)
}

// ProposeMsg creates a transaction that is executed once enough owners
// approved it. The sender approves it implicitly.
type ProposeMsg struct {
	Sender     ledger.Address `protobuf:"bytes,1,opt,name=sender,proto3,casttype=github.com/iov-one/ledger.Address" json:"sender"`
	Operation  Operation      `protobuf:"varint,2,opt,name=operation,proto3,casttype=Operation" json:"operation"`
	Target     ledger.Address `protobuf:"bytes,3,opt,name=target,proto3,casttype=github.com/iov-one/ledger.Address" json:"target"`
	Amount     int64          `protobuf:"varint,4,opt,name=amount,proto3" json:"amount"`
	Expiration uint64         `protobuf:"varint,5,opt,name=expiration,proto3" json:"expiration"`
}

func (m *ProposeMsg) Reset()         { *m = ProposeMsg{} }
func (m *ProposeMsg) String() string { return proto.CompactTextString(m) }
func (*ProposeMsg) ProtoMessage()    {}

var _ ledger.Msg = (*ProposeMsg)(nil)

func (ProposeMsg) Path() string {
	return pathProposeMsg
}

func (m *ProposeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Sender", m.Sender.Validate())
	errs = errors.AppendField(errs, "Operation", m.Operation.Validate())
	errs = errors.AppendField(errs, "Target", m.Target.Validate())
	errs = errors.AppendField(errs, "Amount", balance.ValidateAmount(m.Amount))
	return errs
}

// Transaction returns the pending transaction described by the message.
func (m *ProposeMsg) Transaction() *Transaction {
	return &Transaction{
		Operation:  m.Operation,
		Target:     m.Target,
		Amount:     m.Amount,
		Expiration: m.Expiration,
	}
}

// ApproveMsg adds the sender approval to a transaction.
type ApproveMsg struct {
	Sender        ledger.Address `protobuf:"bytes,1,opt,name=sender,proto3,casttype=github.com/iov-one/ledger.Address" json:"sender"`
	TransactionID uint64         `protobuf:"varint,2,opt,name=transaction_id,json=transactionId,proto3" json:"transaction_id"`
}

func (m *ApproveMsg) Reset()         { *m = ApproveMsg{} }
func (m *ApproveMsg) String() string { return proto.CompactTextString(m) }
func (*ApproveMsg) ProtoMessage()    {}

var _ ledger.Msg = (*ApproveMsg)(nil)

func (ApproveMsg) Path() string {
	return pathApproveMsg
}

func (m *ApproveMsg) Validate() error {
	return errors.AppendField(nil, "Sender", m.Sender.Validate())
}

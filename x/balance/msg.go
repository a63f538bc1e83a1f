package balance

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

const (
	pathApproveMsg      = "balance/approve"
	pathTransferMsg     = "balance/transfer"
	pathTransferFromMsg = "balance/transfer_from"
	pathBurnMsg         = "balance/burn"
	pathBurnFromMsg     = "balance/burn_from"
)

// ApproveMsg sets the allowance of Spender over the From account.
type ApproveMsg struct {
	From       ledger.Address `protobuf:"bytes,1,opt,name=from,proto3,casttype=github.com/iov-one/ledger.Address" json:"from"`
	Spender    ledger.Address `protobuf:"bytes,2,opt,name=spender,proto3,casttype=github.com/iov-one/ledger.Address" json:"spender"`
	Amount     int64          `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
	Expiration uint64         `protobuf:"varint,4,opt,name=expiration,proto3" json:"expiration"`
}

func (m *ApproveMsg) Reset()         { *m = ApproveMsg{} }
func (m *ApproveMsg) String() string { return proto.CompactTextString(m) }
func (*ApproveMsg) ProtoMessage()    {}

var _ ledger.Msg = (*ApproveMsg)(nil)

func (ApproveMsg) Path() string {
	return pathApproveMsg
}

func (m *ApproveMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "From", m.From.Validate())
	errs = errors.AppendField(errs, "Spender", m.Spender.Validate())
	errs = errors.AppendField(errs, "Amount", ValidateAmount(m.Amount))
	return errs
}

// TransferMsg moves Amount tokens from the From account to the To account.
type TransferMsg struct {
	From   ledger.Address `protobuf:"bytes,1,opt,name=from,proto3,casttype=github.com/iov-one/ledger.Address" json:"from"`
	To     ledger.Address `protobuf:"bytes,2,opt,name=to,proto3,casttype=github.com/iov-one/ledger.Address" json:"to"`
	Amount int64          `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
}

func (m *TransferMsg) Reset()         { *m = TransferMsg{} }
func (m *TransferMsg) String() string { return proto.CompactTextString(m) }
func (*TransferMsg) ProtoMessage()    {}

var _ ledger.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (m *TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "From", m.From.Validate())
	errs = errors.AppendField(errs, "To", m.To.Validate())
	errs = errors.AppendField(errs, "Amount", ValidateAmount(m.Amount))
	return errs
}

// TransferFromMsg moves tokens from the From account using the allowance
// granted to Spender.
type TransferFromMsg struct {
	Spender ledger.Address `protobuf:"bytes,1,opt,name=spender,proto3,casttype=github.com/iov-one/ledger.Address" json:"spender"`
	From    ledger.Address `protobuf:"bytes,2,opt,name=from,proto3,casttype=github.com/iov-one/ledger.Address" json:"from"`
	To      ledger.Address `protobuf:"bytes,3,opt,name=to,proto3,casttype=github.com/iov-one/ledger.Address" json:"to"`
	Amount  int64          `protobuf:"varint,4,opt,name=amount,proto3" json:"amount"`
}

func (m *TransferFromMsg) Reset()         { *m = TransferFromMsg{} }
func (m *TransferFromMsg) String() string { return proto.CompactTextString(m) }
func (*TransferFromMsg) ProtoMessage()    {}

var _ ledger.Msg = (*TransferFromMsg)(nil)

func (TransferFromMsg) Path() string {
	return pathTransferFromMsg
}

func (m *TransferFromMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Spender", m.Spender.Validate())
	errs = errors.AppendField(errs, "From", m.From.Validate())
	errs = errors.AppendField(errs, "To", m.To.Validate())
	errs = errors.AppendField(errs, "Amount", ValidateAmount(m.Amount))
	return errs
}

// BurnMsg destroys Amount tokens of the From account.
type BurnMsg struct {
	From   ledger.Address `protobuf:"bytes,1,opt,name=from,proto3,casttype=github.com/iov-one/ledger.Address" json:"from"`
	Amount int64          `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
}

func (m *BurnMsg) Reset()         { *m = BurnMsg{} }
func (m *BurnMsg) String() string { return proto.CompactTextString(m) }
func (*BurnMsg) ProtoMessage()    {}

var _ ledger.Msg = (*BurnMsg)(nil)

func (BurnMsg) Path() string {
	return pathBurnMsg
}

func (m *BurnMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "From", m.From.Validate())
	errs = errors.AppendField(errs, "Amount", ValidateAmount(m.Amount))
	return errs
}

// BurnFromMsg destroys tokens of the From account using the allowance
// granted to Spender.
type BurnFromMsg struct {
	Spender ledger.Address `protobuf:"bytes,1,opt,name=spender,proto3,casttype=github.com/iov-one/ledger.Address" json:"spender"`
	From    ledger.Address `protobuf:"bytes,2,opt,name=from,proto3,casttype=github.com/iov-one/ledger.Address" json:"from"`
	Amount  int64          `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
}

func (m *BurnFromMsg) Reset()         { *m = BurnFromMsg{} }
func (m *BurnFromMsg) String() string { return proto.CompactTextString(m) }
func (*BurnFromMsg) ProtoMessage()    {}

var _ ledger.Msg = (*BurnFromMsg)(nil)

func (BurnFromMsg) Path() string {
	return pathBurnFromMsg
}

func (m *BurnFromMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Spender", m.Spender.Validate())
	errs = errors.AppendField(errs, "From", m.From.Validate())
	errs = errors.AppendField(errs, "Amount", ValidateAmount(m.Amount))
	return errs
}

// ValidateAmount returns ErrNegativeAmount for amounts below zero.
func ValidateAmount(amount int64) error {
	if amount < 0 {
		return errors.Wrapf(ErrNegativeAmount, "%d", amount)
	}
	return nil
}

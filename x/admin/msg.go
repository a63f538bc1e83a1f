package admin

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x/balance"
)

const (
	pathInitializeMsg = "admin/initialize"
	pathSetAdminMsg   = "admin/set_admin"
	pathMintMsg       = "admin/mint"
	pathFreezeMsg     = "admin/freeze"
	pathUnfreezeMsg   = "admin/unfreeze"
)

// InitializeMsg sets the administrator and the token metadata. It can be
// processed only once.
type InitializeMsg struct {
	Admin   ledger.Address `protobuf:"bytes,1,opt,name=admin,proto3,casttype=github.com/iov-one/ledger.Address" json:"admin"`
	Decimal uint32         `protobuf:"varint,2,opt,name=decimal,proto3" json:"decimal"`
	Name    string         `protobuf:"bytes,3,opt,name=name,proto3" json:"name"`
	Symbol  string         `protobuf:"bytes,4,opt,name=symbol,proto3" json:"symbol"`
}

func (m *InitializeMsg) Reset()         { *m = InitializeMsg{} }
func (m *InitializeMsg) String() string { return proto.CompactTextString(m) }
func (*InitializeMsg) ProtoMessage()    {}

var _ ledger.Msg = (*InitializeMsg)(nil)

func (InitializeMsg) Path() string {
	return pathInitializeMsg
}

// Validate checks the administrator address only. The metadata is
// validated on delivery, after the ledger is known to be uninitialized.
func (m *InitializeMsg) Validate() error {
	return errors.AppendField(nil, "Admin", m.Admin.Validate())
}

// Metadata returns the token metadata carried by the message.
func (m *InitializeMsg) Metadata() *Metadata {
	return &Metadata{Decimal: m.Decimal, Name: m.Name, Symbol: m.Symbol}
}

// SetAdminMsg replaces the administrator.
type SetAdminMsg struct {
	NewAdmin ledger.Address `protobuf:"bytes,1,opt,name=new_admin,json=newAdmin,proto3,casttype=github.com/iov-one/ledger.Address" json:"new_admin"`
}

func (m *SetAdminMsg) Reset()         { *m = SetAdminMsg{} }
func (m *SetAdminMsg) String() string { return proto.CompactTextString(m) }
func (*SetAdminMsg) ProtoMessage()    {}

var _ ledger.Msg = (*SetAdminMsg)(nil)

func (SetAdminMsg) Path() string {
	return pathSetAdminMsg
}

func (m *SetAdminMsg) Validate() error {
	return errors.AppendField(nil, "NewAdmin", m.NewAdmin.Validate())
}

// MintMsg creates Amount new tokens on the To account.
type MintMsg struct {
	To     ledger.Address `protobuf:"bytes,1,opt,name=to,proto3,casttype=github.com/iov-one/ledger.Address" json:"to"`
	Amount int64          `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
}

func (m *MintMsg) Reset()         { *m = MintMsg{} }
func (m *MintMsg) String() string { return proto.CompactTextString(m) }
func (*MintMsg) ProtoMessage()    {}

var _ ledger.Msg = (*MintMsg)(nil)

func (MintMsg) Path() string {
	return pathMintMsg
}

func (m *MintMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "To", m.To.Validate())
	errs = errors.AppendField(errs, "Amount", balance.ValidateAmount(m.Amount))
	return errs
}

// FreezeMsg blocks all debits from the account.
type FreezeMsg struct {
	Account ledger.Address `protobuf:"bytes,1,opt,name=account,proto3,casttype=github.com/iov-one/ledger.Address" json:"account"`
}

func (m *FreezeMsg) Reset()         { *m = FreezeMsg{} }
func (m *FreezeMsg) String() string { return proto.CompactTextString(m) }
func (*FreezeMsg) ProtoMessage()    {}

var _ ledger.Msg = (*FreezeMsg)(nil)

func (FreezeMsg) Path() string {
	return pathFreezeMsg
}

func (m *FreezeMsg) Validate() error {
	return errors.AppendField(nil, "Account", m.Account.Validate())
}

// UnfreezeMsg lifts the block set by FreezeMsg.
type UnfreezeMsg struct {
	Account ledger.Address `protobuf:"bytes,1,opt,name=account,proto3,casttype=github.com/iov-one/ledger.Address" json:"account"`
}

func (m *UnfreezeMsg) Reset()         { *m = UnfreezeMsg{} }
func (m *UnfreezeMsg) String() string { return proto.CompactTextString(m) }
func (*UnfreezeMsg) ProtoMessage()    {}

var _ ledger.Msg = (*UnfreezeMsg)(nil)

func (UnfreezeMsg) Path() string {
	return pathUnfreezeMsg
}

func (m *UnfreezeMsg) Validate() error {
	return errors.AppendField(nil, "Account", m.Account.Validate())
}

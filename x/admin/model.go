package admin

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/gconf"
	"github.com/iov-one/ledger/orm"
	"github.com/iov-one/ledger/x"
	"github.com/shopspring/decimal"
)

const (
	// MaxDecimal is the greatest number of fraction digits a token can
	// declare.
	MaxDecimal = 255

	// MetadataPkg is the gconf package name of the token metadata.
	MetadataPkg = "token"
)

// RegistryKey is the database key of the administrator registry.
var RegistryKey = []byte("_admin")

// Registry holds the address of the ledger administrator.
type Registry struct {
	Admin ledger.Address `protobuf:"bytes,1,opt,name=admin,proto3,casttype=github.com/iov-one/ledger.Address" json:"admin"`
}

func (m *Registry) Reset()         { *m = Registry{} }
func (m *Registry) String() string { return proto.CompactTextString(m) }
func (*Registry) ProtoMessage()    {}

var _ orm.Model = (*Registry)(nil)

func (r *Registry) Validate() error {
	return errors.AppendField(nil, "Admin", r.Admin.Validate())
}

// Metadata describes the token.
type Metadata struct {
	Decimal uint32 `protobuf:"varint,1,opt,name=decimal,proto3" json:"decimal"`
	Name    string `protobuf:"bytes,2,opt,name=name,proto3" json:"name"`
	Symbol  string `protobuf:"bytes,3,opt,name=symbol,proto3" json:"symbol"`
}

func (m *Metadata) Reset()         { *m = Metadata{} }
func (m *Metadata) String() string { return proto.CompactTextString(m) }
func (*Metadata) ProtoMessage()    {}

var _ gconf.Configuration = (*Metadata)(nil)

func (m *Metadata) Validate() error {
	if m.Decimal > MaxDecimal {
		return errors.Field("Decimal", ErrDecimalOverflow, "got %d", m.Decimal)
	}
	return nil
}

// Format renders an amount of the smallest token units as a decimal
// number followed by the token symbol, for example "12.5000000 TKN".
func (m *Metadata) Format(amount int64) string {
	d := decimal.New(amount, -int32(m.Decimal))
	s := d.StringFixed(int32(m.Decimal))
	if m.Symbol == "" {
		return s
	}
	return s + " " + m.Symbol
}

// LoadAdmin returns the current administrator. ErrNotFound is returned if
// the ledger was not initialized.
func LoadAdmin(db ledger.ReadOnlyKVStore) (ledger.Address, error) {
	raw, err := db.Get(RegistryKey)
	if err != nil {
		return nil, errors.Wrap(err, "load registry")
	}
	if raw == nil {
		return nil, errors.Wrap(errors.ErrNotFound, "administrator not set")
	}
	var r Registry
	if err := orm.Unmarshal(raw, &r); err != nil {
		return nil, err
	}
	return r.Admin, nil
}

// SaveAdmin stores the administrator, replacing the previous one.
func SaveAdmin(db ledger.KVStore, admin ledger.Address) error {
	r := Registry{Admin: admin}
	if err := r.Validate(); err != nil {
		return err
	}
	raw, err := orm.Marshal(&r)
	if err != nil {
		return err
	}
	return db.Set(RegistryKey, raw)
}

// LoadMetadata returns the token metadata. ErrNotFound is returned if the
// ledger was not initialized.
func LoadMetadata(db ledger.ReadOnlyKVStore) (*Metadata, error) {
	var m Metadata
	if err := gconf.Load(db, MetadataPkg, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Initialize stores the administrator and the token metadata. It fails
// with ErrAlreadyInitialized if an administrator is already set.
func Initialize(db ledger.KVStore, admin ledger.Address, meta *Metadata) error {
	if err := CanInitialize(db, meta); err != nil {
		return err
	}
	if err := SaveAdmin(db, admin); err != nil {
		return errors.Wrap(err, "save administrator")
	}
	if err := gconf.Save(db, MetadataPkg, meta); err != nil {
		return errors.Wrap(err, "save metadata")
	}
	return nil
}

// CanInitialize returns ErrAlreadyInitialized if an administrator is set,
// otherwise the metadata validation result.
func CanInitialize(db ledger.ReadOnlyKVStore, meta *Metadata) error {
	switch _, err := LoadAdmin(db); {
	case err == nil:
		return errors.Wrap(ErrAlreadyInitialized, "administrator already set")
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return meta.Validate()
}

// RequireAdmin returns the administrator address if it authorized the
// current transaction.
func RequireAdmin(ctx ledger.Context, db ledger.ReadOnlyKVStore, auth x.Authenticator) (ledger.Address, error) {
	admin, err := LoadAdmin(db)
	if err != nil {
		return nil, err
	}
	if err := x.RequireAddress(ctx, auth, admin, "administrator"); err != nil {
		return nil, err
	}
	return admin, nil
}

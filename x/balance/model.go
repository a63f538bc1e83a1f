package balance

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
)

const (
	// AccountBucketName is where accounts are stored, indexed by address.
	AccountBucketName = "acct"
	// AllowanceBucketName is where allowances are stored, indexed by
	// owner and spender address.
	AllowanceBucketName = "allow"
)

// Account holds the token balance of a single address.
type Account struct {
	Balance int64 `protobuf:"varint,1,opt,name=balance,proto3" json:"balance"`
	Frozen  bool  `protobuf:"varint,2,opt,name=frozen,proto3" json:"frozen,omitempty"`
}

func (m *Account) Reset()         { *m = Account{} }
func (m *Account) String() string { return proto.CompactTextString(m) }
func (*Account) ProtoMessage()    {}

var _ orm.Model = (*Account)(nil)

func (a *Account) Validate() error {
	if a.Balance < 0 {
		return errors.Field("Balance", ErrNegativeAmount, "balance %d", a.Balance)
	}
	return nil
}

// Allowance is the amount a spender may still debit from the owner account
// before the expiration sequence passes.
type Allowance struct {
	Amount     int64  `protobuf:"varint,1,opt,name=amount,proto3" json:"amount"`
	Expiration uint64 `protobuf:"varint,2,opt,name=expiration,proto3" json:"expiration"`
}

func (m *Allowance) Reset()         { *m = Allowance{} }
func (m *Allowance) String() string { return proto.CompactTextString(m) }
func (*Allowance) ProtoMessage()    {}

var _ orm.Model = (*Allowance)(nil)

func (a *Allowance) Validate() error {
	if a.Amount < 0 {
		return errors.Field("Amount", ErrNegativeAmount, "allowance %d", a.Amount)
	}
	return nil
}

// NewAccountBucket returns a bucket storing Account models.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket(AccountBucketName, &Account{})
}

// NewAllowanceBucket returns a bucket storing Allowance models.
func NewAllowanceBucket() orm.ModelBucket {
	return orm.NewModelBucket(AllowanceBucketName, &Allowance{})
}

// AllowanceKey returns the key of the allowance granted by owner to
// spender. All allowances of an owner share the owner address prefix.
func AllowanceKey(owner, spender ledger.Address) []byte {
	key := make([]byte, 0, len(owner)+len(spender))
	key = append(key, owner...)
	return append(key, spender...)
}

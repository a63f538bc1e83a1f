package multisig

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/gconf"
	"github.com/iov-one/ledger/orm"
	"github.com/iov-one/ledger/x/balance"
)

const (
	// ConfigPkg is the gconf package name of the owner configuration.
	ConfigPkg = "multisig"

	// TransactionBucketName is where proposed transactions are stored.
	TransactionBucketName = "mstx"
	// ApprovalBucketName is where approvals of each transaction are stored.
	ApprovalBucketName = "msapp"
)

// Configuration lists the owners and the number of approvals required to
// execute a transaction.
type Configuration struct {
	Owners    []ledger.Address `protobuf:"bytes,1,rep,name=owners,proto3,casttype=github.com/iov-one/ledger.Address" json:"owners"`
	Threshold uint32           `protobuf:"varint,2,opt,name=threshold,proto3" json:"threshold"`
	Required  bool             `protobuf:"varint,3,opt,name=required,proto3" json:"required"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	return validateOwners(c.Owners, c.Threshold)
}

func validateOwners(owners []ledger.Address, threshold uint32) error {
	if len(owners) == 0 {
		return errors.Field("Owners", ErrEmptyOwnerList, "at least one owner required")
	}
	if threshold == 0 || int(threshold) > len(owners) {
		return errors.Field("Threshold", ErrInvalidThreshold,
			"must be between 1 and %d, got %d", len(owners), threshold)
	}
	seen := make(map[string]struct{}, len(owners))
	for i, o := range owners {
		if err := o.Validate(); err != nil {
			return errors.Field("Owners", err, "owner %d", i)
		}
		if _, ok := seen[string(o)]; ok {
			return errors.Field("Owners", errors.ErrDuplicate, "owner %s", o)
		}
		seen[string(o)] = struct{}{}
	}
	return nil
}

// IsOwner returns true if given address is one of the owners.
func (c *Configuration) IsOwner(addr ledger.Address) bool {
	for _, o := range c.Owners {
		if o.Equals(addr) {
			return true
		}
	}
	return false
}

// LoadConfiguration returns the owner configuration. ErrNotConfigured is
// returned if the setup was never done.
func LoadConfiguration(db ledger.ReadOnlyKVStore) (*Configuration, error) {
	var c Configuration
	switch err := gconf.Load(db, ConfigPkg, &c); {
	case err == nil:
		return &c, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrap(ErrNotConfigured, "no owners registered")
	default:
		return nil, err
	}
}

// SaveConfiguration replaces the owner configuration.
func SaveConfiguration(db ledger.KVStore, c *Configuration) error {
	return gconf.Save(db, ConfigPkg, c)
}

// Transaction is a token operation waiting for owner approvals.
type Transaction struct {
	Operation  Operation      `protobuf:"varint,1,opt,name=operation,proto3,casttype=Operation" json:"operation"`
	Target     ledger.Address `protobuf:"bytes,2,opt,name=target,proto3,casttype=github.com/iov-one/ledger.Address" json:"target"`
	Amount     int64          `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
	Expiration uint64         `protobuf:"varint,4,opt,name=expiration,proto3" json:"expiration"`
	Executed   bool           `protobuf:"varint,5,opt,name=executed,proto3" json:"executed"`
}

func (m *Transaction) Reset()         { *m = Transaction{} }
func (m *Transaction) String() string { return proto.CompactTextString(m) }
func (*Transaction) ProtoMessage()    {}

var _ orm.Model = (*Transaction)(nil)

func (t *Transaction) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Operation", t.Operation.Validate())
	errs = errors.AppendField(errs, "Target", t.Target.Validate())
	errs = errors.AppendField(errs, "Amount", balance.ValidateAmount(t.Amount))
	return errs
}

// Approvals is the set of owners that approved a transaction.
type Approvals struct {
	Owners []ledger.Address `protobuf:"bytes,1,rep,name=owners,proto3,casttype=github.com/iov-one/ledger.Address" json:"owners"`
}

func (m *Approvals) Reset()         { *m = Approvals{} }
func (m *Approvals) String() string { return proto.CompactTextString(m) }
func (*Approvals) ProtoMessage()    {}

var _ orm.Model = (*Approvals)(nil)

func (a *Approvals) Validate() error {
	for i, o := range a.Owners {
		if err := o.Validate(); err != nil {
			return errors.Field("Owners", err, "owner %d", i)
		}
	}
	return nil
}

// Has returns true if the owner already approved.
func (a *Approvals) Has(owner ledger.Address) bool {
	for _, o := range a.Owners {
		if o.Equals(owner) {
			return true
		}
	}
	return false
}

// TransactionBucket stores proposed transactions under their sequence id.
type TransactionBucket struct {
	orm.ModelBucket
	ids orm.Sequence
}

// NewTransactionBucket returns a bucket with the default name. Ids are
// allocated from the total transfers counter.
func NewTransactionBucket() TransactionBucket {
	return TransactionBucket{
		ModelBucket: orm.NewModelBucket(TransactionBucketName, &Transaction{}),
		ids:         orm.NewSequence(ConfigPkg, "total_transfers"),
	}
}

// Create stores the transaction under the next free id.
func (b TransactionBucket) Create(db ledger.KVStore, t *Transaction) (uint64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	id, err := b.ids.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "cannot acquire id")
	}
	if err := b.Put(db, orm.EncodeSequence(id), t); err != nil {
		return 0, errors.Wrap(err, "cannot save transaction")
	}
	return id, nil
}

// GetTransaction returns the transaction with given id or
// ErrTransactionNotFound.
func (b TransactionBucket) GetTransaction(db ledger.ReadOnlyKVStore, id uint64) (*Transaction, error) {
	var t Transaction
	switch err := b.One(db, orm.EncodeSequence(id), &t); {
	case err == nil:
		return &t, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrTransactionNotFound, "id %d", id)
	default:
		return nil, err
	}
}

// Save overwrites the transaction with given id.
func (b TransactionBucket) Save(db ledger.KVStore, id uint64, t *Transaction) error {
	return b.Put(db, orm.EncodeSequence(id), t)
}

// Total returns how many transactions were proposed so far.
func (b TransactionBucket) Total(db ledger.ReadOnlyKVStore) (uint64, error) {
	return b.ids.Count(db)
}

// ApprovalBucket stores the approval set of each transaction.
type ApprovalBucket struct {
	orm.ModelBucket
}

func NewApprovalBucket() ApprovalBucket {
	return ApprovalBucket{
		ModelBucket: orm.NewModelBucket(ApprovalBucketName, &Approvals{}),
	}
}

// GetApprovals returns the approvals of a transaction. A transaction
// without approvals returns an empty set.
func (b ApprovalBucket) GetApprovals(db ledger.ReadOnlyKVStore, id uint64) (*Approvals, error) {
	var a Approvals
	switch err := b.One(db, orm.EncodeSequence(id), &a); {
	case err == nil, errors.ErrNotFound.Is(err):
		return &a, nil
	default:
		return nil, err
	}
}

// Approve adds the owner to the approval set. Approving twice is a no-op.
func (b ApprovalBucket) Approve(db ledger.KVStore, id uint64, owner ledger.Address) (*Approvals, error) {
	a, err := b.GetApprovals(db, id)
	if err != nil {
		return nil, err
	}
	if a.Has(owner) {
		return a, nil
	}
	a.Owners = append(a.Owners, owner)
	if err := b.Put(db, orm.EncodeSequence(id), a); err != nil {
		return nil, errors.Wrap(err, "cannot save approvals")
	}
	return a, nil
}

package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet holds the native value owned by a single address.
type Wallet struct {
	Balance uint64 `protobuf:"varint,1,opt,name=balance,proto3" json:"balance,omitempty"`
}

var _ orm.CloneableData = (*Wallet)(nil)

type walletWire Wallet

func (m *walletWire) Reset()         { *m = walletWire{} }
func (m *walletWire) String() string { return proto.CompactTextString(m) }
func (*walletWire) ProtoMessage()    {}

// Marshal serializes the wallet with protobuf.
func (w *Wallet) Marshal() ([]byte, error) {
	return proto.Marshal((*walletWire)(w))
}

// Unmarshal loads the wallet from its protobuf representation.
func (w *Wallet) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*walletWire)(w))
}

// Validate accepts any balance, an empty wallet is valid.
func (w *Wallet) Validate() error {
	return nil
}

// Copy returns an independent copy of the wallet.
func (w *Wallet) Copy() orm.CloneableData {
	return &Wallet{Balance: w.Balance}
}

// WalletBucket is a type-safe wrapper around orm.Bucket
type WalletBucket struct {
	orm.Bucket
}

// NewWalletBucket initializes a WalletBucket with default name
func NewWalletBucket() WalletBucket {
	return WalletBucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Wallet{})),
	}
}

// GetWallet returns the wallet of given address. An address that never
// received value has an empty wallet. Wallets are keyed by the raw address
// bytes, so any non empty principal can own one.
func (b WalletBucket) GetWallet(db jointbank.ReadOnlyKVStore, addr jointbank.Address) (*Wallet, error) {
	if len(addr) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "address")
	}
	obj, err := b.Get(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "bucket lookup")
	}
	if obj == nil || obj.Value() == nil {
		return &Wallet{}, nil
	}
	w, ok := obj.Value().(*Wallet)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return w, nil
}

// SaveWallet stores the wallet under given address. An empty wallet is
// removed from the store.
func (b WalletBucket) SaveWallet(db jointbank.KVStore, addr jointbank.Address, w *Wallet) error {
	if w.Balance == 0 {
		return b.Delete(db, addr)
	}
	return b.Save(db, orm.NewSimpleObj(addr, w))
}

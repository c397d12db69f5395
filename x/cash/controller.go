package cash

import (
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/x"
)

// Controller is the value transfer primitive other extensions depend on.
type Controller interface {
	// Balance returns the value owned by given address.
	Balance(db jointbank.ReadOnlyKVStore, addr jointbank.Address) (uint64, error)

	// MoveCoins moves the given amount from src to dest. If src has
	// insufficient value, it fails and nothing is written.
	MoveCoins(db jointbank.KVStore, src, dest jointbank.Address, amount uint64) error

	// IssueCoins adds the given amount to the destination address.
	IssueCoins(db jointbank.KVStore, dest jointbank.Address, amount uint64) error
}

// BaseController is a simple implementation of Controller
// wallets must not be nil
type BaseController struct {
	bucket WalletBucket
}

var _ Controller = BaseController{}

// NewController returns a controller that keeps wallets in given bucket.
func NewController(bucket WalletBucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the value owned by given address.
func (c BaseController) Balance(db jointbank.ReadOnlyKVStore, addr jointbank.Address) (uint64, error) {
	w, err := c.bucket.GetWallet(db, addr)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db jointbank.KVStore, src, dest jointbank.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}

	sender, err := c.bucket.GetWallet(db, src)
	if err != nil {
		return errors.Wrap(err, "sender")
	}
	if sender.Balance == 0 {
		return errors.Wrapf(errors.ErrEmpty, "empty wallet %s", src)
	}
	senderBalance, err := x.SubAmount(sender.Balance, amount)
	if err != nil {
		return errors.Wrap(err, "sender")
	}

	if src.Equals(dest) {
		return nil
	}

	recipient, err := c.bucket.GetWallet(db, dest)
	if err != nil {
		return errors.Wrap(err, "recipient")
	}
	recipientBalance, err := x.AddAmount(recipient.Balance, amount)
	if err != nil {
		return errors.Wrap(err, "recipient")
	}

	// all checks passed, only now write
	if err := c.bucket.SaveWallet(db, src, &Wallet{Balance: senderBalance}); err != nil {
		return errors.Wrap(err, "save sender")
	}
	if err := c.bucket.SaveWallet(db, dest, &Wallet{Balance: recipientBalance}); err != nil {
		return errors.Wrap(err, "save recipient")
	}
	return nil
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db jointbank.KVStore, dest jointbank.Address, amount uint64) error {
	recipient, err := c.bucket.GetWallet(db, dest)
	if err != nil {
		return err
	}
	balance, err := x.AddAmount(recipient.Balance, amount)
	if err != nil {
		return err
	}
	return c.bucket.SaveWallet(db, dest, &Wallet{Balance: balance})
}

package cash

import (
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use jointbank.Address, so address in hex or bech32, not base64
type GenesisAccount struct {
	Address jointbank.Address `json:"address"`
	Balance uint64            `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ jointbank.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts jointbank.Options, kv jointbank.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	control := NewController(NewWalletBucket())
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := control.IssueCoins(kv, acct.Address, acct.Balance); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}

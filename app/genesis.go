package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

// Genesis holds the fields this application reads from a tendermint
// genesis file.
type Genesis struct {
	ChainID  string            `json:"chain_id"`
	AppState jointbank.Options `json:"app_state"`
}

func loadGenesis(filePath string) (Genesis, error) {
	var gen Genesis
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrap(err, "loading genesis file")
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrap(errors.ErrInput, err.Error())
	}
	return gen, nil
}

// ChainInitializers returns an Initializer running all inits in order. The
// first failure stops the chain.
func ChainInitializers(inits ...jointbank.Initializer) jointbank.Initializer {
	return initializers(inits)
}

type initializers []jointbank.Initializer

func (list initializers) FromGenesis(opts jointbank.Options, kv jointbank.KVStore) error {
	for _, ini := range list {
		if err := ini.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}

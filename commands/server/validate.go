package server

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/store"
)

// ValidateGenesis loads the app_state of all given genesis files into a
// throw away store and returns the first failure.
func ValidateGenesis(ini jointbank.Initializer, genesisPaths []string) error {
	if len(genesisPaths) == 0 {
		return errors.Wrap(errors.ErrInput, "usage: validate <genesis file> [<genesis file>...]")
	}
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini jointbank.Initializer, genesisPath string) error {
	b, err := ioutil.ReadFile(genesisPath)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	var genesis struct {
		State jointbank.Options `json:"app_state"`
	}
	if err := json.Unmarshal(b, &genesis); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot JSON deserialize genesis: %s", err)
	}
	if len(genesis.State) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state")
	}

	// Use in memory store because we want to discard the result.
	db := store.MemStore()

	if err := ini.FromGenesis(genesis.State, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}

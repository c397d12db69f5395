package server

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/iov-one/jointbank/errors"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	appStateKey = "app_state"
	dirConfig   = "config"
	genesisFile = "genesis.json"

	flagForce = "i"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

// GenesisPath returns the location of the genesis file inside of given
// home directory.
func GenesisPath(home string) string {
	return filepath.Join(home, dirConfig, genesisFile)
}

// InitCmd will initialize the app_state of the genesis file. A genesis
// file created by tendermint init is extended, otherwise a minimal one
// with a random chain id is written.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	flags := flag.NewFlagSet("init", flag.ExitOnError)
	force := flags.Bool(flagForce, false, "overwrite an existing app_state")
	if err := flags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	// no app_state, leave like tendermint
	if gen == nil {
		return nil
	}
	appState, err := gen(flags.Args())
	if err != nil {
		return err
	}

	genFile := GenesisPath(home)
	doc, err := loadGenesisDoc(genFile)
	if err != nil {
		return err
	}
	if doc == nil {
		chainID := fmt.Sprintf("jointbank-%s", cmn.RandStr(6))
		doc, err = newGenesisDoc(chainID)
		if err != nil {
			return err
		}
		logger.Info("Creating genesis file", "path", genFile, "chain_id", chainID)
	}
	if len(doc[appStateKey]) > 0 && string(doc[appStateKey]) != "null" && !*force {
		return errors.Wrapf(errors.ErrState, "%s already has app_state, use -%s to overwrite it", genFile, flagForce)
	}
	doc[appStateKey] = appState

	if err := writeGenesisDoc(genFile, doc); err != nil {
		return err
	}
	logger.Info("App state written", "path", genFile)
	return nil
}

// loadGenesisDoc returns nil if the file does not exist.
func loadGenesisDoc(filename string) (GenesisDoc, error) {
	bz, err := ioutil.ReadFile(filename)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot parse %s: %s", filename, err)
	}
	return doc, nil
}

func newGenesisDoc(chainID string) (GenesisDoc, error) {
	doc := make(GenesisDoc)
	for k, v := range map[string]interface{}{
		"chain_id":     chainID,
		"genesis_time": time.Now().UTC().Format(time.RFC3339Nano),
	} {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(errors.ErrHuman, err.Error())
		}
		doc[k] = raw
	}
	return doc, nil
}

func writeGenesisDoc(filename string, doc GenesisDoc) error {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrHuman, err.Error())
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return errors.Wrap(errors.ErrHuman, err.Error())
	}
	if err := ioutil.WriteFile(filename, out, 0600); err != nil {
		return errors.Wrap(errors.ErrHuman, err.Error())
	}
	return nil
}

package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/jointbank/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func fixedState(state string) GenOptions {
	return func(args []string) (json.RawMessage, error) {
		return json.RawMessage(state), nil
	}
}

func TestInitCreatesGenesis(t *testing.T) {
	home, err := ioutil.TempDir("", "jointbank-init")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	logger := log.NewNopLogger()
	err = InitCmd(fixedState(`{"cash":[]}`), logger, home, nil)
	require.NoError(t, err)

	doc, err := loadGenesisDoc(GenesisPath(home))
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.JSONEq(t, `{"cash":[]}`, string(doc[appStateKey]))

	var chainID string
	require.NoError(t, json.Unmarshal(doc["chain_id"], &chainID))
	assert.Contains(t, chainID, "jointbank-")

	// a second run must not silently replace the state
	err = InitCmd(fixedState(`{"cash":[1]}`), logger, home, nil)
	assert.True(t, errors.ErrState.Is(err))

	err = InitCmd(fixedState(`{"cash":[1]}`), logger, home, []string{"-i"})
	require.NoError(t, err)
	doc, err = loadGenesisDoc(GenesisPath(home))
	require.NoError(t, err)
	assert.JSONEq(t, `{"cash":[1]}`, string(doc[appStateKey]))
}

func TestInitKeepsTendermintFields(t *testing.T) {
	home, err := ioutil.TempDir("", "jointbank-init")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	genFile := GenesisPath(home)
	require.NoError(t, os.MkdirAll(filepath.Dir(genFile), 0755))
	const tmGenesis = `{
		"genesis_time": "2019-01-01T00:00:00Z",
		"chain_id": "test-chain-Ob3dF0",
		"validators": [{"power": "10", "name": ""}],
		"app_hash": ""
	}`
	require.NoError(t, ioutil.WriteFile(genFile, []byte(tmGenesis), 0600))

	var gotArgs []string
	gen := func(args []string) (json.RawMessage, error) {
		gotArgs = args
		return json.RawMessage(`{"conf":{}}`), nil
	}
	err = InitCmd(gen, log.NewNopLogger(), home, []string{"ABCD", "123"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ABCD", "123"}, gotArgs)

	doc, err := loadGenesisDoc(genFile)
	require.NoError(t, err)
	assert.JSONEq(t, `"test-chain-Ob3dF0"`, string(doc["chain_id"]))
	assert.JSONEq(t, `[{"power": "10", "name": ""}]`, string(doc["validators"]))
	assert.JSONEq(t, `{"conf":{}}`, string(doc[appStateKey]))
}

func TestInitGeneratorError(t *testing.T) {
	home, err := ioutil.TempDir("", "jointbank-init")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	gen := func([]string) (json.RawMessage, error) {
		return nil, errors.Wrap(errors.ErrInput, "bad address")
	}
	err = InitCmd(gen, log.NewNopLogger(), home, nil)
	assert.True(t, errors.ErrInput.Is(err))

	_, err = os.Stat(GenesisPath(home))
	assert.True(t, os.IsNotExist(err))
}

func TestParseStartFlags(t *testing.T) {
	addr, debug, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultBind, addr)
	assert.False(t, debug)

	addr, debug, err = parseFlags([]string{"-bind", "tcp://0.0.0.0:26658", "-debug"})
	require.NoError(t, err)
	assert.Equal(t, "tcp://0.0.0.0:26658", addr)
	assert.True(t, debug)
}

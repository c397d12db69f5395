package app

import (
	"context"
	"testing"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/store/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dummyKey = "dummy"

type dummyInit struct{}

func (dummyInit) FromGenesis(opts jointbank.Options, kv jointbank.KVStore) error {
	var value string
	if err := opts.ReadOptions(dummyKey, &value); err != nil {
		return err
	}
	return kv.Set([]byte(dummyKey), []byte(value))
}

type countInit struct {
	called int
}

func (c *countInit) FromGenesis(opts jointbank.Options, kv jointbank.KVStore) error {
	c.called++
	return nil
}

func TestLoadGenesis(t *testing.T) {
	cases := map[string]struct {
		file         string
		parseError   bool
		initErr      bool
		expectChain  string
		expectCalled int
		expectValue  []byte
	}{
		"no such file": {
			file:       "bad_file.json",
			parseError: true,
			initErr:    true,
		},
		"proper parse": {
			file:         "testdata/genesis.json",
			expectChain:  "test-chain-67",
			expectCalled: 1,
			expectValue:  []byte("secret"),
		},
		"bad init": {
			file:        "testdata/bad_genesis.json",
			initErr:     true,
			expectChain: "super-chain-22",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			gen, err := loadGenesis(tc.file)
			if tc.parseError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expectChain, gen.ChainID)

			c := new(countInit)
			init := ChainInitializers(dummyInit{}, c)
			app := NewStoreApp("foo", iavl.MockCommitStore(), jointbank.NewQueryRouter(), context.Background())
			assert.Equal(t, "", app.GetChainID())

			err = app.LoadGenesis(tc.file, init)
			if tc.initErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expectChain, app.GetChainID())
			assert.Equal(t, tc.expectCalled, c.called)
			val, err := app.DeliverStore().Get([]byte(dummyKey))
			require.NoError(t, err)
			assert.Equal(t, tc.expectValue, val)
		})
	}
}

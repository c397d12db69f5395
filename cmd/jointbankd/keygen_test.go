package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iov-one/jointbank"
	jointbankd "github.com/iov-one/jointbank/cmd/jointbankd/app"
	"github.com/iov-one/jointbank/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeed = "000102030405060708090a0b0c0d0e0f"

func TestKeygenDerived(t *testing.T) {
	var first, second bytes.Buffer
	require.NoError(t, keygenCmd(&first, []string{"-seed", testSeed}))
	require.NoError(t, keygenCmd(&second, []string{"-seed", testSeed}))
	assert.Equal(t, first.String(), second.String())

	var other bytes.Buffer
	require.NoError(t, keygenCmd(&other, []string{"-seed", testSeed, "-path", "m/44'/234'/1'"}))
	assert.NotEqual(t, first.String(), other.String())

	key, err := jointbankd.DeriveKey(testSeed, jointbankd.DefaultDerivationPath)
	require.NoError(t, err)
	assert.Contains(t, first.String(), "address: "+key.Address.String())

	lines := strings.Split(strings.TrimSpace(first.String()), "\n")
	require.Len(t, lines, 3)
	b32 := strings.TrimPrefix(lines[1], "bech32: ")
	addr, err := jointbank.ParseAddress("bech32:" + b32)
	require.NoError(t, err)
	assert.Equal(t, key.Address, addr)
}

func TestKeygenRandom(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, keygenCmd(&a, nil))
	require.NoError(t, keygenCmd(&b, nil))
	assert.NotEqual(t, a.String(), b.String())
}

func TestKeygenInvalidSeed(t *testing.T) {
	var out bytes.Buffer
	err := keygenCmd(&out, []string{"-seed", "not hex"})
	assert.True(t, errors.ErrInput.Is(err))

	// without derivation the seed must be a full ed25519 seed
	err = keygenCmd(&out, []string{"-seed", testSeed, "-path", ""})
	assert.True(t, errors.ErrInput.Is(err))
	assert.Empty(t, out.String())
}

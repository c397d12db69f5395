package app

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/stellar/go/exp/crypto/derivation"
	"golang.org/x/crypto/ed25519"
)

// DefaultDerivationPath is the bip44 path used when deriving a key from
// a seed.
const DefaultDerivationPath = "m/44'/234'/0'"

// Key is an ed25519 key pair together with the principal address it
// controls.
type Key struct {
	Private ed25519.PrivateKey
	Address jointbank.Address
}

// KeyCondition returns the condition an ed25519 public key controls.
func KeyCondition(pub ed25519.PublicKey) jointbank.Condition {
	return jointbank.NewCondition("sigs", "ed25519", pub)
}

// GenerateKey returns a fresh random key.
func GenerateKey() (*Key, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return &Key{Private: priv, Address: KeyCondition(pub).Address()}, nil
}

// DeriveKey derives a key from a hex encoded seed using the given bip44
// path. An empty path uses the seed as the ed25519 private key seed.
func DeriveKey(hexSeed, path string) (*Key, error) {
	seed, err := hex.DecodeString(hexSeed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode seed: %s", err)
	}
	if path != "" {
		k, err := derivation.DeriveForPath(path, seed)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "cannot derive key using path %q: %s", path, err)
		}
		seed = k.Key
	}
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(errors.ErrInput, "seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	return &Key{Private: priv, Address: KeyCondition(pub).Address()}, nil
}

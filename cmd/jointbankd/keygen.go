package main

import (
	"flag"
	"fmt"
	"io"

	jointbankd "github.com/iov-one/jointbank/cmd/jointbankd/app"
	"github.com/iov-one/jointbank/errors"
)

const bech32Prefix = "jbank"

// keygenCmd prints a new principal address and its private key. With a
// seed the key is derived, otherwise it is random.
func keygenCmd(out io.Writer, args []string) error {
	fl := flag.NewFlagSet("keygen", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(fl.Output(), `
Generate an ed25519 key and print the principal address it controls.

`)
		fl.PrintDefaults()
	}
	var (
		seedFl = fl.String("seed", "", "hex encoded seed to derive the key from, random key if empty")
		pathFl = fl.String("path", jointbankd.DefaultDerivationPath, "bip44 derivation path used with the seed, empty to use the seed as is")
	)
	if err := fl.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	var (
		key *jointbankd.Key
		err error
	)
	if *seedFl == "" {
		key, err = jointbankd.GenerateKey()
	} else {
		key, err = jointbankd.DeriveKey(*seedFl, *pathFl)
	}
	if err != nil {
		return err
	}

	b32, err := key.Address.Bech32(bech32Prefix)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "address: %s\nbech32: %s\nprivate key: %X\n", key.Address, b32, []byte(key.Private))
	return err
}

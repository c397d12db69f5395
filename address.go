package jointbank

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/jointbank/errors"
)

// AddressLength is the size of every address. It may only be changed in an
// init function, before any address is stored.
var AddressLength = 20

// Address identifies a principal of the ledger. It is the truncated sha256
// digest of a Condition.
type Address []byte

// NewAddress returns the address of data.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	sum := sha256.Sum256(data)
	return sum[:AddressLength]
}

func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Validate checks the address length.
func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address: %v", a)
	}
	return nil
}

// String returns the uppercase hex form, or "(nil)".
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32 encodes the address with the human readable part hrp.
func (a Address) Bech32(hrp string) (string, error) {
	data, err := bech32.ConvertBits(a, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, "bech32 convert bits")
	}
	enc, err := bech32.Encode(hrp, data)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "bech32 encode: %s", err)
	}
	return enc, nil
}

// MarshalJSON writes the uppercase hex form.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

// UnmarshalJSON accepts every format of ParseAddress.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// addressDecoders holds the formats understood by ParseAddress.
var addressDecoders = map[string]func(string) (Address, error){
	"hex": func(s string) (Address, error) {
		raw, err := hex.DecodeString(s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "cannot decode hex")
		}
		return Address(raw), nil
	},
	"bech32": func(s string) (Address, error) {
		_, data, err := bech32.Decode(s)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "bech32 decode: %s", err)
		}
		raw, err := bech32.ConvertBits(data, 5, 8, false)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "bech32 convert bits: %s", err)
		}
		return Address(raw), nil
	},
	"cond": func(s string) (Address, error) {
		c, err := parseCondition(s)
		if err != nil {
			return nil, err
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return c.Address(), nil
	},
}

// ParseAddress decodes a human readable address. An optional prefix selects
// the format:
//
//   <hex>, hex:<hex>       hex encoded address
//   bech32:<bech32>        bech32 encoded address with any human readable part
//   cond:<ext>/<typ>/<hex> address of the condition
//
// An empty value is a nil address.
func ParseAddress(s string) (Address, error) {
	format, value := "hex", s
	if n := strings.IndexByte(s, ':'); n >= 0 {
		format, value = s[:n], s[n+1:]
	}
	decode, ok := addressDecoders[format]
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "unknown format %q", format)
	}
	if value == "" {
		return nil, nil
	}
	addr, err := decode(value)
	if err != nil {
		return nil, err
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

package jointbank

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/iov-one/jointbank/errors"
)

// conditionFormat matches "<extension>/<type>/<data>". The (?s) flag lets
// the data section hold any byte, newlines included.
var conditionFormat = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,8})/([a-zA-Z0-9_\-]{3,8})/(.+)$`)

// Condition describes who controls an address, as the bytes of
// "<extension>/<type>/<data>". The custody address of a bank account is
// derived from the "bankacct/account/<id>" condition, a key holder address
// from "sigs/ed25519/<pubkey>".
type Condition []byte

// NewCondition builds a condition out of its sections.
func NewCondition(ext, typ string, data []byte) Condition {
	c := make(Condition, 0, len(ext)+len(typ)+len(data)+2)
	c = append(c, ext...)
	c = append(c, '/')
	c = append(c, typ...)
	c = append(c, '/')
	return append(c, data...)
}

// Parse splits a well formed condition into its sections.
func (c Condition) Parse() (ext string, typ string, data []byte, err error) {
	m := conditionFormat.FindSubmatch(c)
	if m == nil {
		return "", "", nil, errors.Wrapf(errors.ErrInput, "condition: %X", []byte(c))
	}
	return string(m[1]), string(m[2]), m[3], nil
}

// Address returns the address controlled by c.
func (c Condition) Address() Address {
	return NewAddress(c)
}

func (c Condition) Equals(b Condition) bool {
	return bytes.Equal(c, b)
}

// String prints the extension and type as they are and the data in
// uppercase hex.
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("Invalid Condition: %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

func (c Condition) Validate() error {
	if !conditionFormat.Match(c) {
		return errors.Wrapf(errors.ErrInput, "condition: %X", []byte(c))
	}
	return nil
}

// MarshalJSON encodes the String form. A nil condition is an empty string.
func (c Condition) MarshalJSON() ([]byte, error) {
	if c == nil {
		return json.Marshal("")
	}
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes the String form.
func (c *Condition) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	cond, err := parseCondition(s)
	if err != nil {
		return err
	}
	*c = cond
	return nil
}

// parseCondition reads "<ext>/<type>/<hex data>". An empty string is a nil
// condition.
func parseCondition(s string) (Condition, error) {
	if s == "" {
		return nil, nil
	}
	sections := strings.Split(s, "/")
	if len(sections) != 3 {
		return nil, errors.Wrap(errors.ErrInput, "invalid condition format")
	}
	data, err := hex.DecodeString(sections[2])
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "malformed condition data: %s", err)
	}
	return NewCondition(sections[0], sections[1], data), nil
}

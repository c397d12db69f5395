package weavetest

import "github.com/iov-one/jointbank"

// Tx is a jointbank.Tx mock carrying Msg. GetMsg fails with Err when set.
// It cannot be serialized.
type Tx struct {
	Msg jointbank.Msg
	Err error
}

var _ jointbank.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (jointbank.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Unmarshal([]byte) error {
	panic("weavetest.Tx cannot be unmarshaled")
}

func (tx *Tx) Marshal() ([]byte, error) {
	panic("weavetest.Tx cannot be marshaled")
}

// Msg is a jointbank.Msg mock routed to RoutePath. Its serialized form is
// Serialized. Every method fails with Err when set.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ jointbank.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}

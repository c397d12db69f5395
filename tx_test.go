package jointbank

import (
	"testing"

	"github.com/iov-one/jointbank/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingMsg struct {
	Text string
}

func (m *pingMsg) Marshal() ([]byte, error) { return []byte(m.Text), nil }
func (m *pingMsg) Unmarshal(b []byte) error { m.Text = string(b); return nil }
func (*pingMsg) Path() string { return "test/ping" }
func (m *pingMsg) Validate() error {
	if m.Text == "" {
		return errors.Wrap(errors.ErrEmpty, "text")
	}
	return nil
}

type pongMsg struct{ pingMsg }

func (*pongMsg) Path() string { return "test/pong" }

type msgTx struct {
	msg Msg
	err error
}

func (*msgTx) Marshal() ([]byte, error) { return nil, nil }
func (*msgTx) Unmarshal([]byte) error { return nil }
func (tx *msgTx) GetMsg() (Msg, error) { return tx.msg, tx.err }

func TestLoadMsg(t *testing.T) {
	var msg *pingMsg
	err := LoadMsg(&msgTx{msg: &pingMsg{Text: "hello"}}, &msg)
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Text)

	var other *pingMsg
	err = LoadMsg(&msgTx{msg: &pongMsg{pingMsg{Text: "x"}}}, &other)
	assert.True(t, errors.ErrType.Is(err))
	assert.Nil(t, other)

	err = LoadMsg(&msgTx{msg: &pingMsg{}}, &other)
	assert.True(t, errors.ErrEmpty.Is(err))

	err = LoadMsg(&msgTx{}, &other)
	assert.True(t, errors.ErrMsg.Is(err))

	err = LoadMsg(&msgTx{err: errors.ErrNotFound}, &other)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "test/ping", GetPath(&msgTx{msg: &pingMsg{}}))
	assert.Equal(t, "(missing)", GetPath(&msgTx{}))
}

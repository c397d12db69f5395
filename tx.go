package jointbank

import (
	"reflect"

	"github.com/iov-one/jointbank/errors"
)

// Msg is a request for a state transition. Only the request is carried,
// authentication data lives in the wrapping Tx.
type Msg interface {
	Persistent

	// Path is used by the router to find the handler of the message. It
	// matches [0-9A-Za-z_/]+, for example "bankaccount/deposit".
	Path() string

	// Validate runs the stateless checks of the message.
	Validate() error
}

// Marshaller is anything with a binary representation.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent can be serialized and loaded back. Unmarshal usually needs a
// pointer receiver, which is why it is kept apart from Marshaller.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx is the envelope submitted by a client. It carries one message and
// what the decorators need to authenticate it. Each application defines
// its own Tx type.
type Tx interface {
	Persistent

	GetMsg() (Msg, error)
}

// GetPath returns the path of the message carried by tx, or "(missing)".
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// TxDecoder parses a raw transaction.
type TxDecoder func(txBytes []byte) (Tx, error)

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning message validation method is called.
//
// The destination must be a pointer to a variable of the message type:
//
//   var msg *DepositMsg
//   if err := jointbank.LoadMsg(tx, &msg); err != nil { ... }
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "transaction carries no message")
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.IsNil() {
		return errors.Wrap(errors.ErrHuman, "destination must be a non nil pointer")
	}
	src := reflect.ValueOf(msg)
	if src.Type() != dest.Elem().Type() {
		return errors.Wrapf(errors.ErrType, "want %s message, got %T",
			dest.Elem().Type(), msg)
	}

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	dest.Elem().Set(src)
	return nil
}

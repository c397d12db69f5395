package orm

import (
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

// Object is a value together with the primary key it is stored under.
type Object interface {
	Key() []byte
	SetKey([]byte)
	Validate() error
	Value() jointbank.Persistent
	Cloneable
}

// Cloneable returns an empty copy that data can be loaded into.
type Cloneable interface {
	Clone() Object
}

// CloneableData is a stored value that can copy itself, so a bucket can
// hand out fresh instances.
type CloneableData interface {
	jointbank.Persistent
	Validate() error
	Copy() CloneableData
}

// SimpleObj pairs a key with a CloneableData value.
type SimpleObj struct {
	key   []byte
	value CloneableData
}

var _ Object = (*SimpleObj)(nil)

// NewSimpleObj returns an object holding value under key.
func NewSimpleObj(key []byte, value CloneableData) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o SimpleObj) Key() []byte {
	return o.key
}

func (o *SimpleObj) SetKey(key []byte) {
	o.key = key
}

func (o SimpleObj) Value() jointbank.Persistent {
	return o.value
}

// Validate requires a key and a valid value.
func (o SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Wrap(errors.ErrEmpty, "missing key")
	case o.value == nil:
		return errors.Wrap(errors.ErrEmpty, "missing value")
	}
	return o.value.Validate()
}

// Clone copies the value and the key, if any.
func (o *SimpleObj) Clone() Object {
	var key []byte
	if len(o.key) != 0 {
		key = append(key, o.key...)
	}
	return &SimpleObj{key: key, value: o.value.Copy()}
}

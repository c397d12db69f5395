package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/jointbank/errors"
)

// Counter is a test model holding a single number.
type Counter struct {
	Count int64 `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
}

type counterWire Counter

func (m *counterWire) Reset()         { *m = counterWire{} }
func (m *counterWire) String() string { return proto.CompactTextString(m) }
func (*counterWire) ProtoMessage()    {}

func (c *Counter) Marshal() ([]byte, error) {
	return proto.Marshal((*counterWire)(c))
}

func (c *Counter) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*counterWire)(c))
}

func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrState, "negative count")
	}
	return nil
}

func (c *Counter) Copy() CloneableData {
	return &Counter{Count: c.Count}
}

var _ Model = (*Counter)(nil)

func counterObj(key string, count int64) *SimpleObj {
	return NewSimpleObj([]byte(key), &Counter{Count: count})
}

// countByte indexes a counter by its last 8 bits.
func countByte(obj Object) ([]byte, error) {
	c, ok := obj.Value().(*Counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return []byte{byte(c.Count % 256)}, nil
}

// countDigits indexes a counter under every decimal digit it contains.
func countDigits(obj Object) ([][]byte, error) {
	c, ok := obj.Value().(*Counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	seen := make(map[byte]bool)
	var keys [][]byte
	for n := c.Count; n > 0; n /= 10 {
		d := byte('0' + n%10)
		if !seen[d] {
			seen[d] = true
			keys = append(keys, []byte{d})
		}
	}
	return keys, nil
}

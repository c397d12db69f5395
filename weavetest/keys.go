package weavetest

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/iov-one/jointbank"
)

var condSeq uint64

// NewCondition returns a condition that is unique within the test process.
func NewCondition() jointbank.Condition {
	n := atomic.AddUint64(&condSeq, 1)
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, n)
	return jointbank.NewCondition("weavetest", "principal", data)
}

// NewAddress returns an address that is unique within the test process. Use
// it to create principals.
func NewAddress() jointbank.Address {
	return NewCondition().Address()
}

// SequenceID returns the binary representation of a sequence value, the way
// orm.Sequence encodes it.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

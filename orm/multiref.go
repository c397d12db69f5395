package orm

import (
	"bytes"
	"sort"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/jointbank/errors"
)

// MultiRef is an ordered set of references, used as the value of non unique
// index entries.
type MultiRef struct {
	Refs [][]byte `protobuf:"bytes,1,rep,name=refs,proto3" json:"refs,omitempty"`
}

var _ CloneableData = (*MultiRef)(nil)

type multiRefWire MultiRef

func (m *multiRefWire) Reset()         { *m = multiRefWire{} }
func (m *multiRefWire) String() string { return proto.CompactTextString(m) }
func (*multiRefWire) ProtoMessage()    {}

func (m *MultiRef) Marshal() ([]byte, error) {
	return proto.Marshal((*multiRefWire)(m))
}

func (m *MultiRef) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*multiRefWire)(m))
}

func (m *MultiRef) GetRefs() [][]byte {
	if m == nil {
		return nil
	}
	return m.Refs
}

// NewMultiRef returns a set holding refs. Duplicates are an error.
func NewMultiRef(refs ...[]byte) (*MultiRef, error) {
	var m MultiRef
	for _, r := range refs {
		if err := m.Add(r); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

// search returns the position of ref in the set, or where it would be
// inserted, and whether it is present.
func (m *MultiRef) search(ref []byte) (int, bool) {
	n := sort.Search(len(m.Refs), func(i int) bool {
		return bytes.Compare(m.Refs[i], ref) >= 0
	})
	return n, n < len(m.Refs) && bytes.Equal(m.Refs[n], ref)
}

// Add inserts ref keeping the set ordered. Adding a present ref fails with
// ErrDuplicate.
func (m *MultiRef) Add(ref []byte) error {
	n, ok := m.search(ref)
	if ok {
		return errors.Wrap(errors.ErrDuplicate, "ref already in set")
	}
	m.Refs = append(m.Refs, nil)
	copy(m.Refs[n+1:], m.Refs[n:])
	m.Refs[n] = ref
	return nil
}

// Remove drops ref from the set. A missing ref fails with ErrNotFound.
func (m *MultiRef) Remove(ref []byte) error {
	n, ok := m.search(ref)
	if !ok {
		return errors.Wrap(errors.ErrNotFound, "ref not in set")
	}
	m.Refs = append(m.Refs[:n], m.Refs[n+1:]...)
	return nil
}

func (m *MultiRef) Copy() CloneableData {
	return &MultiRef{Refs: append([][]byte(nil), m.Refs...)}
}

// Validate rejects an empty set.
func (m *MultiRef) Validate() error {
	if len(m.GetRefs()) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no references")
	}
	return nil
}

package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

// ResultSet is the wire form of the keys or the values returned by a query.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

type resultSetWire ResultSet

func (m *resultSetWire) Reset()         { *m = resultSetWire{} }
func (m *resultSetWire) String() string { return proto.CompactTextString(m) }
func (*resultSetWire) ProtoMessage()    {}

func (r *ResultSet) Marshal() ([]byte, error) {
	return proto.Marshal((*resultSetWire)(r))
}

func (r *ResultSet) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*resultSetWire)(r))
}

// ResultsFromKeys collects the keys of models.
func ResultsFromKeys(models []jointbank.Model) *ResultSet {
	return collect(models, func(m jointbank.Model) []byte { return m.Key })
}

// ResultsFromValues collects the values of models.
func ResultsFromValues(models []jointbank.Model) *ResultSet {
	return collect(models, func(m jointbank.Model) []byte { return m.Value })
}

func collect(models []jointbank.Model, pick func(jointbank.Model) []byte) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = pick(m)
	}
	return &ResultSet{Results: res}
}

// JoinResults pairs the keys and values of a query response back into
// models.
func JoinResults(keys, values *ResultSet) ([]jointbank.Model, error) {
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrapf(errors.ErrState, "mismatched result set size: %d keys, %d values",
			len(keys.Results), len(values.Results))
	}
	models := make([]jointbank.Model, len(keys.Results))
	for i, k := range keys.Results {
		models[i] = jointbank.Pair(k, values.Results[i])
	}
	return models, nil
}

// UnmarshalOneResult decodes the first entry of a serialized ResultSet into
// o. An empty set leaves o untouched.
func UnmarshalOneResult(raw []byte, o jointbank.Persistent) error {
	var set ResultSet
	if err := set.Unmarshal(raw); err != nil {
		return err
	}
	if len(set.Results) == 0 {
		return nil
	}
	return o.Unmarshal(set.Results[0])
}

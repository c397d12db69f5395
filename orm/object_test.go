package orm

import (
	"testing"

	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/weavetest/assert"
)

func TestSimpleObj(t *testing.T) {
	obj := counterObj("key", 17)
	assert.Nil(t, obj.Validate())

	cpy := obj.Clone()
	assert.Equal(t, []byte("key"), cpy.Key())
	cpy.Value().(*Counter).Count = 5
	assert.Equal(t, int64(17), obj.Value().(*Counter).Count)

	cpy.SetKey([]byte("other"))
	assert.Equal(t, []byte("key"), obj.Key())

	assert.IsErr(t, errors.ErrEmpty, NewSimpleObj(nil, &Counter{}).Validate())
	assert.IsErr(t, errors.ErrEmpty, NewSimpleObj([]byte("k"), nil).Validate())
	assert.IsErr(t, errors.ErrState, counterObj("k", -1).Validate())
}

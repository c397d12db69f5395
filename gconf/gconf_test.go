package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/store"
	"github.com/iov-one/jointbank/weavetest/assert"
)

// limitConf is a test configuration serialized as JSON.
type limitConf struct {
	Limit int `json:"limit"`
}

func (c *limitConf) Marshal() ([]byte, error) { return json.Marshal(c) }
func (c *limitConf) Unmarshal(raw []byte) error { return json.Unmarshal(raw, c) }

func (c *limitConf) Validate() error {
	if c.Limit <= 0 {
		return errors.Wrap(errors.ErrInput, "limit must be positive")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var got limitConf
	assert.IsErr(t, errors.ErrNotFound, Load(db, "test", &got))

	assert.IsErr(t, errors.ErrInput, Save(db, "test", &limitConf{Limit: -1}))
	assert.IsErr(t, errors.ErrNotFound, Load(db, "test", &got))

	assert.Nil(t, Save(db, "test", &limitConf{Limit: 3}))
	assert.Nil(t, Load(db, "test", &got))
	assert.Equal(t, 3, got.Limit)

	// other packages are independent
	assert.IsErr(t, errors.ErrNotFound, Load(db, "other", &got))
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
		want    int
	}{
		"valid configuration": {
			genesis: `{"conf": {"test": {"limit": 7}}}`,
			want:    7,
		},
		"missing package configuration": {
			genesis: `{"conf": {"other": {"limit": 7}}}`,
			wantErr: errors.ErrNotFound,
		},
		"missing conf section": {
			genesis: `{}`,
			wantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			genesis: `{"conf": {"test": {"limit": 0}}}`,
			wantErr: errors.ErrInput,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var opts jointbank.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.genesis), &opts))

			db := store.MemStore()
			err := InitConfig(db, opts, "test", &limitConf{})
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)

			var got limitConf
			assert.Nil(t, Load(db, "test", &got))
			assert.Equal(t, tc.want, got.Limit)
		})
	}
}

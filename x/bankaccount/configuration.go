package bankaccount

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/gconf"
)

const (
	// MaxOwners is the upper limit of owners of a single account. A
	// configuration may lower it but never raise it.
	MaxOwners = 4

	packageName = "bankaccount"
)

// Configuration holds the settings of this extension.
type Configuration struct {
	MaxOwners uint32 `protobuf:"varint,1,opt,name=max_owners,proto3" json:"max_owners"`
}

var _ gconf.Configuration = (*Configuration)(nil)

type configurationWire Configuration

func (m *configurationWire) Reset()         { *m = configurationWire{} }
func (m *configurationWire) String() string { return proto.CompactTextString(m) }
func (*configurationWire) ProtoMessage()    {}

// Marshal serializes the configuration with protobuf.
func (c *Configuration) Marshal() ([]byte, error) {
	return proto.Marshal((*configurationWire)(c))
}

// Unmarshal loads the configuration from its protobuf representation.
func (c *Configuration) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*configurationWire)(c))
}

// Validate ensures the owner limit is within range.
func (c *Configuration) Validate() error {
	if c.MaxOwners < 1 || c.MaxOwners > MaxOwners {
		return errors.Wrapf(errors.ErrInput, "max owners must be between 1 and %d, got %d", MaxOwners, c.MaxOwners)
	}
	return nil
}

// DefaultConfiguration is used when none was stored.
func DefaultConfiguration() Configuration {
	return Configuration{MaxOwners: MaxOwners}
}

// loadConf returns the stored configuration or the default one.
func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	err := gconf.Load(db, packageName, &conf)
	switch {
	case errors.ErrNotFound.Is(err):
		conf = DefaultConfiguration()
		return &conf, nil
	case err != nil:
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

// Initializer fulfils the Initializer interface to load the configuration
// from the genesis file.
type Initializer struct{}

var _ jointbank.Initializer = Initializer{}

// FromGenesis stores conf.bankaccount if present. Without it the default
// configuration applies.
func (Initializer) FromGenesis(opts jointbank.Options, kv jointbank.KVStore) error {
	var conf Configuration
	err := gconf.InitConfig(kv, opts, packageName, &conf)
	if errors.ErrNotFound.Is(err) {
		return nil
	}
	return err
}

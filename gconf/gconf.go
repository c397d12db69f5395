package gconf

import (
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

// ReadStore is the read access needed by Load.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the access needed by Save and InitConfig.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// ValidMarshaler is a serializable value that can check its own content.
type ValidMarshaler interface {
	Marshal() ([]byte, error)
	Validate() error
}

// Unmarshaler loads its state from a binary representation.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Configuration is the singleton configuration of an extension.
type Configuration interface {
	ValidMarshaler
	Unmarshaler
}

// key returns the store key of the configuration of pkg.
func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates src and stores it as the configuration of pkg.
func Save(db Store, pkg string, src ValidMarshaler) error {
	k := key(pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", k)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal: key %q", k)
	}
	return db.Set(k, raw)
}

// Load reads the configuration of pkg into dst. ErrNotFound is returned
// when none was saved.
func Load(db ReadStore, pkg string, dst Unmarshaler) error {
	k := key(pkg)
	raw, err := db.Get(k)
	switch {
	case err != nil:
		return err
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "key %q", k)
	}
	return errors.Wrapf(dst.Unmarshal(raw), "unmarshal: key %q", k)
}

// InitConfig reads the genesis document conf.<pkg> into conf and saves it.
// A missing document is ErrNotFound.
func InitConfig(db Store, opts jointbank.Options, pkg string, conf Configuration) error {
	var all jointbank.Options
	if err := opts.ReadOptions("conf", &all); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if _, ok := all[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q package", pkg)
	}
	if err := all.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read configuration for %s", pkg)
	}
	return errors.Wrapf(Save(db, pkg, conf), "save configuration for %s", pkg)
}

package clb

import (
	"os"

	"github.com/bgrewell/jps-kit/pkg/jpserr"
)

// FromBinaryPath reads and parses a Database from disk.
func FromBinaryPath(path string, opts ...Option) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &jpserr.Io{Source: err}
	}
	return FromBinary(data, opts...)
}

// ToBinaryPath re-emits the Database and writes it to disk.
func (db *Database) ToBinaryPath(path string, opts ...Option) error {
	data, err := db.ToBinary(opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &jpserr.Io{Source: err}
	}
	return nil
}

// FromJSONPath reads and decodes a Database's JSON projection from disk.
func FromJSONPath(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &jpserr.Io{Source: err}
	}
	return FromJSON(string(data))
}

// ToJSONPath encodes the Database's JSON projection and writes it to disk.
func (db *Database) ToJSONPath(path string) error {
	s, err := db.ToJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
		return &jpserr.Io{Source: err}
	}
	return nil
}

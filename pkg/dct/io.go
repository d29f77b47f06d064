package dct

import (
	"os"

	"github.com/bgrewell/jps-kit/pkg/jpserr"
)

// FromBinaryPath reads and parses a Table from disk.
func FromBinaryPath(path string, opts ...Option) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &jpserr.Io{Source: err}
	}
	return FromBinary(data, opts...)
}

// ToBinaryPath re-emits the Table and writes it to disk.
func (t *Table) ToBinaryPath(path string, opts ...Option) error {
	data, err := t.ToBinary(opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &jpserr.Io{Source: err}
	}
	return nil
}

// FromJSONPath reads and decodes a Table's JSON projection from disk.
func FromJSONPath(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &jpserr.Io{Source: err}
	}
	return FromJSON(string(data))
}

// ToJSONPath encodes the Table's JSON projection and writes it to disk.
func (t *Table) ToJSONPath(path string) error {
	s, err := t.ToJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
		return &jpserr.Io{Source: err}
	}
	return nil
}

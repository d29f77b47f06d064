package scene

import (
	"os"

	"github.com/bgrewell/jps-kit/pkg/jpserr"
)

// FromBinaryPath reads and parses a Scene from disk.
func FromBinaryPath(path string, opts ...Option) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &jpserr.Io{Source: err}
	}
	return FromBinary(data, opts...)
}

// ToBinaryPath re-emits the Scene and writes it to disk.
func (s *Scene) ToBinaryPath(path string, opts ...Option) error {
	data, err := s.ToBinary(opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &jpserr.Io{Source: err}
	}
	return nil
}

// FromJSONPath reads and decodes a Scene's JSON projection from disk.
func FromJSONPath(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &jpserr.Io{Source: err}
	}
	return FromJSON(string(data))
}

// ToJSONPath encodes the Scene's JSON projection and writes it to disk.
func (s *Scene) ToJSONPath(path string) error {
	str, err := s.ToJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(str), 0o644); err != nil {
		return &jpserr.Io{Source: err}
	}
	return nil
}

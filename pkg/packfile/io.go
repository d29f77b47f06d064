package packfile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bgrewell/jps-kit/pkg/jpserr"
)

// FromBinaryPath reads and parses a Packfile from disk.
func FromBinaryPath(path string, opts ...Option) (*Packfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &jpserr.Io{Source: err}
	}
	return FromBinary(data, opts...)
}

// ToBinaryPath re-emits the Packfile and writes it to disk.
func (pf *Packfile) ToBinaryPath(path string, opts ...Option) error {
	data, err := pf.ToBinary(opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &jpserr.Io{Source: err}
	}
	return nil
}

// FromJSONPath reads and decodes a Packfile's JSON projection from disk.
func FromJSONPath(path string) (*Packfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &jpserr.Io{Source: err}
	}
	return FromJSON(string(data))
}

// ToJSONPath encodes the Packfile's JSON projection and writes it to disk.
func (pf *Packfile) ToJSONPath(path string) error {
	s, err := pf.ToJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
		return &jpserr.Io{Source: err}
	}
	return nil
}

func normalizePath(p string) string {
	return strings.ToLower(strings.ReplaceAll(p, "\\", "/"))
}

// Contains reports whether path (case-insensitive, backslash-tolerant)
// exists in the Packfile.
func (pf *Packfile) Contains(path string) bool {
	target := normalizePath(path)
	for _, vf := range pf.Files {
		if normalizePath(vf.Path) == target {
			return true
		}
	}
	return false
}

// Paths returns every virtual file's path, in container order.
func (pf *Packfile) Paths() []string {
	paths := make([]string, len(pf.Files))
	for i, vf := range pf.Files {
		paths[i] = vf.Path
	}
	return paths
}

// GetDataFromPath looks up a virtual file by path, case-insensitively
// and tolerant of backslashes, returning its uncompressed bytes.
func (pf *Packfile) GetDataFromPath(path string) ([]byte, error) {
	target := normalizePath(path)
	for _, vf := range pf.Files {
		if normalizePath(vf.Path) == target {
			return vf.Data, nil
		}
	}
	return nil, &jpserr.NotFound{Path: path}
}

// SetDataFromPath replaces the bytes of an existing virtual file,
// looked up the same way as GetDataFromPath.
func (pf *Packfile) SetDataFromPath(path string, data []byte) error {
	target := normalizePath(path)
	for _, vf := range pf.Files {
		if normalizePath(vf.Path) == target {
			vf.Data = data
			return nil
		}
	}
	return &jpserr.NotFound{Path: path}
}

// Extract writes every virtual file verbatim under destDir, preserving
// its path.
func (pf *Packfile) Extract(destDir string) error {
	for _, vf := range pf.Files {
		fullPath := filepath.Join(destDir, filepath.FromSlash(vf.Path))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			return &jpserr.Io{Source: err}
		}
		if err := os.WriteFile(fullPath, vf.Data, 0o644); err != nil {
			return &jpserr.Io{Source: err}
		}
	}
	return nil
}

// decompilableExtensions is used by ExtractDecompiled to decide which
// entries get an accompanying JSON projection. Decompilation itself is
// the caller's responsibility via the decompile callback; this package
// does not import the dct/clb/scene packages.
var decompilableExtensions = map[string]bool{
	".dct": true,
	".bin": true,
	".clb": true,
}

// Decompiler converts a raw entry payload into its JSON projection.
type Decompiler func(ext string, data []byte) (json string, err error)

// ExtractDecompiled is like Extract, but for entries whose extension is
// one of .dct/.bin/.clb it also writes "<path>.json" containing the
// JSON projection produced by decompile. If overwrite is false and the
// JSON target already exists, it is left untouched.
func (pf *Packfile) ExtractDecompiled(destDir string, overwrite bool, decompile Decompiler) error {
	if err := pf.Extract(destDir); err != nil {
		return err
	}
	for _, vf := range pf.Files {
		ext := strings.ToLower(filepath.Ext(vf.Path))
		if !decompilableExtensions[ext] {
			continue
		}
		jsonPath := filepath.Join(destDir, filepath.FromSlash(vf.Path)+".json")
		if !overwrite {
			if _, err := os.Stat(jsonPath); err == nil {
				continue
			}
		}
		jsonStr, err := decompile(ext, vf.Data)
		if err != nil {
			return err
		}
		if err := os.WriteFile(jsonPath, []byte(jsonStr), 0o644); err != nil {
			return &jpserr.Io{Source: err}
		}
	}
	return nil
}

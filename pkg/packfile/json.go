package packfile

import (
	"encoding/json"

	"github.com/bgrewell/jps-kit/pkg/cursor"
)

type jsonVirtualFile struct {
	TypeTag          string `json:"type_tag,omitempty"`
	Compressed       bool   `json:"compressed,omitempty"`
	CompressionLevel int    `json:"compression_level,omitempty"`
	Path             string `json:"path"`
	Data             []byte `json:"data"`
}

type jsonPackfile struct {
	Endian string            `json:"endian"`
	Files  []jsonVirtualFile `json:"files,omitempty"`
}

func endianName(e cursor.Endian) string {
	if e == cursor.BigEndian {
		return "big"
	}
	return "little"
}

func endianFromName(s string) cursor.Endian {
	if s == "big" {
		return cursor.BigEndian
	}
	return cursor.LittleEndian
}

// ToJSON encodes the Packfile's JSON projection. Binary data is
// base64-encoded, matching encoding/json's []byte convention.
func (pf *Packfile) ToJSON() (string, error) {
	out := jsonPackfile{Endian: endianName(pf.Endian)}
	for _, vf := range pf.Files {
		out.Files = append(out.Files, jsonVirtualFile{
			TypeTag:          vf.TypeTag,
			Compressed:       vf.Compressed,
			CompressionLevel: vf.CompressionLevel,
			Path:             vf.Path,
			Data:             vf.Data,
		})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FromJSON decodes a Packfile's JSON projection.
func FromJSON(s string) (*Packfile, error) {
	var in jsonPackfile
	if err := json.Unmarshal([]byte(s), &in); err != nil {
		return nil, err
	}
	pf := &Packfile{Endian: endianFromName(in.Endian)}
	for _, jvf := range in.Files {
		pf.Files = append(pf.Files, &VirtualFile{
			TypeTag:          jvf.TypeTag,
			Compressed:       jvf.Compressed,
			CompressionLevel: jvf.CompressionLevel,
			Path:             jvf.Path,
			Data:             jvf.Data,
		})
	}
	return pf, nil
}

package dct

import "encoding/json"

type jsonTable struct {
	Magic    string        `json:"magic"`
	Version1 uint32        `json:"version1"`
	HashSeed uint32        `json:"hash_seed"`
	Version2 uint32        `json:"version2"`
	Dialog   []DialogEntry `json:"dialog,omitempty"`
	Footer   []FooterEntry `json:"footer,omitempty"`
}

// ToJSON encodes the Table's JSON projection.
func (t *Table) ToJSON() (string, error) {
	out := jsonTable{
		Magic:    t.Magic,
		Version1: t.Version1,
		HashSeed: t.HashSeed,
		Version2: t.Version2,
		Dialog:   t.Dialog,
		Footer:   t.Footer,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FromJSON decodes a Table's JSON projection.
func FromJSON(s string) (*Table, error) {
	var in jsonTable
	if err := json.Unmarshal([]byte(s), &in); err != nil {
		return nil, err
	}
	return &Table{
		Magic:    in.Magic,
		Version1: in.Version1,
		HashSeed: in.HashSeed,
		Version2: in.Version2,
		Dialog:   in.Dialog,
		Footer:   in.Footer,
	}, nil
}

package clb

import "encoding/json"

type jsonDatabase struct {
	Version      uint32        `json:"version"`
	Collectibles []Collectible `json:"collectibles,omitempty"`
	Extras       []Extra       `json:"extras,omitempty"`
}

// ToJSON encodes the Database's JSON projection.
func (db *Database) ToJSON() (string, error) {
	out := jsonDatabase{Version: db.Version, Collectibles: db.Collectibles, Extras: db.Extras}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FromJSON decodes a Database's JSON projection.
func FromJSON(s string) (*Database, error) {
	var in jsonDatabase
	if err := json.Unmarshal([]byte(s), &in); err != nil {
		return nil, err
	}
	return &Database{Version: in.Version, Collectibles: in.Collectibles, Extras: in.Extras}, nil
}

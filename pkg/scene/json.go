package scene

import (
	"encoding/json"

	"github.com/bgrewell/jps-kit/pkg/id"
)

type jsonProperty struct {
	ClassName string `json:"class_name"`
	Name      string `json:"name"`
	Asset     bool   `json:"asset,omitempty"`
	Palette   bool   `json:"palette,omitempty"`
	Template  bool   `json:"template,omitempty"`
	List      bool   `json:"list,omitempty"`
	Values    []any  `json:"values"`
}

type jsonComponent struct {
	ClassName    string         `json:"class_name"`
	TemplateID   string         `json:"template_id"`
	LinkID       uint32         `json:"link_id"`
	MasterLinkID uint32         `json:"master_link_id,omitempty"`
	Properties   []jsonProperty `json:"properties,omitempty"`
}

type jsonEntity struct {
	Name         string          `json:"name"`
	LinkID       uint32          `json:"link_id"`
	MasterLinkID uint32          `json:"master_link_id,omitempty"`
	Unknown      uint32          `json:"unknown,omitempty"`
	UnknownEM2   uint32          `json:"unknown_em2,omitempty"`
	Components   []jsonComponent `json:"components,omitempty"`
}

type jsonScene struct {
	Version      string       `json:"version"`
	UniqueID     string       `json:"unique_id,omitempty"`
	ExtraStrings []string     `json:"em2_extra_strings,omitempty"`
	Objects      []jsonEntity `json:"objects,omitempty"`
	SceneRefs    []uint32     `json:"scene,omitempty"`
}

func versionName(v Version) string { return v.String() }

func versionFromName(s string) Version {
	switch s {
	case "V2Proto":
		return V2Proto
	case "V2":
		return V2
	default:
		return V1
	}
}

// ToJSON encodes the Scene's JSON projection. A Component's derived
// name is omitted; template_id is projected with leading-zero
// stripping, unique_id without it. Fields equal to their zero default
// and empty list sections are omitted.
func (s *Scene) ToJSON() (string, error) {
	out := jsonScene{
		Version:      versionName(s.Version),
		ExtraStrings: s.ExtraStrings,
		SceneRefs:    s.SceneRefs,
	}
	if s.UniqueID != id.Zero {
		out.UniqueID = s.UniqueID.ToString(16)
	}
	for _, e := range s.Entities {
		je := jsonEntity{
			Name:         e.Name,
			LinkID:       e.LinkID,
			MasterLinkID: e.MasterLinkID,
			Unknown:      e.Unknown,
			UnknownEM2:   e.UnknownEM2,
		}
		for _, c := range e.Components {
			jc := jsonComponent{
				ClassName:    c.ClassName,
				TemplateID:   c.TemplateID.ToStringNoLeaders(16),
				LinkID:       c.LinkID,
				MasterLinkID: c.MasterLinkID,
			}
			for _, p := range c.Properties {
				jc.Properties = append(jc.Properties, jsonProperty{
					ClassName: p.ClassName,
					Name:      p.Name,
					Asset:     p.Asset,
					Palette:   p.Palette,
					Template:  p.Template,
					List:      p.List,
					Values:    p.Values,
				})
			}
			je.Components = append(je.Components, jc)
		}
		out.Objects = append(out.Objects, je)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FromJSON decodes a Scene's JSON projection. A Component's name is
// always regenerated from class_name, never trusted from JSON.
func FromJSON(s string) (*Scene, error) {
	var in jsonScene
	if err := json.Unmarshal([]byte(s), &in); err != nil {
		return nil, err
	}

	sc := &Scene{
		Version:      versionFromName(in.Version),
		ExtraStrings: in.ExtraStrings,
		SceneRefs:    in.SceneRefs,
	}
	if in.UniqueID != "" {
		uid, err := id.FromString(in.UniqueID)
		if err != nil {
			return nil, err
		}
		sc.UniqueID = uid
	}

	for _, je := range in.Objects {
		e := &Entity{
			ClassName:    entityClassName,
			Name:         je.Name,
			LinkID:       je.LinkID,
			MasterLinkID: je.MasterLinkID,
			Unknown:      je.Unknown,
			UnknownEM2:   je.UnknownEM2,
		}
		for _, jc := range je.Components {
			templateID, err := id.FromString(jc.TemplateID)
			if err != nil {
				return nil, err
			}
			c := &Component{
				ClassName:    jc.ClassName,
				Name:         displayName(jc.ClassName),
				TemplateID:   templateID,
				LinkID:       jc.LinkID,
				MasterLinkID: jc.MasterLinkID,
			}
			for _, jp := range jc.Properties {
				values := make([]any, len(jp.Values))
				for i, raw := range jp.Values {
					v, err := normalizeJSONValue(jp.ClassName, raw)
					if err != nil {
						return nil, err
					}
					values[i] = v
				}
				c.Properties = append(c.Properties, &Property{
					ClassName: jp.ClassName,
					Name:      jp.Name,
					Asset:     jp.Asset,
					Palette:   jp.Palette,
					Template:  jp.Template,
					List:      jp.List,
					Values:    values,
				})
			}
			e.Components = append(e.Components, c)
		}
		sc.Entities = append(sc.Entities, e)
	}

	return sc, nil
}

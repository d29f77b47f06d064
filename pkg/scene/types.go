// Package scene implements the Scene Binary container: a versioned
// entity/component/property scene graph built on a single
// forward-referenced global string pool and a typed property value
// system multiplexed through a storage-mode tag.
package scene

import "github.com/bgrewell/jps-kit/pkg/id"

// Version identifies which of the three on-disk framings a Scene uses.
type Version int

const (
	V1 Version = iota
	V2Proto
	V2
)

func (v Version) String() string {
	switch v {
	case V1:
		return "V1"
	case V2Proto:
		return "V2Proto"
	case V2:
		return "V2"
	default:
		return "unknown"
	}
}

// Scene is the parsed, in-memory form of a Scene Binary container.
type Scene struct {
	Version      Version
	UniqueID     id.ID // present in V1, V2Proto; zero in V2
	ExtraStrings []string
	Entities     []*Entity
	SceneRefs    []uint32
}

// Entity is one node of the scene graph.
type Entity struct {
	ClassName    string // always "JPSGeneralEntity" after unpack
	Name         string
	LinkID       uint32
	MasterLinkID uint32
	Unknown      uint32
	UnknownEM2   uint32 // V2* only
	Components   []*Component
}

// Component attaches typed behavior/data to an Entity.
type Component struct {
	ClassName    string
	Name         string // derived display name, never round-tripped from JSON
	TemplateID   id.ID
	LinkID       uint32
	MasterLinkID uint32
	Properties   []*Property
}

// Property is a named, typed value attached to a Component. Values holds exactly one element
// for a scalar property, or N for a list property (List == true).
type Property struct {
	ClassName string // value type name, e.g. "Boolean", "Point3"
	Name      string
	Asset     bool
	Palette   bool
	Template  bool
	List      bool
	Values    []any
}

// Value returns the scalar value of a non-list property.
func (p *Property) Value() any {
	if len(p.Values) == 0 {
		return nil
	}
	return p.Values[0]
}

// Property looks up a component's property by name, returning nil if
// absent. Supplements the wire format with the convenience lookup
// modding tools built against this scene graph relied on.
func (c *Component) Property(name string) *Property {
	for _, p := range c.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// EntityByLinkID looks up an entity by its link id, returning nil if
// absent.
func (s *Scene) EntityByLinkID(linkID uint32) *Entity {
	for _, e := range s.Entities {
		if e.LinkID == linkID {
			return e
		}
	}
	return nil
}

// displayName maps a Component's class name to its derived
// display name.
func displayName(className string) string {
	switch {
	case className == "NiTransformationComponent" || className == "JPSTransformationComponent":
		return "Transformation"
	case hasSuffix(className, "SceneGraphComponent"):
		return "Scene Graph"
	case hasSuffix(className, "LightComponent"):
		return "Light"
	case hasSuffix(className, "CameraComponent"):
		return "Camera"
	default:
		return "Unknown"
	}
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

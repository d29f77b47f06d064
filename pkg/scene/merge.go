package scene

import (
	"strings"

	"github.com/bgrewell/jps-kit/pkg/id"
)

// Merge folds patch into s: entities match by case-insensitive name,
// components by class name, properties by name. A property whose
// current value is a list has the patch's values appended; otherwise
// the patch's value replaces it wholesale. Unmatched components and
// properties are appended. Scene refs and extra strings are unioned.
// unique_id overwrites only if the patch's is non-zero. version always
// takes the patch's value: an unset patch version is V1 (the zero
// value) and replaces the scene's version like any other.
func (s *Scene) Merge(patch *Scene) {
	if patch.UniqueID != id.Zero {
		s.UniqueID = patch.UniqueID
	}
	if patch.Version != s.Version {
		s.Version = patch.Version
	}

	for _, ref := range patch.SceneRefs {
		if !containsU32(s.SceneRefs, ref) {
			s.SceneRefs = append(s.SceneRefs, ref)
		}
	}
	for _, extra := range patch.ExtraStrings {
		if !containsString(s.ExtraStrings, extra) {
			s.ExtraStrings = append(s.ExtraStrings, extra)
		}
	}

	for _, patchEntity := range patch.Entities {
		if existing := findEntityByName(s.Entities, patchEntity.Name); existing != nil {
			mergeEntity(existing, patchEntity)
		} else {
			s.Entities = append(s.Entities, patchEntity)
		}
	}
}

func mergeEntity(dst, src *Entity) {
	dst.LinkID = src.LinkID
	dst.MasterLinkID = src.MasterLinkID
	dst.Unknown = src.Unknown
	dst.UnknownEM2 = src.UnknownEM2

	for _, srcComp := range src.Components {
		if existing := findComponentByClassName(dst.Components, srcComp.ClassName); existing != nil {
			mergeComponent(existing, srcComp)
		} else {
			dst.Components = append(dst.Components, srcComp)
		}
	}
}

func mergeComponent(dst, src *Component) {
	dst.TemplateID = src.TemplateID
	dst.LinkID = src.LinkID
	dst.MasterLinkID = src.MasterLinkID

	for _, srcProp := range src.Properties {
		if existing := dst.Property(srcProp.Name); existing != nil {
			mergeProperty(existing, srcProp)
		} else {
			dst.Properties = append(dst.Properties, srcProp)
		}
	}
}

func mergeProperty(dst, src *Property) {
	if dst.List {
		dst.Values = append(dst.Values, src.Values...)
		return
	}
	dst.ClassName = src.ClassName
	dst.Asset = src.Asset
	dst.Palette = src.Palette
	dst.Template = src.Template
	dst.List = src.List
	dst.Values = src.Values
}

func findEntityByName(entities []*Entity, name string) *Entity {
	for _, e := range entities {
		if strings.EqualFold(e.Name, name) {
			return e
		}
	}
	return nil
}

func findComponentByClassName(components []*Component, className string) *Component {
	for _, c := range components {
		if c.ClassName == className {
			return c
		}
	}
	return nil
}

func containsU32(haystack []uint32, needle uint32) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

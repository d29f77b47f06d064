package scene

import (
	"github.com/bgrewell/jps-kit/pkg/cursor"
	"github.com/bgrewell/jps-kit/pkg/logging"
)

// ToBinary re-emits the Scene. The string pool is computed in the same
// pass that lays out entity/component/property records — a string's
// offset is stable the instant it's first interned, so no separate
// interning pass is required; only final assembly (header needs the
// pool's total length) waits until the traversal is complete.
func (s *Scene) ToBinary(opts ...Option) ([]byte, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	log := logging.NewLogger(options.Logger)
	log.Debug("emitting scene", "version", s.Version.String(), "entities", len(s.Entities))

	pool := newStringPool(s.Version)
	records := cursor.New(nil, options.Endian, cursor.Overwrite)

	if s.Version == V1 || s.Version == V2Proto {
		if err := records.WriteU128(s.UniqueID.Bytes()); err != nil {
			return nil, err
		}
	}

	if s.Version == V2Proto || s.Version == V2 {
		if err := records.WriteU32(uint32(len(s.ExtraStrings))); err != nil {
			return nil, err
		}
		for _, extra := range s.ExtraStrings {
			if err := records.WriteJPSString(extra); err != nil {
				return nil, err
			}
		}
	}

	if err := records.WriteU32(uint32(len(s.Entities))); err != nil {
		return nil, err
	}
	if err := records.WriteU32(uint32(len(s.SceneRefs))); err != nil {
		return nil, err
	}

	for _, e := range s.Entities {
		if err := writeEntity(records, pool, s.Version, e); err != nil {
			return nil, err
		}
		log.Trace("wrote entity", "name", e.Name, "link_id", e.LinkID, "components", len(e.Components))
	}
	for _, ref := range s.SceneRefs {
		if err := records.WriteU32(ref); err != nil {
			return nil, err
		}
	}

	return assembleScene(s.Version, options.Endian, pool, records)
}

func writeEntity(c *cursor.Cursor, pool *stringPool, version Version, e *Entity) error {
	if err := c.WriteU32(pool.intern(e.Name)); err != nil {
		return err
	}
	if err := c.WriteU32(e.LinkID); err != nil {
		return err
	}
	if err := c.WriteU32(e.MasterLinkID); err != nil {
		return err
	}
	if err := c.WriteU32(e.Unknown); err != nil {
		return err
	}
	if version != V1 {
		if err := c.WriteU32(e.UnknownEM2); err != nil {
			return err
		}
	}
	if err := c.WriteU32(uint32(len(e.Components))); err != nil {
		return err
	}
	for _, comp := range e.Components {
		if err := writeComponent(c, pool, comp); err != nil {
			return err
		}
	}
	return nil
}

func writeComponent(c *cursor.Cursor, pool *stringPool, comp *Component) error {
	if err := c.WriteU32(pool.intern(comp.ClassName)); err != nil {
		return err
	}
	templateIDStr := comp.TemplateID.ToStringNoLeaders(16)
	if err := c.WriteU32(pool.intern(templateIDStr)); err != nil {
		return err
	}
	if err := c.WriteU32(comp.LinkID); err != nil {
		return err
	}
	if err := c.WriteU32(comp.MasterLinkID); err != nil {
		return err
	}
	if err := c.WriteU32(uint32(len(comp.Properties))); err != nil {
		return err
	}
	for _, p := range comp.Properties {
		if err := writeProperty(c, pool, p); err != nil {
			return err
		}
	}
	return nil
}

func writeProperty(c *cursor.Cursor, pool *stringPool, p *Property) error {
	classNameOffset := pool.intern(p.ClassName)
	nameOffset := pool.intern(p.Name)

	if err := requireKnownClass(p.ClassName); err != nil {
		return err
	}

	flags := storageFlags{
		list:     p.List,
		asset:    p.Asset,
		palette:  p.Palette,
		template: p.Template,
	}
	tag, err := storageModeToTag(flags)
	if err != nil {
		return err
	}

	if err := c.WriteU32(nameOffset); err != nil {
		return err
	}
	if err := c.WriteU32(classNameOffset); err != nil {
		return err
	}
	if err := c.WriteU32(tag); err != nil {
		return err
	}
	if err := c.WriteU32(uint32(len(p.Values))); err != nil {
		return err
	}

	for _, v := range p.Values {
		if isStringClass(p.ClassName) {
			offset := pool.intern(v.(string))
			if err := c.WriteU32(offset); err != nil {
				return err
			}
			continue
		}
		codec := valueCodecs[p.ClassName]
		if err := codec.encode(c, v); err != nil {
			return err
		}
	}
	return nil
}

func assembleScene(version Version, endian cursor.Endian, pool *stringPool, records *cursor.Cursor) ([]byte, error) {
	poolBytes := pool.bytes()
	out := cursor.New(nil, endian, cursor.Overwrite)

	if version == V1 {
		dataOffset := poolStart + len(poolBytes)
		if err := out.WriteU32(uint32(dataOffset)); err != nil {
			return nil, err
		}
		if err := out.Write(poolBytes); err != nil {
			return nil, err
		}
		if err := out.Write(records.Bytes()); err != nil {
			return nil, err
		}
		return out.Bytes(), nil
	}

	if err := out.WriteU32(v2Sentinel); err != nil {
		return nil, err
	}
	// Counted from byte 4 (this field's own position): the field plus
	// the pool, so the reader finds the version sentinel at 4 + rel.
	dataOffsetRel := uint32(4 + len(poolBytes))
	if err := out.WriteU32(dataOffsetRel); err != nil {
		return nil, err
	}
	if err := out.Write(poolBytes); err != nil {
		return nil, err
	}
	sentinel := uint32(v2ProtoVersion)
	if version == V2 {
		sentinel = v2Version
	}
	if err := out.WriteU32(sentinel); err != nil {
		return nil, err
	}
	if err := out.Write(records.Bytes()); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

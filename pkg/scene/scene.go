package scene

import (
	"github.com/bgrewell/jps-kit/pkg/cursor"
	"github.com/bgrewell/jps-kit/pkg/id"
	"github.com/bgrewell/jps-kit/pkg/jpserr"
	"github.com/bgrewell/jps-kit/pkg/logging"
	"github.com/go-logr/logr"
)

const (
	v2Sentinel      = 0x01000001
	v2ProtoVersion  = 0x02000001
	v2Version       = 0x02000002
	entityClassName = "JPSGeneralEntity"
)

// Options configures FromBinary/ToBinary endianness. The console
// platform build runs big; the PC build runs little.
type Options struct {
	Endian cursor.Endian
	Logger logr.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithEndian sets the byte order.
func WithEndian(e cursor.Endian) Option {
	return func(o *Options) { o.Endian = e }
}

// WithLogger sets the logger used while parsing/emitting.
func WithLogger(logger logr.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

func defaultOptions() Options {
	return Options{Endian: cursor.BigEndian, Logger: logr.Discard()}
}

// FromBinary parses a Scene, detecting its version from the leading
// sentinel bytes.
func FromBinary(data []byte, opts ...Option) (*Scene, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	log := logging.NewLogger(options.Logger)

	c := cursor.New(data, options.Endian, cursor.Overwrite)

	first, err := c.ReadU32()
	if err != nil {
		return nil, err
	}

	var version Version
	var dataRegionStart int
	if first == v2Sentinel {
		dataOffsetRel, err := c.ReadU32()
		if err != nil {
			return nil, err
		}
		sentinelPos := poolStart + int(dataOffsetRel)
		c.Seek(sentinelPos)
		sentinel, err := c.ReadU32()
		if err != nil {
			return nil, err
		}
		switch sentinel {
		case v2Version:
			version = V2
		case v2ProtoVersion:
			version = V2Proto
		default:
			return nil, &jpserr.BadVersion{Got: sentinel}
		}
		dataRegionStart = sentinelPos + 4
	} else {
		version = V1
		dataRegionStart = int(first)
	}
	log.Debug("detected scene version", "version", version.String())

	pool := &poolReader{version: version, c: c}

	c.Seek(dataRegionStart)
	s := &Scene{Version: version}

	if version == V1 || version == V2Proto {
		v, err := c.ReadU128()
		if err != nil {
			return nil, err
		}
		s.UniqueID = id.ID(v)
	}

	if version == V2Proto || version == V2 {
		numExtra, err := c.ReadU32()
		if err != nil {
			return nil, err
		}
		s.ExtraStrings = make([]string, numExtra)
		for i := range s.ExtraStrings {
			if s.ExtraStrings[i], err = c.ReadJPSString(); err != nil {
				return nil, err
			}
		}
	}

	numEntities, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	numSceneRefs, err := c.ReadU32()
	if err != nil {
		return nil, err
	}

	s.Entities = make([]*Entity, numEntities)
	for i := range s.Entities {
		e, err := readEntity(c, pool, version)
		if err != nil {
			return nil, err
		}
		log.Trace("parsed entity", "name", e.Name, "link_id", e.LinkID, "components", len(e.Components))
		s.Entities[i] = e
	}

	s.SceneRefs = make([]uint32, numSceneRefs)
	for i := range s.SceneRefs {
		if s.SceneRefs[i], err = c.ReadU32(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func readEntity(c *cursor.Cursor, pool *poolReader, version Version) (*Entity, error) {
	nameOffset, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	name, err := pool.read(nameOffset)
	if err != nil {
		return nil, err
	}
	linkID, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	masterLinkID, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	unknown, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	var unknownEM2 uint32
	if version != V1 {
		if unknownEM2, err = c.ReadU32(); err != nil {
			return nil, err
		}
	}
	numComponents, err := c.ReadU32()
	if err != nil {
		return nil, err
	}

	components := make([]*Component, numComponents)
	for i := range components {
		comp, err := readComponent(c, pool)
		if err != nil {
			return nil, err
		}
		components[i] = comp
	}

	return &Entity{
		ClassName:    entityClassName,
		Name:         name,
		LinkID:       linkID,
		MasterLinkID: masterLinkID,
		Unknown:      unknown,
		UnknownEM2:   unknownEM2,
		Components:   components,
	}, nil
}

func readComponent(c *cursor.Cursor, pool *poolReader) (*Component, error) {
	classNameOffset, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	className, err := pool.read(classNameOffset)
	if err != nil {
		return nil, err
	}
	templateIDOffset, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	templateIDStr, err := pool.read(templateIDOffset)
	if err != nil {
		return nil, err
	}
	templateID, err := id.FromString(templateIDStr)
	if err != nil {
		return nil, err
	}
	linkID, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	masterLinkID, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	numProperties, err := c.ReadU32()
	if err != nil {
		return nil, err
	}

	properties := make([]*Property, numProperties)
	for i := range properties {
		p, err := readProperty(c, pool)
		if err != nil {
			return nil, err
		}
		properties[i] = p
	}

	return &Component{
		ClassName:    className,
		Name:         displayName(className),
		TemplateID:   templateID,
		LinkID:       linkID,
		MasterLinkID: masterLinkID,
		Properties:   properties,
	}, nil
}

func readProperty(c *cursor.Cursor, pool *poolReader) (*Property, error) {
	nameOffset, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	name, err := pool.read(nameOffset)
	if err != nil {
		return nil, err
	}
	classNameOffset, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	className, err := pool.read(classNameOffset)
	if err != nil {
		return nil, err
	}
	if err := requireKnownClass(className); err != nil {
		return nil, err
	}

	storageMode, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	flags, err := storageModeFromTag(storageMode)
	if err != nil {
		return nil, err
	}

	count, err := c.ReadU32()
	if err != nil {
		return nil, err
	}

	values := make([]any, count)
	for i := range values {
		if isStringClass(className) {
			offset, err := c.ReadU32()
			if err != nil {
				return nil, err
			}
			s, err := pool.read(offset)
			if err != nil {
				return nil, err
			}
			values[i] = s
			continue
		}
		codec := valueCodecs[className]
		v, err := codec.decode(c)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	return &Property{
		ClassName: className,
		Name:      name,
		Asset:     flags.asset,
		Palette:   flags.palette,
		Template:  flags.template,
		List:      flags.list,
		Values:    values,
	}, nil
}

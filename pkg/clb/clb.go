// Package clb implements the CLB (CollectibleDatabase) container: a
// flat, offset-free list of collectible and extra records, each field
// a JPS-framed string.
package clb

import (
	"github.com/bgrewell/jps-kit/pkg/cursor"
	"github.com/bgrewell/jps-kit/pkg/logging"
	"github.com/go-logr/logr"
)

const formatVersion = 1

// Collectible is a single collectible catalog entry.
type Collectible struct {
	Type     string
	DevName  string
	IconPath string
}

// Extra is a single bonus/unlockable catalog entry.
type Extra struct {
	GlobalState   string
	Type          string
	ThumbnailPath string
	AssetPath     string
}

// Database is the parsed, in-memory form of a CLB container.
type Database struct {
	Version      uint32
	Collectibles []Collectible
	Extras       []Extra
}

// Options configures FromBinary/ToBinary endianness.
type Options struct {
	Endian cursor.Endian
	Logger logr.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithEndian sets the byte order, which the console platform's tools
// generally run big and PC tools little.
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

// FromBinary parses a Database. Unlike Packfile, CLB carries no magic
// to autodetect endianness from, so the byte order comes from
// WithEndian (big-endian by default).
func FromBinary(data []byte, opts ...Option) (*Database, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	log := logging.NewLogger(options.Logger)

	c := cursor.New(data, options.Endian, cursor.Overwrite)

	version, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	log.Debug("parsed clb header", "version", version)

	numCollectibles, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	collectibles := make([]Collectible, numCollectibles)
	for i := range collectibles {
		if collectibles[i].Type, err = c.ReadJPSString(); err != nil {
			return nil, err
		}
		if collectibles[i].DevName, err = c.ReadJPSString(); err != nil {
			return nil, err
		}
		if collectibles[i].IconPath, err = c.ReadJPSString(); err != nil {
			return nil, err
		}
		log.Trace("parsed collectible", "dev_name", collectibles[i].DevName, "type", collectibles[i].Type)
	}

	numExtras, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	extras := make([]Extra, numExtras)
	for i := range extras {
		if extras[i].GlobalState, err = c.ReadJPSString(); err != nil {
			return nil, err
		}
		if extras[i].Type, err = c.ReadJPSString(); err != nil {
			return nil, err
		}
		if extras[i].ThumbnailPath, err = c.ReadJPSString(); err != nil {
			return nil, err
		}
		if extras[i].AssetPath, err = c.ReadJPSString(); err != nil {
			return nil, err
		}
		log.Trace("parsed extra", "type", extras[i].Type, "asset_path", extras[i].AssetPath)
	}

	return &Database{Version: version, Collectibles: collectibles, Extras: extras}, nil
}

// ToBinary re-emits the Database.
func (db *Database) ToBinary(opts ...Option) ([]byte, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	c := cursor.New(nil, options.Endian, cursor.Overwrite)

	version := db.Version
	if version == 0 {
		version = formatVersion
	}
	if err := c.WriteU32(version); err != nil {
		return nil, err
	}

	if err := c.WriteU32(uint32(len(db.Collectibles))); err != nil {
		return nil, err
	}
	for _, col := range db.Collectibles {
		if err := c.WriteJPSString(col.Type); err != nil {
			return nil, err
		}
		if err := c.WriteJPSString(col.DevName); err != nil {
			return nil, err
		}
		if err := c.WriteJPSString(col.IconPath); err != nil {
			return nil, err
		}
	}

	if err := c.WriteU32(uint32(len(db.Extras))); err != nil {
		return nil, err
	}
	for _, ex := range db.Extras {
		if err := c.WriteJPSString(ex.GlobalState); err != nil {
			return nil, err
		}
		if err := c.WriteJPSString(ex.Type); err != nil {
			return nil, err
		}
		if err := c.WriteJPSString(ex.ThumbnailPath); err != nil {
			return nil, err
		}
		if err := c.WriteJPSString(ex.AssetPath); err != nil {
			return nil, err
		}
	}

	return c.Bytes(), nil
}

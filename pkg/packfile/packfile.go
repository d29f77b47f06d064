// Package packfile implements the "Packfile" container: an archive of
// virtual files, zlib-compressed per entry, with a deduplicated
// folder/filename string pool and 32-byte aligned data records.
package packfile

import (
	"strings"

	"github.com/bgrewell/jps-kit/pkg/cursor"
	"github.com/bgrewell/jps-kit/pkg/jpserr"
	"github.com/bgrewell/jps-kit/pkg/logging"
	"github.com/go-logr/logr"
)

const (
	headerSize    = 32
	recordSize    = 24
	poolAlignment = 32
	dataAlignment = 32
	formatVersion = 2
)

const (
	magicLittle = "PAK "
	magicBig    = " KAP"
)

// VirtualFile is a single entry inside a Packfile.
type VirtualFile struct {
	TypeTag          string
	Compressed       bool
	CompressionLevel int
	Path             string
	Data             []byte
}

// Folder returns the (folder, filename) split of the entry's path on
// the last '/'. An entry with no '/' has an empty folder.
func (vf *VirtualFile) Folder() (folder, filename string) {
	idx := strings.LastIndex(vf.Path, "/")
	if idx < 0 {
		return "", vf.Path
	}
	return vf.Path[:idx], vf.Path[idx+1:]
}

// Packfile is the parsed, in-memory form of the container.
type Packfile struct {
	Endian cursor.Endian
	Files  []*VirtualFile
}

// Options configures FromBinary/ToBinary behavior.
type Options struct {
	Endian           cursor.Endian
	Logger           logr.Logger
	CompressionLevel int
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Endian:           cursor.LittleEndian,
		Logger:           logr.Discard(),
		CompressionLevel: 6,
	}
}

// WithEndian sets the byte order used by ToBinary. FromBinary always
// infers endian from the magic and ignores this option.
func WithEndian(e cursor.Endian) Option {
	return func(o *Options) { o.Endian = e }
}

// WithLogger sets the logger used while parsing/emitting.
func WithLogger(logger logr.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithCompressionLevel sets the default zlib level (0-9) applied to
// entries that don't specify their own CompressionLevel.
func WithCompressionLevel(level int) Option {
	return func(o *Options) { o.CompressionLevel = level }
}

func roundUp(n, multiple int) int {
	if rem := n % multiple; rem != 0 {
		return n + (multiple - rem)
	}
	return n
}

// FromBinary parses a Packfile, auto-detecting endianness from the
// magic bytes.
func FromBinary(data []byte, opts ...Option) (*Packfile, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	log := logging.NewLogger(options.Logger)

	if len(data) < 4 {
		return nil, &jpserr.UnexpectedEof{At: 0, Need: 4}
	}
	magicBytes := string(data[0:4])

	var endian cursor.Endian
	switch magicBytes {
	case magicLittle:
		endian = cursor.LittleEndian
	case magicBig:
		endian = cursor.BigEndian
	default:
		return nil, &jpserr.BadMagic{Got: data[0:4], Expected: []byte(magicLittle)}
	}
	log.Debug("detected packfile endian", "endian", endian)

	c := cursor.New(data, endian, cursor.Overwrite)
	c.Seek(4)

	version, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	if version != formatVersion {
		return nil, &jpserr.BadVersion{Got: version}
	}

	if _, err := c.ReadU32(); err != nil { // reserved zero
		return nil, err
	}
	if _, err := c.ReadU32(); err != nil { // header_size, always 32
		return nil, err
	}
	dataPointerRel, err := c.ReadU32()
	if err != nil {
		return nil, err
	}

	c.Seek(headerSize)
	numFiles, err := c.ReadU32()
	if err != nil {
		return nil, err
	}

	poolBase := headerSize + 4 + recordSize*int(numFiles)

	type rawRecord struct {
		realSize, compressedSize, alignedSize uint32
		folderOffset, filenameOffset          uint32
		typeTag                               string
	}
	records := make([]rawRecord, numFiles)
	for i := range records {
		var r rawRecord
		if r.realSize, err = c.ReadU32(); err != nil {
			return nil, err
		}
		if r.compressedSize, err = c.ReadU32(); err != nil {
			return nil, err
		}
		if r.alignedSize, err = c.ReadU32(); err != nil {
			return nil, err
		}
		if r.alignedSize%dataAlignment != 0 {
			return nil, &jpserr.BadAlignment{Got: r.alignedSize}
		}
		if r.folderOffset, err = c.ReadU32(); err != nil {
			return nil, err
		}
		if r.typeTag, err = c.ReadEndianString4(); err != nil {
			return nil, err
		}
		if r.filenameOffset, err = c.ReadU32(); err != nil {
			return nil, err
		}
		records[i] = r
	}

	readPoolString := func(relOffset uint32) (string, error) {
		save := c.Tell()
		c.Seek(poolBase + int(relOffset))
		s, err := c.ReadCString()
		c.Seek(save)
		return s, err
	}

	dataBase := headerSize + int(dataPointerRel)

	files := make([]*VirtualFile, numFiles)
	dataOffset := dataBase
	for i, r := range records {
		folder, err := readPoolString(r.folderOffset)
		if err != nil {
			return nil, err
		}
		filename, err := readPoolString(r.filenameOffset)
		if err != nil {
			return nil, err
		}
		path := filename
		if folder != "" {
			path = folder + "/" + filename
		}

		c.Seek(dataOffset)
		raw := make([]byte, r.compressedSize)
		if err := c.Read(raw); err != nil {
			return nil, err
		}

		compressed := r.compressedSize != r.realSize
		payload := raw
		if compressed {
			payload, err = zlibDecompress(raw, int(r.realSize))
			if err != nil {
				return nil, err
			}
		}

		files[i] = &VirtualFile{
			TypeTag:          r.typeTag,
			Compressed:        compressed,
			CompressionLevel: options.CompressionLevel,
			Path:             path,
			Data:             payload,
		}
		log.Trace("parsed virtual file", "path", path, "compressed", compressed, "size", len(payload))

		dataOffset += int(r.alignedSize)
	}

	return &Packfile{Endian: endian, Files: files}, nil
}

// ToBinary re-emits the Packfile, compressing entries marked
// Compressed and rebuilding the deduplicated string pool.
func (pf *Packfile) ToBinary(opts ...Option) ([]byte, error) {
	options := defaultOptions()
	options.Endian = pf.Endian
	for _, opt := range opts {
		opt(&options)
	}
	log := logging.NewLogger(options.Logger)

	pool, folderOffsets, filenameOffsets := buildStringPool(pf.Files)

	type preparedEntry struct {
		realSize, compressedSize, alignedSize uint32
		folderOffset, filenameOffset          uint32
		typeTag                               string
		payload                               []byte
	}
	prepared := make([]preparedEntry, len(pf.Files))
	for i, vf := range pf.Files {
		folder, filename := vf.Folder()
		level := vf.CompressionLevel
		if level == 0 {
			level = options.CompressionLevel
		}
		payload := vf.Data
		if vf.Compressed {
			compressed, err := zlibCompress(vf.Data, level)
			if err != nil {
				return nil, err
			}
			payload = compressed
		}
		prepared[i] = preparedEntry{
			realSize:       uint32(len(vf.Data)),
			compressedSize: uint32(len(payload)),
			alignedSize:    uint32(roundUp(len(payload), dataAlignment)),
			folderOffset:   folderOffsets[folder],
			filenameOffset: filenameOffsets[filename],
			typeTag:        vf.TypeTag,
			payload:        payload,
		}
		log.Trace("prepared virtual file for write", "path", vf.Path, "compressed", vf.Compressed)
	}

	numFiles := len(pf.Files)
	recordsEnd := headerSize + 4 + recordSize*numFiles
	poolEnd := recordsEnd + len(pool)
	dataStart := roundUp(poolEnd, poolAlignment)
	dataPointerRel := dataStart - headerSize

	c := cursor.New(nil, options.Endian, cursor.Overwrite)
	c.Seek(0)

	magic := magicLittle
	if options.Endian == cursor.BigEndian {
		magic = magicBig
	}
	if err := c.Write([]byte(magic)); err != nil {
		return nil, err
	}
	if err := c.WriteU32(formatVersion); err != nil {
		return nil, err
	}
	if err := c.WriteU32(0); err != nil {
		return nil, err
	}
	if err := c.WriteU32(headerSize); err != nil {
		return nil, err
	}
	if err := c.WriteU32(uint32(dataPointerRel)); err != nil {
		return nil, err
	}
	c.Seek(headerSize)
	if err := c.WriteU32(uint32(numFiles)); err != nil {
		return nil, err
	}

	for _, p := range prepared {
		if err := c.WriteU32(p.realSize); err != nil {
			return nil, err
		}
		if err := c.WriteU32(p.compressedSize); err != nil {
			return nil, err
		}
		if err := c.WriteU32(p.alignedSize); err != nil {
			return nil, err
		}
		if err := c.WriteU32(p.folderOffset); err != nil {
			return nil, err
		}
		if err := c.WriteEndianString4(p.typeTag); err != nil {
			return nil, err
		}
		if err := c.WriteU32(p.filenameOffset); err != nil {
			return nil, err
		}
	}

	if err := c.Write(pool); err != nil {
		return nil, err
	}
	if err := c.Pad(poolAlignment); err != nil {
		return nil, err
	}

	c.Seek(dataStart)
	for _, p := range prepared {
		if err := c.Write(p.payload); err != nil {
			return nil, err
		}
		if err := c.Pad(dataAlignment); err != nil {
			return nil, err
		}
	}

	return c.Bytes(), nil
}

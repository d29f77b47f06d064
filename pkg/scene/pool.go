package scene

import "github.com/bgrewell/jps-kit/pkg/cursor"

// poolStart is the absolute file offset the V1 string pool begins at
// (byte 0 holds the V1 data_offset field). It is also the adjustment
// V2* offsets receive on read: a V2* file holds the 0x01000001
// sentinel at byte 0 and data_offset_rel at byte 4, so its pooled
// strings start at byte 8 and its offset fields store file offset
// minus 4.
const poolStart = 4

// stringPool accumulates the deterministic, forward-referenced string
// pool. Strings are interned in first-seen order while walking the
// entity/component/property tree; the resulting bytes and offsets feed
// the second pass that actually lays out records.
type stringPool struct {
	version Version
	offsets map[string]uint32 // text -> local offset (0-based from poolStart)
	scratch *cursor.Cursor
}

func newStringPool(version Version) *stringPool {
	return &stringPool{
		version: version,
		offsets: make(map[string]uint32),
		scratch: cursor.New(nil, cursor.LittleEndian, cursor.Overwrite),
	}
}

// intern adds s to the pool if not already present and returns the
// on-disk field value to store in a record's offset slot.
func (p *stringPool) intern(s string) uint32 {
	local, ok := p.offsets[s]
	if !ok {
		local = uint32(p.scratch.Tell())
		_ = p.scratch.WriteJPSString(s)
		p.offsets[s] = local
	}
	return p.fieldValue(local)
}

// fieldValue converts a pool-local offset into the on-disk record
// field convention: absolute-file-offset for V1, offset-minus-4 for
// V2*.
func (p *stringPool) fieldValue(local uint32) uint32 {
	if p.version == V1 {
		return local + poolStart
	}
	// V2* pool begins at byte 8, so file offset minus 4 is local + 4.
	return local + 4
}

func (p *stringPool) bytes() []byte {
	return p.scratch.Bytes()
}

// poolReader resolves on-disk string offsets back to text, seeking
// into the already-parsed cursor and restoring position afterward.
type poolReader struct {
	version Version
	c       *cursor.Cursor
}

func (p *poolReader) read(field uint32) (string, error) {
	abs := int(field)
	if p.version != V1 {
		abs += poolStart
	}
	save := p.c.Tell()
	p.c.Seek(abs)
	s, err := p.c.ReadJPSString()
	p.c.Seek(save)
	return s, err
}

// Package cursor implements the positioned, endian-aware, auto-growing
// byte buffer shared by every codec in this module. It is the single
// dependency every container format builds on: Packfile, DCT, CLB, and
// Scene all read and write exclusively through a Cursor.
package cursor

import (
	"encoding/binary"
	"math"

	"github.com/bgrewell/jps-kit/pkg/jpserr"
)

// Endian selects the byte order a Cursor's typed reads and writes use.
type Endian int

const (
	LittleEndian Endian = iota
	BigEndian
)

// WriteMode selects how a Cursor's Write behaves when data is written
// at the current position.
type WriteMode int

const (
	// Overwrite extends the buffer with zeros if necessary, then
	// overwrites bytes at the cursor.
	Overwrite WriteMode = iota
	// Insert splices bytes into the buffer at the cursor, shifting
	// everything beyond it to the right.
	Insert
)

// Cursor is a positioned byte buffer with typed, endian-aware
// read/write primitives. It owns its backing buffer; callers must go
// through the Cursor's methods exclusively.
type Cursor struct {
	buf       []byte
	pos       int
	endian    Endian
	writeMode WriteMode
}

// New constructs a Cursor over a copy of data, positioned at offset 0.
func New(data []byte, endian Endian, mode WriteMode) *Cursor {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &Cursor{buf: buf, endian: endian, writeMode: mode}
}

// Endian returns the Cursor's current byte order.
func (c *Cursor) Endian() Endian {
	return c.endian
}

// SetEndian changes the byte order used by subsequent typed reads and
// writes.
func (c *Cursor) SetEndian(e Endian) {
	c.endian = e
}

// WriteMode returns the Cursor's current write mode.
func (c *Cursor) WriteMode() WriteMode {
	return c.writeMode
}

// SetWriteMode changes how subsequent writes behave.
func (c *Cursor) SetWriteMode(m WriteMode) {
	c.writeMode = m
}

// Tell returns the current cursor position.
func (c *Cursor) Tell() int {
	return c.pos
}

// Len returns the length of the backing buffer.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Bytes returns a defensive copy of the entire backing buffer.
func (c *Cursor) Bytes() []byte {
	out := make([]byte, len(c.buf))
	copy(out, c.buf)
	return out
}

// Seek moves the cursor to position p, zero-extending the buffer first
// if p is beyond the current length.
func (c *Cursor) Seek(p int) {
	if p > len(c.buf) {
		c.growTo(p)
	}
	c.pos = p
}

// MovePos moves the cursor by a relative offset, failing with
// BadPosition if the result would fall outside [0, len(buffer)].
func (c *Cursor) MovePos(delta int) error {
	next := c.pos + delta
	if next < 0 || next > len(c.buf) {
		return &jpserr.BadPosition{Requested: next}
	}
	c.pos = next
	return nil
}

// Align advances the cursor forward to the next multiple of n without
// writing any bytes. It is a no-op if the cursor is already aligned.
func (c *Cursor) Align(n int) {
	rem := c.pos % n
	if rem == 0 {
		return
	}
	c.Seek(c.pos + (n - rem))
}

// Pad advances the cursor to the next multiple of n by writing zero
// bytes.
func (c *Cursor) Pad(n int) error {
	rem := c.pos % n
	if rem == 0 {
		return nil
	}
	return c.Write(make([]byte, n-rem))
}

// growTo zero-extends the backing buffer so that it is at least n
// bytes long.
func (c *Cursor) growTo(n int) {
	if n <= len(c.buf) {
		return
	}
	grown := make([]byte, n)
	copy(grown, c.buf)
	c.buf = grown
}

// Read copies len(out) bytes starting at the cursor into out and
// advances the cursor. It fails with UnexpectedEof if the buffer does
// not hold enough bytes.
func (c *Cursor) Read(out []byte) error {
	if c.pos+len(out) > len(c.buf) {
		return &jpserr.UnexpectedEof{At: c.pos, Need: len(out)}
	}
	copy(out, c.buf[c.pos:c.pos+len(out)])
	c.pos += len(out)
	return nil
}

// Peek behaves like Read but does not advance the cursor.
func (c *Cursor) Peek(out []byte) error {
	if c.pos+len(out) > len(c.buf) {
		return &jpserr.UnexpectedEof{At: c.pos, Need: len(out)}
	}
	copy(out, c.buf[c.pos:c.pos+len(out)])
	return nil
}

// Write places data at the cursor according to the current WriteMode
// and advances the cursor past it.
func (c *Cursor) Write(data []byte) error {
	switch c.writeMode {
	case Insert:
		c.growTo(c.pos)
		out := make([]byte, 0, len(c.buf)+len(data))
		out = append(out, c.buf[:c.pos]...)
		out = append(out, data...)
		out = append(out, c.buf[c.pos:]...)
		c.buf = out
	default: // Overwrite
		if c.pos+len(data) > len(c.buf) {
			c.growTo(c.pos + len(data))
		}
		copy(c.buf[c.pos:c.pos+len(data)], data)
	}
	c.pos += len(data)
	return nil
}

// --- fixed-width integers ---

func (c *Cursor) byteOrder() binary.ByteOrder {
	if c.endian == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (c *Cursor) ReadU8() (uint8, error) {
	var b [1]byte
	if err := c.Read(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) WriteU8(v uint8) error {
	return c.Write([]byte{v})
}

func (c *Cursor) ReadI8() (int8, error) {
	v, err := c.ReadU8()
	return int8(v), err
}

func (c *Cursor) WriteI8(v int8) error {
	return c.WriteU8(uint8(v))
}

func (c *Cursor) ReadU16() (uint16, error) {
	var b [2]byte
	if err := c.Read(b[:]); err != nil {
		return 0, err
	}
	return c.byteOrder().Uint16(b[:]), nil
}

func (c *Cursor) WriteU16(v uint16) error {
	var b [2]byte
	c.byteOrder().PutUint16(b[:], v)
	return c.Write(b[:])
}

func (c *Cursor) ReadI16() (int16, error) {
	v, err := c.ReadU16()
	return int16(v), err
}

func (c *Cursor) WriteI16(v int16) error {
	return c.WriteU16(uint16(v))
}

func (c *Cursor) ReadU32() (uint32, error) {
	var b [4]byte
	if err := c.Read(b[:]); err != nil {
		return 0, err
	}
	return c.byteOrder().Uint32(b[:]), nil
}

func (c *Cursor) WriteU32(v uint32) error {
	var b [4]byte
	c.byteOrder().PutUint32(b[:], v)
	return c.Write(b[:])
}

func (c *Cursor) ReadI32() (int32, error) {
	v, err := c.ReadU32()
	return int32(v), err
}

func (c *Cursor) WriteI32(v int32) error {
	return c.WriteU32(uint32(v))
}

func (c *Cursor) ReadU64() (uint64, error) {
	var b [8]byte
	if err := c.Read(b[:]); err != nil {
		return 0, err
	}
	return c.byteOrder().Uint64(b[:]), nil
}

func (c *Cursor) WriteU64(v uint64) error {
	var b [8]byte
	c.byteOrder().PutUint64(b[:], v)
	return c.Write(b[:])
}

func (c *Cursor) ReadI64() (int64, error) {
	v, err := c.ReadU64()
	return int64(v), err
}

func (c *Cursor) WriteI64(v int64) error {
	return c.WriteU64(uint64(v))
}

// ReadU128 reads a 16-byte unsigned integer as its raw big-endian-within-
// the-value byte pair representation (the on-disk layout this format's
// 128-bit IDs use, independent of the Cursor's scalar endianness — see
// pkg/id). The bytes are returned exactly as stored.
func (c *Cursor) ReadU128() ([16]byte, error) {
	var b [16]byte
	if err := c.Read(b[:]); err != nil {
		return b, err
	}
	return b, nil
}

func (c *Cursor) WriteU128(v [16]byte) error {
	return c.Write(v[:])
}

func (c *Cursor) ReadI128() ([16]byte, error) {
	return c.ReadU128()
}

func (c *Cursor) WriteI128(v [16]byte) error {
	return c.WriteU128(v)
}

func (c *Cursor) ReadF32() (float32, error) {
	v, err := c.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (c *Cursor) WriteF32(v float32) error {
	return c.WriteU32(math.Float32bits(v))
}

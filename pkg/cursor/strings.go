package cursor

import (
	"unicode/utf8"

	"github.com/bgrewell/jps-kit/pkg/jpserr"
)

// FillerMode selects the trailing filler byte JPS-padded integers are
// written with. The two modes are both observed in corpus files; which
// one a given container uses is a property of that container, not of
// the cursor.
type FillerMode int

const (
	// FillerCD pads with 0xCD — observed in most JPS-padded-integer
	// fields.
	FillerCD FillerMode = iota
	// FillerFF pads with 0xFF.
	FillerFF
)

func (m FillerMode) byte() byte {
	if m == FillerFF {
		return 0xFF
	}
	return 0xCD
}

// roundUp4 rounds n up to the nearest multiple of 4.
func roundUp4(n int) int {
	if rem := n % 4; rem != 0 {
		return n + (4 - rem)
	}
	return n
}

// ReadJPSString reads a JPS string: [size u8][text_length u8][utf8
// bytes][NUL][zero padding], then aligns the cursor to 4 bytes. The
// size byte is recorded on disk as roundUp4(text_length) but is not
// itself load-bearing for framing — text_length alone determines how
// many payload bytes follow; size is consumed and otherwise ignored.
func (c *Cursor) ReadJPSString() (string, error) {
	if _, err := c.ReadU8(); err != nil { // size — recorded, not load-bearing
		return "", err
	}
	textLength, err := c.ReadU8()
	if err != nil {
		return "", err
	}

	var s string
	if textLength > 0 {
		raw := make([]byte, int(textLength)-1)
		if err := c.Read(raw); err != nil {
			return "", err
		}
		if _, err := c.ReadU8(); err != nil { // trailing NUL
			return "", err
		}
		if !utf8.Valid(raw) {
			return "", &jpserr.BadEncoding{Context: "JPS string"}
		}
		s = string(raw)
	} else {
		if _, err := c.ReadU8(); err != nil { // the lone pad byte
			return "", err
		}
	}

	c.Align(4)
	return s, nil
}

// WriteJPSString writes s in JPS string framing, then pads the cursor
// forward to the next 4-byte boundary.
func (c *Cursor) WriteJPSString(s string) error {
	var textLength int
	if len(s) > 0 {
		textLength = len(s) + 1
	}
	size := roundUp4(textLength)

	if err := c.WriteU8(uint8(size)); err != nil {
		return err
	}
	if err := c.WriteU8(uint8(textLength)); err != nil {
		return err
	}

	if textLength == 0 {
		if err := c.WriteU8(0); err != nil {
			return err
		}
	} else {
		if err := c.Write([]byte(s)); err != nil {
			return err
		}
		if err := c.WriteU8(0); err != nil {
			return err
		}
	}

	return c.Pad(4)
}

// ReadU16JPS reads a 2-byte integer followed by two filler bytes.
func (c *Cursor) ReadU16JPS() (uint16, error) {
	v, err := c.ReadU16()
	if err != nil {
		return 0, err
	}
	if err := c.MovePos(2); err != nil {
		return 0, err
	}
	return v, nil
}

// WriteU16JPS writes a 2-byte integer followed by two filler bytes in
// the given mode.
func (c *Cursor) WriteU16JPS(v uint16, mode FillerMode) error {
	if err := c.WriteU16(v); err != nil {
		return err
	}
	fill := mode.byte()
	return c.Write([]byte{fill, fill})
}

// ReadBool reads a 4-byte boolean: FF FF FF FF is true, everything else
// (including 00 00 00 00) is false.
func (c *Cursor) ReadBool() (bool, error) {
	var b [4]byte
	if err := c.Read(b[:]); err != nil {
		return false, err
	}
	return b == [4]byte{0xFF, 0xFF, 0xFF, 0xFF}, nil
}

// WriteBool writes a 4-byte boolean.
func (c *Cursor) WriteBool(v bool) error {
	if v {
		return c.Write([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	}
	return c.Write([]byte{0x00, 0x00, 0x00, 0x00})
}

// ReadCString reads UTF-8 bytes up to (and excluding) a NUL terminator.
func (c *Cursor) ReadCString() (string, error) {
	var out []byte
	for {
		b, err := c.ReadU8()
		if err != nil {
			return "", err
		}
		if b == 0 {
			break
		}
		out = append(out, b)
	}
	if !utf8.Valid(out) {
		return "", &jpserr.BadEncoding{Context: "NUL-terminated string"}
	}
	return string(out), nil
}

// WriteCString writes s followed by a NUL terminator.
func (c *Cursor) WriteCString(s string) error {
	if err := c.Write([]byte(s)); err != nil {
		return err
	}
	return c.WriteU8(0)
}

// ReadEndianString4 reads a 4-byte token. If the cursor is
// little-endian the bytes are reversed before trailing NULs are
// trimmed, recovering the token's canonical (big-endian) orientation.
func (c *Cursor) ReadEndianString4() (string, error) {
	var b [4]byte
	if err := c.Read(b[:]); err != nil {
		return "", err
	}
	if c.endian == LittleEndian {
		b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0]
	}
	end := 4
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return string(b[:end]), nil
}

// WriteEndianString4 writes a canonical (big-endian-oriented) 4-byte
// token, NUL-padded to 4 bytes then reversed iff the cursor is
// little-endian.
func (c *Cursor) WriteEndianString4(s string) error {
	var b [4]byte
	copy(b[:], s)
	if c.endian == LittleEndian {
		b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0]
	}
	return c.Write(b[:])
}

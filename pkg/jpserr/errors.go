// Package jpserr holds the error taxonomy shared by every codec in this
// module. Every codec treats errors as fatal at the point they occur —
// corrupted binary offsets cannot be safely resynced, so none of these
// types attempt partial recovery. Callers recover structured fields with
// errors.As.
package jpserr

import "fmt"

// UnexpectedEof is returned when a Cursor read would run past the end
// of its buffer.
type UnexpectedEof struct {
	At   int
	Need int
}

func (e *UnexpectedEof) Error() string {
	return fmt.Sprintf("unexpected EOF: need %d bytes at offset %d", e.Need, e.At)
}

// BadPosition is returned by Cursor.MovePos when the resulting position
// would fall outside [0, len(buffer)].
type BadPosition struct {
	Requested int
}

func (e *BadPosition) Error() string {
	return fmt.Sprintf("bad cursor position: %d", e.Requested)
}

// BadEncoding is returned when a string field does not contain valid
// UTF-8.
type BadEncoding struct {
	Context string
}

func (e *BadEncoding) Error() string {
	if e.Context == "" {
		return "invalid UTF-8 encoding"
	}
	return fmt.Sprintf("invalid UTF-8 encoding: %s", e.Context)
}

// BadMagic is returned when a container's magic bytes don't match any
// of its recognized forms.
type BadMagic struct {
	Got      []byte
	Expected []byte
}

func (e *BadMagic) Error() string {
	return fmt.Sprintf("bad magic: got %x, expected %x", e.Got, e.Expected)
}

// BadVersion is returned when a container's version field is not one
// of the values this codec understands.
type BadVersion struct {
	Got uint32
}

func (e *BadVersion) Error() string {
	return fmt.Sprintf("bad version: %d", e.Got)
}

// BadStorageMode is returned when a Scene property's storage-mode tag
// is outside {0..5}, or when encoding a value produces a combination of
// flags that has no valid tag.
type BadStorageMode struct {
	Got uint32
}

func (e *BadStorageMode) Error() string {
	return fmt.Sprintf("bad property storage mode: %d", e.Got)
}

// BadAlignment is returned when a Packfile record's aligned_size is not
// a multiple of 32.
type BadAlignment struct {
	Got uint32
}

func (e *BadAlignment) Error() string {
	return fmt.Sprintf("bad alignment: %d is not a multiple of 32", e.Got)
}

// UnknownPropertyType is returned when a Scene property's class name is
// not one of the thirteen known value types.
type UnknownPropertyType struct {
	Name string
}

func (e *UnknownPropertyType) Error() string {
	return fmt.Sprintf("unknown property type: %q", e.Name)
}

// IdOverflow is returned when narrowing a 128-bit ID to a u32 would
// lose information.
type IdOverflow struct{}

func (e *IdOverflow) Error() string {
	return "id overflows 32 bits"
}

// NotFound is returned when a Packfile path lookup fails.
type NotFound struct {
	Path string
}

func (e *NotFound) Error() string {
	return fmt.Sprintf("not found: %s", e.Path)
}

// Io wraps an underlying filesystem failure.
type Io struct {
	Source error
}

func (e *Io) Error() string {
	return fmt.Sprintf("io error: %v", e.Source)
}

func (e *Io) Unwrap() error {
	return e.Source
}

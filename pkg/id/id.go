// Package id implements the opaque 128-bit identifier used for
// template ids, unique ids, and (narrowed) link ids throughout the
// Scene codec.
package id

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/bgrewell/jps-kit/pkg/jpserr"
	"github.com/google/uuid"
)

// ID is a 128-bit integer stored as 16 raw bytes in the same
// byte-for-byte layout a uuid.UUID uses — the natural Go shape for a
// 16-byte on-disk value, even though these ids carry no UUID version
// or variant semantics.
type ID [16]byte

// Zero is the zero-valued ID.
var Zero ID

// FromUUID adapts a uuid.UUID's raw bytes into an ID, useful for test
// fixtures and for callers that already generate ids via the uuid
// package.
func FromUUID(u uuid.UUID) ID {
	return ID(u)
}

// NewRandom returns a random 128-bit ID, backed by uuid.NewRandom.
func NewRandom() (ID, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return Zero, err
	}
	return ID(u), nil
}

// FromU32 widens a u32 link-id handle into an ID with the high 12
// bytes zeroed.
func FromU32(v uint32) ID {
	var id ID
	id[12] = byte(v >> 24)
	id[13] = byte(v >> 16)
	id[14] = byte(v >> 8)
	id[15] = byte(v)
	return id
}

// ToU32 narrows the ID to a u32 link-id handle, failing with
// IdOverflow if any of the high 12 bytes are non-zero.
func (id ID) ToU32() (uint32, error) {
	for _, b := range id[:12] {
		if b != 0 {
			return 0, &jpserr.IdOverflow{}
		}
	}
	return uint32(id[12])<<24 | uint32(id[13])<<16 | uint32(id[14])<<8 | uint32(id[15]), nil
}

// Bytes returns the raw 16 bytes of the ID.
func (id ID) Bytes() [16]byte {
	return [16]byte(id)
}

// ToString renders num_bytes byte pairs (from the low end of the id)
// as lowercase hex, comma-separated, with no leading-zero stripping.
// It is used for unique_id projection.
func (id ID) ToString(numBytes int) string {
	return id.render(numBytes, false)
}

// ToStringNoLeaders is like ToString but strips a single leading '0'
// from each pair. It is used for template_id projection.
func (id ID) ToStringNoLeaders(numBytes int) string {
	return id.render(numBytes, true)
}

func (id ID) render(numBytes int, stripLeader bool) string {
	if numBytes <= 0 {
		return ""
	}
	if numBytes > 16 {
		numBytes = 16
	}
	start := 16 - numBytes
	parts := make([]string, 0, numBytes)
	for _, b := range id[start:] {
		s := fmt.Sprintf("%02x", b)
		if stripLeader && s[0] == '0' {
			s = s[1:]
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ",")
}

// FromString parses a comma-joined lowercase hex byte-pair string (as
// produced by ToString or ToStringNoLeaders, leading zeros optional)
// back into an ID. Missing leading pairs are treated as zero, matching
// the fixed-width ids this format always stores.
func FromString(s string) (ID, error) {
	var id ID
	if s == "" {
		return id, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) > 16 {
		return id, fmt.Errorf("id: too many byte pairs: %d", len(parts))
	}
	start := 16 - len(parts)
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return ID{}, fmt.Errorf("id: invalid byte pair %q: %w", p, err)
		}
		id[start+i] = byte(v)
	}
	return id, nil
}

// BigInt returns the ID as an arbitrary-precision integer, mostly
// useful for property-based round-trip tests over the full 128-bit
// range.
func (id ID) BigInt() *big.Int {
	return new(big.Int).SetBytes(id[:])
}

// FromBigInt builds an ID from a big.Int in [0, 2^128), left-padding
// with zero bytes.
func FromBigInt(v *big.Int) ID {
	var id ID
	b := v.Bytes()
	if len(b) > 16 {
		b = b[len(b)-16:]
	}
	copy(id[16-len(b):], b)
	return id
}

package cursor

import (
	"testing"

	"github.com/bgrewell/jps-kit/pkg/jpserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteRoundTrip(t *testing.T) {
	c := New(nil, LittleEndian, Overwrite)
	data := []byte{1, 2, 3, 4, 5}
	require.NoError(t, c.Write(data))
	require.NoError(t, c.MovePos(-len(data)))
	out := make([]byte, len(data))
	require.NoError(t, c.Read(out))
	assert.Equal(t, data, out)
}

func TestSeekPastEndZeroExtends(t *testing.T) {
	c := New([]byte{1, 2, 3}, LittleEndian, Overwrite)
	c.Seek(8)
	assert.Equal(t, 8, c.Tell())
	assert.Equal(t, 8, c.Len())
	for i := 3; i < 8; i++ {
		assert.Equal(t, byte(0), c.Bytes()[i])
	}
}

func TestMovePosOutOfRange(t *testing.T) {
	c := New([]byte{1, 2, 3}, LittleEndian, Overwrite)
	err := c.MovePos(-1)
	var bp *jpserr.BadPosition
	assert.ErrorAs(t, err, &bp)
}

func TestAlignNoWrite(t *testing.T) {
	c := New(make([]byte, 10), LittleEndian, Overwrite)
	c.Seek(5)
	c.Align(4)
	assert.Equal(t, 8, c.Tell())
	c.Align(4)
	assert.Equal(t, 8, c.Tell())
}

func TestReadPastEndFails(t *testing.T) {
	c := New([]byte{1, 2}, LittleEndian, Overwrite)
	err := c.Read(make([]byte, 4))
	var eof *jpserr.UnexpectedEof
	assert.ErrorAs(t, err, &eof)
}

func TestTypedIntegersLittleEndian(t *testing.T) {
	c := New(nil, LittleEndian, Overwrite)
	require.NoError(t, c.WriteU32(0xDEADBEEF))
	c.Seek(0)
	v, err := c.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), v)
}

func TestTypedIntegersBigEndian(t *testing.T) {
	c := New(nil, BigEndian, Overwrite)
	require.NoError(t, c.WriteU16(0x1234))
	assert.Equal(t, []byte{0x12, 0x34}, c.Bytes())
}

func TestInsertModeSplices(t *testing.T) {
	c := New([]byte{1, 2, 3, 4}, LittleEndian, Insert)
	c.Seek(2)
	require.NoError(t, c.Write([]byte{0xAA, 0xBB}))
	assert.Equal(t, []byte{1, 2, 0xAA, 0xBB, 3, 4}, c.Bytes())
}

func TestJPSStringRoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", "ab", "hello world", string(make([]byte, 40))} {
		c := New(nil, LittleEndian, Overwrite)
		require.NoError(t, c.WriteJPSString(s))
		assert.Equal(t, 0, c.Tell()%4)
		c.Seek(0)
		got, err := c.ReadJPSString()
		require.NoError(t, err)
		assert.Equal(t, s, got)
		assert.Equal(t, 0, c.Tell()%4)
	}
}

func TestJPSStringWorkedExample(t *testing.T) {
	c := New(nil, LittleEndian, Overwrite)
	require.NoError(t, c.WriteJPSString("ab"))
	assert.Equal(t, []byte{0x04, 0x03, 'a', 'b', 0x00, 0x00, 0x00, 0x00}, c.Bytes())
	assert.Equal(t, 8, c.Tell())
}

func TestU16JPSRoundTrip(t *testing.T) {
	c := New(nil, LittleEndian, Overwrite)
	require.NoError(t, c.WriteU16JPS(7, FillerCD))
	c.Seek(0)
	v, err := c.ReadU16JPS()
	require.NoError(t, err)
	assert.Equal(t, uint16(7), v)
}

func TestBoolRoundTrip(t *testing.T) {
	c := New(nil, LittleEndian, Overwrite)
	require.NoError(t, c.WriteBool(true))
	require.NoError(t, c.WriteBool(false))
	c.Seek(0)
	tv, err := c.ReadBool()
	require.NoError(t, err)
	assert.True(t, tv)
	fv, err := c.ReadBool()
	require.NoError(t, err)
	assert.False(t, fv)
}

func TestEndianString4RoundTrip(t *testing.T) {
	for _, e := range []Endian{LittleEndian, BigEndian} {
		c := New(nil, e, Overwrite)
		require.NoError(t, c.WriteEndianString4("PAK"))
		c.Seek(0)
		s, err := c.ReadEndianString4()
		require.NoError(t, err)
		assert.Equal(t, "PAK", s)
	}
}

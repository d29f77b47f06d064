package packfile

import (
	"testing"

	"github.com/bgrewell/jps-kit/pkg/cursor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFiles() []*VirtualFile {
	return []*VirtualFile{
		{TypeTag: "TXT", Path: "folder/a.txt", Data: []byte("hello a")},
		{TypeTag: "TXT", Path: "folder/b.txt", Data: []byte("hello b, a bit longer")},
	}
}

func TestRoundTripLittleEndian(t *testing.T) {
	pf := &Packfile{Endian: cursor.LittleEndian, Files: sampleFiles()}
	data, err := pf.ToBinary()
	require.NoError(t, err)

	assert.Equal(t, "PAK ", string(data[0:4]))

	parsed, err := FromBinary(data)
	require.NoError(t, err)
	assert.Equal(t, cursor.LittleEndian, parsed.Endian)
	require.Len(t, parsed.Files, 2)
	assert.Equal(t, "folder/a.txt", parsed.Files[0].Path)
	assert.Equal(t, []byte("hello a"), parsed.Files[0].Data)
	assert.Equal(t, "folder/b.txt", parsed.Files[1].Path)
	assert.Equal(t, []byte("hello b, a bit longer"), parsed.Files[1].Data)
}

func TestRoundTripBigEndianAndCompression(t *testing.T) {
	files := sampleFiles()
	files[0].Compressed = true
	pf := &Packfile{Endian: cursor.BigEndian, Files: files}
	data, err := pf.ToBinary()
	require.NoError(t, err)

	assert.Equal(t, " KAP", string(data[0:4]))

	parsed, err := FromBinary(data)
	require.NoError(t, err)
	assert.Equal(t, cursor.BigEndian, parsed.Endian)
	assert.True(t, parsed.Files[0].Compressed)
	assert.Equal(t, []byte("hello a"), parsed.Files[0].Data)
	assert.False(t, parsed.Files[1].Compressed)
}

func TestStringPoolDeduplication(t *testing.T) {
	pf := &Packfile{Endian: cursor.LittleEndian, Files: sampleFiles()}
	pool, folderOffsets, filenameOffsets := buildStringPool(pf.Files)
	assert.Equal(t, "folder\x00a.txt\x00b.txt\x00", string(pool))
	assert.Equal(t, uint32(0), folderOffsets["folder"])
	assert.Equal(t, uint32(7), filenameOffsets["a.txt"])
	assert.Equal(t, uint32(13), filenameOffsets["b.txt"])
}

func TestBadMagicFails(t *testing.T) {
	_, err := FromBinary([]byte{0, 0, 0, 0, 0, 0, 0, 0})
	assert.Error(t, err)
}

func TestContainsAndPaths(t *testing.T) {
	pf := &Packfile{Endian: cursor.LittleEndian, Files: sampleFiles()}
	assert.True(t, pf.Contains("Folder/A.TXT"))
	assert.True(t, pf.Contains("folder\\a.txt"))
	assert.False(t, pf.Contains("nope"))
	assert.Equal(t, []string{"folder/a.txt", "folder/b.txt"}, pf.Paths())
}

func TestGetSetDataFromPath(t *testing.T) {
	pf := &Packfile{Endian: cursor.LittleEndian, Files: sampleFiles()}
	data, err := pf.GetDataFromPath("FOLDER/A.TXT")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello a"), data)

	require.NoError(t, pf.SetDataFromPath("folder/a.txt", []byte("updated")))
	data, err = pf.GetDataFromPath("folder/a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("updated"), data)

	_, err = pf.GetDataFromPath("missing")
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	pf := &Packfile{Endian: cursor.BigEndian, Files: sampleFiles()}
	s, err := pf.ToJSON()
	require.NoError(t, err)

	parsed, err := FromJSON(s)
	require.NoError(t, err)
	assert.Equal(t, cursor.BigEndian, parsed.Endian)
	require.Len(t, parsed.Files, 2)
	assert.Equal(t, pf.Files[0].Path, parsed.Files[0].Path)
	assert.Equal(t, pf.Files[0].Data, parsed.Files[0].Data)
}

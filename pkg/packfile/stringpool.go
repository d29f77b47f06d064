package packfile

import "github.com/bgrewell/jps-kit/pkg/cursor"

// buildStringPool walks files in insertion order, assigning each
// distinct folder string and each distinct filename string its own
// NUL-terminated entry. Folder and filename roles are deduplicated
// separately, so a string used as both occupies two pool entries.
func buildStringPool(files []*VirtualFile) (pool []byte, folderOffsets, filenameOffsets map[string]uint32) {
	folderOffsets = make(map[string]uint32)
	filenameOffsets = make(map[string]uint32)

	c := cursor.New(nil, cursor.LittleEndian, cursor.Overwrite)
	for _, vf := range files {
		folder, filename := vf.Folder()

		if _, ok := folderOffsets[folder]; !ok {
			folderOffsets[folder] = uint32(c.Tell())
			_ = c.WriteCString(folder)
		}
		if _, ok := filenameOffsets[filename]; !ok {
			filenameOffsets[filename] = uint32(c.Tell())
			_ = c.WriteCString(filename)
		}
	}
	return c.Bytes(), folderOffsets, filenameOffsets
}

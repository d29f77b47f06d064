package scene

import "github.com/bgrewell/jps-kit/pkg/jpserr"

// storageFlags is the (list, asset, palette, template) tuple a
// storage-mode tag multiplexes.
type storageFlags struct {
	list, asset, palette, template bool
}

var storageModeTable = map[uint32]storageFlags{
	0: {false, false, false, false},
	1: {true, false, false, false},
	2: {false, true, false, false},
	3: {true, true, false, false},
	4: {false, false, true, false},
	5: {true, false, false, true},
}

func storageModeFromTag(tag uint32) (storageFlags, error) {
	flags, ok := storageModeTable[tag]
	if !ok {
		return storageFlags{}, &jpserr.BadStorageMode{Got: tag}
	}
	return flags, nil
}

func storageModeToTag(flags storageFlags) (uint32, error) {
	for tag, candidate := range storageModeTable {
		if candidate == flags {
			return tag, nil
		}
	}
	return 0, &jpserr.BadStorageMode{Got: packFlagsForError(flags)}
}

// packFlagsForError bit-packs an invalid flag combination so the
// resulting error at least names what was rejected.
func packFlagsForError(f storageFlags) uint32 {
	var v uint32
	if f.list {
		v |= 1
	}
	if f.asset {
		v |= 2
	}
	if f.palette {
		v |= 4
	}
	if f.template {
		v |= 8
	}
	return v
}

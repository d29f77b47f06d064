// Package dct implements the DCT dialog table container: a fixed
// header, a fixed-size dialog record table addressed through
// running-pointer offsets, an optional footer record region, and a
// single trailing text blob.
//
// The offset arithmetic here (+1, +9, +50, and the closing constants)
// is unexplained by the source material; it is preserved verbatim
// because the format depends on it being exact.
package dct

import (
	"github.com/bgrewell/jps-kit/pkg/cursor"
	"github.com/bgrewell/jps-kit/pkg/logging"
	"github.com/go-logr/logr"
)

// Options configures FromBinary/ToBinary. DCT has no endian option:
// the format is always little-endian.
type Options struct {
	Logger logr.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithLogger sets the logger used while parsing/emitting.
func WithLogger(logger logr.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

func defaultOptions() Options {
	return Options{Logger: logr.Discard()}
}

const (
	headerSize       = 32
	dialogRecordSize = 12
	footerRecordSize = 8
	textRegionGap    = 50
)

// DialogEntry is one row of the dialog table. A HashedKey of 0 is an
// explicit placeholder: it carries no text and occupies a fixed hole
// in the table.
type DialogEntry struct {
	HashedKey uint32
	Text      string
}

// FooterEntry is one row of the trailing footer region.
type FooterEntry struct {
	Number uint32
	Text   string
}

// Table is the parsed, in-memory form of a DCT container.
type Table struct {
	Magic    string
	Version1 uint32
	HashSeed uint32
	Version2 uint32
	Dialog   []DialogEntry
	Footer   []FooterEntry
}

// FromBinary parses a Table. DCT files are always little-endian.
func FromBinary(data []byte, opts ...Option) (*Table, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	log := logging.NewLogger(options.Logger)

	c := cursor.New(data, cursor.LittleEndian, cursor.Overwrite)

	var magicBytes [4]byte
	if err := c.Read(magicBytes[:]); err != nil {
		return nil, err
	}

	version1, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	hashSeed, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	version2, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	numDialog, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	if err := c.MovePos(4); err != nil { // unused skip
		return nil, err
	}

	footerEndFieldPos := c.Tell()
	footerRegionEndRel, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	footerRegionEndAbs := footerEndFieldPos + int(footerRegionEndRel) + 9

	footerSwitch, err := c.ReadU32()
	if err != nil {
		return nil, err
	}

	readOffsetText := func(fieldPos int, rel uint32) (string, error) {
		absOffset := fieldPos + int(rel) + 1
		save := c.Tell()
		c.Seek(absOffset)
		s, err := c.ReadCString()
		c.Seek(save)
		return s, err
	}

	dialog := make([]DialogEntry, numDialog)
	for i := range dialog {
		hashedKey, err := c.ReadU32()
		if err != nil {
			return nil, err
		}
		lineOffsetFieldPos := c.Tell()
		lineOffsetRel, err := c.ReadU32()
		if err != nil {
			return nil, err
		}
		if _, err := c.ReadU32(); err != nil { // reserved zero
			return nil, err
		}

		var text string
		if hashedKey != 0 {
			if text, err = readOffsetText(lineOffsetFieldPos, lineOffsetRel); err != nil {
				return nil, err
			}
		}
		dialog[i] = DialogEntry{HashedKey: hashedKey, Text: text}
		log.Trace("parsed dialog entry", "hashed_key", hashedKey, "placeholder", hashedKey == 0)
	}
	log.Debug("parsed dct header", "num_dialog", numDialog, "has_footer", footerSwitch != 0)

	var footer []FooterEntry
	if footerSwitch != 0 {
		for c.Tell() < footerRegionEndAbs {
			lineOffsetFieldPos := c.Tell()
			lineOffsetRel, err := c.ReadU32()
			if err != nil {
				return nil, err
			}
			number, err := c.ReadU32()
			if err != nil {
				return nil, err
			}
			text, err := readOffsetText(lineOffsetFieldPos, lineOffsetRel)
			if err != nil {
				return nil, err
			}
			footer = append(footer, FooterEntry{Number: number, Text: text})
		}
	}

	return &Table{
		Magic:    string(magicBytes[:]),
		Version1: version1,
		HashSeed: hashSeed,
		Version2: version2,
		Dialog:   dialog,
		Footer:   footer,
	}, nil
}

// ToBinary re-emits the Table.
func (t *Table) ToBinary(opts ...Option) ([]byte, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	log := logging.NewLogger(options.Logger)
	log.Debug("emitting dct table", "num_dialog", len(t.Dialog), "num_footer", len(t.Footer))

	dialogRegionStart := headerSize
	dialogRegionSize := dialogRecordSize * len(t.Dialog)
	footerRegionStart := dialogRegionStart + dialogRegionSize
	footerRegionSize := footerRecordSize * len(t.Footer)
	recordRegionEnd := footerRegionStart + footerRegionSize
	textRegionStart := recordRegionEnd + textRegionGap

	dialogTextOffsets := make([]int, len(t.Dialog))
	footerTextOffsets := make([]int, len(t.Footer))
	cursorText := textRegionStart
	for i, d := range t.Dialog {
		if d.HashedKey == 0 {
			continue
		}
		dialogTextOffsets[i] = cursorText
		cursorText += len(d.Text) + 1
	}
	for i, f := range t.Footer {
		footerTextOffsets[i] = cursorText
		cursorText += len(f.Text) + 1
	}

	c := cursor.New(nil, cursor.LittleEndian, cursor.Overwrite)

	var magicBytes [4]byte
	copy(magicBytes[:], t.Magic)
	if err := c.Write(magicBytes[:]); err != nil {
		return nil, err
	}
	if err := c.WriteU32(t.Version1); err != nil {
		return nil, err
	}
	if err := c.WriteU32(t.HashSeed); err != nil {
		return nil, err
	}
	if err := c.WriteU32(t.Version2); err != nil {
		return nil, err
	}
	if err := c.WriteU32(uint32(len(t.Dialog))); err != nil {
		return nil, err
	}
	if err := c.WriteU32(0); err != nil { // unused skip
		return nil, err
	}

	footerEndFieldPos := c.Tell()
	footerRegionEndRel := recordRegionEnd - footerEndFieldPos - 9
	if err := c.WriteU32(uint32(footerRegionEndRel)); err != nil {
		return nil, err
	}

	footerSwitch := uint32(0)
	if len(t.Footer) > 0 {
		footerSwitch = 1
	}
	if err := c.WriteU32(footerSwitch); err != nil {
		return nil, err
	}

	c.Seek(dialogRegionStart)
	for i, d := range t.Dialog {
		if d.HashedKey == 0 {
			if err := c.WriteU32(0); err != nil {
				return nil, err
			}
			if err := c.WriteU32(0); err != nil {
				return nil, err
			}
			if err := c.WriteU32(0); err != nil {
				return nil, err
			}
			continue
		}
		if err := c.WriteU32(d.HashedKey); err != nil {
			return nil, err
		}
		lineOffsetFieldPos := c.Tell()
		rel := dialogTextOffsets[i] - lineOffsetFieldPos - 1
		if err := c.WriteU32(uint32(rel)); err != nil {
			return nil, err
		}
		if err := c.WriteU32(0); err != nil {
			return nil, err
		}
	}

	for i, f := range t.Footer {
		lineOffsetFieldPos := c.Tell()
		rel := footerTextOffsets[i] - lineOffsetFieldPos - 1
		if err := c.WriteU32(uint32(rel)); err != nil {
			return nil, err
		}
		if err := c.WriteU32(f.Number); err != nil {
			return nil, err
		}
	}

	c.Seek(textRegionStart)
	for _, d := range t.Dialog {
		if d.HashedKey == 0 {
			continue
		}
		if err := c.WriteCString(d.Text); err != nil {
			return nil, err
		}
	}
	for _, f := range t.Footer {
		if err := c.WriteCString(f.Text); err != nil {
			return nil, err
		}
	}

	if err := c.WriteU32(0xFFFFFFDF); err != nil {
		return nil, err
	}
	if err := c.WriteU32(0x11); err != nil {
		return nil, err
	}
	if err := c.WriteU32(0x12); err != nil {
		return nil, err
	}
	if err := c.WriteU32(0); err != nil {
		return nil, err
	}

	return c.Bytes(), nil
}

// MergeIn overwrites magic/versions/seed when present in patch, updates
// dialog entries sharing a hashed_key (ignoring placeholders) or
// appends new ones, and appends every footer entry verbatim.
func (t *Table) MergeIn(patch *Table) {
	if patch.Magic != "" {
		t.Magic = patch.Magic
	}
	if patch.Version1 != 0 {
		t.Version1 = patch.Version1
	}
	if patch.HashSeed != 0 {
		t.HashSeed = patch.HashSeed
	}
	if patch.Version2 != 0 {
		t.Version2 = patch.Version2
	}

	for _, pd := range patch.Dialog {
		if pd.HashedKey == 0 {
			continue
		}
		merged := false
		for i, d := range t.Dialog {
			if d.HashedKey == pd.HashedKey {
				t.Dialog[i].Text = pd.Text
				merged = true
				break
			}
		}
		if !merged {
			t.Dialog = append(t.Dialog, pd)
		}
	}

	t.Footer = append(t.Footer, patch.Footer...)
}

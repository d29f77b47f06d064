package dct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderRoundTrip(t *testing.T) {
	table := &Table{
		Magic:    "dct ",
		Version1: 1,
		HashSeed: 0,
		Version2: 1,
		Dialog: []DialogEntry{
			{HashedKey: 0, Text: ""},
			{HashedKey: 0xDEADBEEF, Text: "hi"},
		},
	}

	data, err := table.ToBinary()
	require.NoError(t, err)

	parsed, err := FromBinary(data)
	require.NoError(t, err)
	assert.Equal(t, table.Dialog, parsed.Dialog)
	assert.Equal(t, table.Magic, parsed.Magic)
	assert.Equal(t, table.Version1, parsed.Version1)
	assert.Equal(t, table.Version2, parsed.Version2)
}

func TestFooterRoundTrip(t *testing.T) {
	table := &Table{
		Magic:    "dct ",
		Version1: 1,
		Version2: 1,
		Dialog: []DialogEntry{
			{HashedKey: 1, Text: "alpha"},
			{HashedKey: 2, Text: "beta"},
		},
		Footer: []FooterEntry{
			{Number: 10, Text: "footer one"},
			{Number: 20, Text: "footer two"},
		},
	}

	data, err := table.ToBinary()
	require.NoError(t, err)

	parsed, err := FromBinary(data)
	require.NoError(t, err)
	assert.Equal(t, table.Dialog, parsed.Dialog)
	assert.Equal(t, table.Footer, parsed.Footer)
}

func TestNoFooterRegionAbsent(t *testing.T) {
	table := &Table{Magic: "dct ", Version1: 1, Version2: 1, Dialog: []DialogEntry{{HashedKey: 5, Text: "x"}}}
	data, err := table.ToBinary()
	require.NoError(t, err)

	parsed, err := FromBinary(data)
	require.NoError(t, err)
	assert.Empty(t, parsed.Footer)
}

func TestMergeInUpdatesExistingAndAppendsNew(t *testing.T) {
	base := &Table{
		Magic: "dct ", Version1: 1, Version2: 1,
		Dialog: []DialogEntry{
			{HashedKey: 1, Text: "old"},
			{HashedKey: 0, Text: ""},
		},
	}
	patch := &Table{
		Dialog: []DialogEntry{
			{HashedKey: 1, Text: "new"},
			{HashedKey: 0, Text: "ignored"},
			{HashedKey: 2, Text: "added"},
		},
		Footer: []FooterEntry{{Number: 1, Text: "f"}},
	}

	base.MergeIn(patch)

	assert.Equal(t, "new", base.Dialog[0].Text)
	assert.Equal(t, uint32(0), base.Dialog[1].HashedKey)
	assert.Equal(t, uint32(2), base.Dialog[2].HashedKey)
	assert.Equal(t, "added", base.Dialog[2].Text)
	require.Len(t, base.Footer, 1)
	assert.Equal(t, "f", base.Footer[0].Text)
}

func TestJSONRoundTrip(t *testing.T) {
	table := &Table{
		Magic: "dct ", Version1: 1, HashSeed: 7, Version2: 1,
		Dialog: []DialogEntry{{HashedKey: 1, Text: "a"}},
		Footer: []FooterEntry{{Number: 3, Text: "b"}},
	}
	s, err := table.ToJSON()
	require.NoError(t, err)

	parsed, err := FromJSON(s)
	require.NoError(t, err)
	assert.Equal(t, table, parsed)
}

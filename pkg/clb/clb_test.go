package clb

import (
	"testing"

	"github.com/bgrewell/jps-kit/pkg/cursor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDatabase() *Database {
	return &Database{
		Version: 1,
		Collectibles: []Collectible{
			{Type: "Gem", DevName: "gem_red", IconPath: "icons/gem_red.png"},
			{Type: "Coin", DevName: "coin_gold", IconPath: "icons/coin_gold.png"},
		},
		Extras: []Extra{
			{GlobalState: "unlocked_art_01", Type: "Artwork", ThumbnailPath: "thumbs/art01.png", AssetPath: "assets/art01.bin"},
		},
	}
}

func TestRoundTripBigEndian(t *testing.T) {
	db := sampleDatabase()
	data, err := db.ToBinary(WithEndian(cursor.BigEndian))
	require.NoError(t, err)

	parsed, err := FromBinary(data, WithEndian(cursor.BigEndian))
	require.NoError(t, err)
	assert.Equal(t, db, parsed)
}

func TestRoundTripLittleEndian(t *testing.T) {
	db := sampleDatabase()
	data, err := db.ToBinary(WithEndian(cursor.LittleEndian))
	require.NoError(t, err)

	parsed, err := FromBinary(data, WithEndian(cursor.LittleEndian))
	require.NoError(t, err)
	assert.Equal(t, db, parsed)
}

func TestEmptyDatabase(t *testing.T) {
	db := &Database{Version: 1}
	data, err := db.ToBinary()
	require.NoError(t, err)

	parsed, err := FromBinary(data)
	require.NoError(t, err)
	assert.Empty(t, parsed.Collectibles)
	assert.Empty(t, parsed.Extras)
}

func TestJSONRoundTrip(t *testing.T) {
	db := sampleDatabase()
	s, err := db.ToJSON()
	require.NoError(t, err)

	parsed, err := FromJSON(s)
	require.NoError(t, err)
	assert.Equal(t, db, parsed)
}
